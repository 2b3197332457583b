// Package main provides the CLI entrypoint for typesprint.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typesprint/internal/clock"
	"github.com/verte-zerg/typesprint/internal/config"
	"github.com/verte-zerg/typesprint/internal/generator"
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/stats"
	"github.com/verte-zerg/typesprint/internal/store"
	"github.com/verte-zerg/typesprint/internal/trainer"
	"github.com/verte-zerg/typesprint/internal/tui"
	"github.com/verte-zerg/typesprint/internal/wordlist"
)

const (
	defaultMode   = "time"
	defaultTarget = 10
	debugEnv      = "TYPESPRINT_DEBUG"
)

var (
	practiceMode   string
	practiceTarget int
	practiceSeed   int64

	sampleMode   string
	sampleTarget int
	sampleSeed   int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typesprint",
		Short:         "Terminal typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "session mode: words or time")
	rootCmd.Flags().IntVar(&practiceTarget, "target", defaultTarget, "word count (words mode) or seconds (time mode)")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "sampling seed (0 = random)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSampleCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "target", &practiceTarget, fileCfg.Practice.Target)
	applyInt64Config(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)

	cfg, err := resolveConfig(practiceMode, practiceTarget, practiceSeed)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	words, err := wordlist.Dictionary()
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	st, err := store.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close run log: %v\n", cerr)
		}
	}()

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	sampler := generator.NewSeeded(words, cfg.Seed)
	tr, err := trainer.New(sampler, clock.New(), cfg.Mode, cfg.Target,
		trainer.WithRecorder(st),
		trainer.WithLogger(log.Default()),
	)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	program := tea.NewProgram(tui.NewModel(tr, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	records, err := st.ListResults(context.Background(), store.Filter{})
	if err != nil {
		return fmt.Errorf("failed to read run log: %w", err)
	}
	if err := stats.RenderSummary(cmd.OutOrStdout(), records); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// setupLogging routes the standard logger away from the terminal while the
// TUI owns it.
func setupLogging() (func(), error) {
	if os.Getenv(debugEnv) == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "typesprint")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close debug log: %v\n", cerr)
		}
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a sampled word list",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
	cmd.Flags().StringVar(&sampleMode, "mode", "words", "session mode: words or time")
	cmd.Flags().IntVar(&sampleTarget, "target", 25, "word count (words mode) or seconds (time mode)")
	cmd.Flags().Int64Var(&sampleSeed, "seed", 0, "sampling seed (0 = random)")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(sampleMode, sampleTarget, sampleSeed)
	if err != nil {
		return err
	}
	words, err := wordlist.Dictionary()
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	return writeSample(cmd.OutOrStdout(), generator.NewSeeded(words, cfg.Seed), cfg)
}

func writeSample(w io.Writer, sampler *generator.Sampler, cfg model.Config) error {
	words, err := sampler.Sample(cfg.Mode, cfg.Target)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(words, " ")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typesprint configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q           # Session mode: "words" or "time"
# target = %d           # Word count (words mode) or seconds (time mode)
# seed = 0              # Sampling seed, 0 picks a random one
`,
		defaultMode,
		defaultTarget,
	)
}

func resolveConfig(mode string, target int, seed int64) (model.Config, error) {
	m, err := model.ParseMode(mode)
	if err != nil {
		return model.Config{}, fmt.Errorf("--mode: %w", err)
	}
	cfg := model.Config{Mode: m, Target: target, Seed: seed}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Target <= 0 {
		return fmt.Errorf("--target must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
