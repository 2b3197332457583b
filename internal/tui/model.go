// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typesprint/internal/clock"
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/stats"
	"github.com/verte-zerg/typesprint/internal/store"
	"github.com/verte-zerg/typesprint/internal/trainer"
)

// historyRows is how many past results the results screen lists.
const historyRows = 5

// History lists finished sessions of this run.
type History interface {
	ListResults(ctx context.Context, f store.Filter) ([]model.RunRecord, error)
	Best(ctx context.Context, mode model.Mode, target int) (model.RunRecord, bool, error)
}

type countdownMsg struct {
	tick clock.Tick
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	trainer *trainer.Trainer
	history History

	keys    keyMap
	help    help.Model
	results table.Model
	best    float64
	hasBest bool

	width  int
	height int

	menuOpen  bool
	menuIndex int
	tabArmed  bool
	errMsg    string
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	statLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	menuActiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	menuStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
)

// NewModel constructs a typing TUI model. history may be nil.
func NewModel(tr *trainer.Trainer, history History) *Model {
	m := &Model{
		trainer: tr,
		history: history,
		keys:    newKeyMap(),
		help:    help.New(),
		results: newResultsTable(),
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case countdownMsg:
		return m, m.apply(m.trainer.Fire(msg.tick))
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.menuOpen {
		m.handleMenuKey(msg)
		return m, nil
	}

	armed := m.tabArmed
	m.tabArmed = false
	switch {
	case key.Matches(msg, m.keys.Arm):
		m.tabArmed = true
		return m, nil
	case armed && key.Matches(msg, m.keys.Abandon):
		eff, err := m.trainer.Abandon()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		return m, m.apply(eff)
	case key.Matches(msg, m.keys.Menu):
		m.openMenu()
		return m, nil
	case key.Matches(msg, m.keys.Erase):
		return m, m.apply(m.trainer.Backspace())
	}

	switch msg.Type {
	case tea.KeySpace:
		return m, m.apply(m.trainer.Press(' '))
	case tea.KeyRunes:
		if msg.Alt || msg.Paste {
			return m, nil
		}
		var cmds []tea.Cmd
		for _, r := range msg.Runes {
			cmds = append(cmds, m.apply(m.trainer.Press(r)))
			// The rest of the batch must not restart the finished session.
			if m.trainer.Session().Status() == session.Finished {
				break
			}
		}
		return m, tea.Batch(cmds...)
	default:
		return m, nil
	}
}

// apply turns a trainer effect into follow-up work.
func (m *Model) apply(eff trainer.Effect) tea.Cmd {
	if eff.Restarted {
		m.errMsg = ""
	}
	if eff.Finished {
		m.refreshResults()
	}
	if !eff.Schedule {
		return nil
	}
	tick := eff.Tick
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{tick: tick}
	})
}

func (m *Model) refreshResults() {
	if m.history == nil {
		return
	}
	ctx := context.Background()
	mode, target := m.trainer.Mode()
	best, ok, err := m.history.Best(ctx, mode, target)
	if err != nil {
		log.Printf("failed to load best result: %v", err)
	}
	m.best = best.Result.WPM
	m.hasBest = ok

	records, err := m.history.ListResults(ctx, store.Filter{Mode: &mode, Target: target, Last: historyRows})
	if err != nil {
		log.Printf("failed to load results: %v", err)
		return
	}
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rows = append(rows, table.Row(stats.RecordRow(records[i].Seq, records[i])))
	}
	m.results.SetRows(rows)
	m.results.SetHeight(len(rows) + 1)
}

func (m *Model) openMenu() {
	m.menuOpen = true
	m.menuIndex = 0
	mode, target := m.trainer.Mode()
	for i, p := range model.Presets() {
		if p.Mode == mode && p.Target == target {
			m.menuIndex = i
			break
		}
	}
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) {
	presets := model.Presets()
	switch {
	case key.Matches(msg, m.keys.Close):
		m.menuOpen = false
	case key.Matches(msg, m.keys.Up):
		m.menuIndex = (m.menuIndex - 1 + len(presets)) % len(presets)
	case key.Matches(msg, m.keys.Down):
		m.menuIndex = (m.menuIndex + 1) % len(presets)
	case key.Matches(msg, m.keys.Select):
		p := presets[m.menuIndex]
		if err := m.trainer.SetMode(p.Mode, p.Target); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
		}
		m.menuOpen = false
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	var helpView string
	switch {
	case m.menuOpen:
		body = m.renderMenu()
		helpView = m.help.View(menuKeys{m.keys})
	case m.trainer.Session().Status() == session.Finished:
		body = m.renderResults()
		helpView = m.help.View(resultKeys{m.keys})
	default:
		body = m.renderTyping()
		helpView = m.help.View(typingKeys{m.keys})
	}
	if m.errMsg != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", errorStyle.Render(m.errMsg))
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpView)
	return content + "\n" + footer
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) renderTyping() string {
	s := m.trainer.Session()
	words := renderWords(s, m.contentWidth())
	if w := m.contentWidth(); w > 0 {
		words = lipgloss.NewStyle().Width(w).Render(words)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), "", words)
}

func (m *Model) renderHeader() string {
	mode, target := m.trainer.Mode()
	label := model.Preset{Mode: mode, Target: target}.String()
	s := m.trainer.Session()
	var status string
	if mode == model.ModeTime {
		status = fmt.Sprintf("%d", m.trainer.Remaining())
	} else {
		status = fmt.Sprintf("%d/%d", s.Cursor().Word, len(s.Words()))
	}
	return headerStyle.Render(status) + footerStyle.Render("  "+label)
}

func (m *Model) renderResults() string {
	res, ok := m.trainer.Result()
	if !ok {
		return ""
	}
	title := "done"
	if mode, _ := m.trainer.Mode(); mode == model.ModeTime {
		title = "time's up"
	}
	lines := []string{
		headerStyle.Render(title),
		"",
		statValueStyle.Render(fmt.Sprintf("%d correct words", res.CorrectWords)),
		statValueStyle.Render(fmt.Sprintf("%ds", res.ElapsedSeconds)),
		statValueStyle.Render(stats.FormatWPM(res.WPM)),
		statLabelStyle.Render(fmt.Sprintf("accuracy %.1f%%", res.Accuracy*100)),
	}
	if m.hasBest {
		lines = append(lines, statLabelStyle.Render("best this run "+stats.FormatWPM(m.best)))
	}
	if len(m.results.Rows()) > 0 {
		lines = append(lines, "", m.results.View())
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderMenu() string {
	presets := model.Presets()
	lines := make([]string, 0, len(presets)+2)
	lines = append(lines, headerStyle.Render("select mode"), "")
	for i, p := range presets {
		if i == m.menuIndex {
			lines = append(lines, menuActiveStyle.Render("> "+p.String()))
			continue
		}
		lines = append(lines, statLabelStyle.Render("  "+p.String()))
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

func newResultsTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Mode", Width: 14},
		{Title: "Correct", Width: 7},
		{Title: "Time", Width: 5},
		{Title: "WPM", Width: 6},
		{Title: "Acc", Width: 6},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(false), table.WithHeight(1))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Cell
	t.SetStyles(styles)
	return t
}
