package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typesprint/internal/config"
	"github.com/verte-zerg/typesprint/internal/generator"
	"github.com/verte-zerg/typesprint/internal/model"
)

func TestResolveConfig(t *testing.T) {
	cases := []struct {
		name    string
		mode    string
		target  int
		want    model.Mode
		wantErr bool
	}{
		{name: "words", mode: "words", target: 25, want: model.ModeWords},
		{name: "time", mode: "time", target: 30, want: model.ModeTime},
		{name: "zero target", mode: "time", target: 0, wantErr: true},
		{name: "negative target", mode: "words", target: -1, wantErr: true},
		{name: "unknown mode", mode: "quotes", target: 10, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := resolveConfig(tc.mode, tc.target, 7)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Mode != tc.want || cfg.Target != tc.target || cfg.Seed != 7 {
				t.Fatalf("unexpected config: %+v", cfg)
			}
		})
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Practice.Mode != nil || cfg.Practice.Target != nil {
		t.Fatalf("template should leave every value commented out")
	}
	if !strings.Contains(defaultConfigTemplate(), "[practice]") {
		t.Fatalf("template missing practice table")
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := newRootCmd()
	mode := "time"
	target := 10
	fileMode := "words"
	fileTarget := 50
	if err := cmd.Flags().Set("target", "15"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	target = 15
	applyStringConfig(cmd, "mode", &mode, &fileMode)
	applyIntConfig(cmd, "target", &target, &fileTarget)
	if mode != "words" {
		t.Fatalf("expected config mode to apply, got %q", mode)
	}
	if target != 15 {
		t.Fatalf("expected flag target to win, got %d", target)
	}
	applyIntConfig(cmd, "target", &target, nil)
	if target != 15 {
		t.Fatalf("nil config value should not change target")
	}
}

func TestWriteSample(t *testing.T) {
	sampler := generator.NewSeeded([]string{"cat", "dog", "run", "sun"}, 1)
	var buf bytes.Buffer
	if err := writeSample(&buf, sampler, model.Config{Mode: model.ModeWords, Target: 3}); err != nil {
		t.Fatalf("writeSample failed: %v", err)
	}
	if got := strings.Fields(buf.String()); len(got) != 3 {
		t.Fatalf("expected 3 words, got %q", buf.String())
	}

	err := writeSample(&buf, sampler, model.Config{Mode: model.ModeWords, Target: 5})
	if !errors.Is(err, generator.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}
