// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how a session terminates.
type Mode int

const (
	// ModeWords ends the session once every sampled word is typed.
	ModeWords Mode = iota
	// ModeTime ends the session when the countdown reaches zero.
	ModeTime
)

func (m Mode) String() string {
	switch m {
	case ModeWords:
		return "words"
	case ModeTime:
		return "time"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as accepted on the command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "words", "word":
		return ModeWords, nil
	case "time", "timed":
		return ModeTime, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want words or time)", s)
	}
}

// Unit returns the label for a target in this mode.
func (m Mode) Unit() string {
	if m == ModeTime {
		return "s"
	}
	return " words"
}

// Config defines practice settings.
type Config struct {
	Mode   Mode
	Target int
	Seed   int64
}

// Preset is one selectable mode/target pair.
type Preset struct {
	Mode   Mode
	Target int
}

func (p Preset) String() string {
	return fmt.Sprintf("%s %d%s", p.Mode, p.Target, p.Mode.Unit())
}

// WordPresets and TimePresets are the choices offered by the mode menu.
var (
	WordPresets = []int{10, 25, 50, 100}
	TimePresets = []int{10, 15, 30, 60}
)

// Presets returns every selectable preset, words first.
func Presets() []Preset {
	out := make([]Preset, 0, len(WordPresets)+len(TimePresets))
	for _, n := range WordPresets {
		out = append(out, Preset{Mode: ModeWords, Target: n})
	}
	for _, n := range TimePresets {
		out = append(out, Preset{Mode: ModeTime, Target: n})
	}
	return out
}

// Result is the statistics reported when a session finishes.
type Result struct {
	CorrectWords   int
	ElapsedSeconds int
	WPM            float64
	Accuracy       float64
}

// RunRecord is a finished session kept in the run log.
type RunRecord struct {
	// Seq numbers records in the order they finished, starting at 1.
	Seq        int
	ID         string
	FinishedAt time.Time
	Mode       Mode
	Target     int
	Result     Result
}
