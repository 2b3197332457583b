package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
)

func newSession(t *testing.T, words ...string) *session.Session {
	t.Helper()
	s, err := session.New(model.ModeWords, len(words), words)
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	s.Start()
	return s
}

func TestBuildStyledWordsCursor(t *testing.T) {
	s := newSession(t, "ab")
	s.Advance('a')

	words := buildStyledWords(s)
	if len(words) != 1 || len(words[0].runes) != 2 {
		t.Fatalf("unexpected words: %+v", words)
	}
	if words[0].runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if words[0].runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledWordsMistype(t *testing.T) {
	s := newSession(t, "ab", "c")
	s.Advance('a')
	s.Advance('x')
	s.Advance('z')

	words := buildStyledWords(s)
	if words[0].runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style keeping the target rune")
	}
	if words[0].runes[2].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
	if words[0].width != 3 {
		t.Fatalf("expected width 3, got %d", words[0].width)
	}
}

func TestBuildStyledWordsHighlightsCurrentWord(t *testing.T) {
	s := newSession(t, "one", "two")
	s.Advance('o')

	words := buildStyledWords(s)
	if words[0].runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped rune in current word")
	}
	if words[0].runes[3].s != pendingStyle.Render(" ") {
		t.Fatalf("expected pending style for the space sentinel")
	}
	if words[1].runes[0].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestLayoutRows(t *testing.T) {
	words := []styledWord{{width: 4}, {width: 4}, {width: 4}, {width: 12}, {width: 2}}
	rows := layoutRows(words, 10)
	expected := []int{0, 0, 1, 2, 3}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Fatalf("expected rows %v, got %v", expected, rows)
		}
	}
}

func TestLayoutRowsUnbounded(t *testing.T) {
	rows := layoutRows([]styledWord{{width: 40}, {width: 40}}, 0)
	if rows[0] != 0 || rows[1] != 0 {
		t.Fatalf("expected a single row without width, got %v", rows)
	}
}

func TestRowWindow(t *testing.T) {
	cases := []struct {
		current, last int
		first, end    int
	}{
		{0, 5, 0, 3},
		{1, 5, 0, 3},
		{2, 5, 1, 4},
		{5, 5, 4, 6},
		{0, 0, 0, 1},
	}
	for _, tc := range cases {
		first, end := rowWindow(tc.current, tc.last)
		if first != tc.first || end != tc.end {
			t.Fatalf("rowWindow(%d, %d) = %d, %d; want %d, %d", tc.current, tc.last, first, end, tc.first, tc.end)
		}
	}
}

func TestRenderWordsHidesPassedRows(t *testing.T) {
	s := newSession(t, "aaaa", "bbbb", "cccc", "dddd", "eeee", "ffff")
	// Each word plus its space is five cells wide: one word per row.
	for _, r := range "aaaa bbbb cccc " {
		s.Advance(r)
	}
	out := stripStyles(renderWords(s, 5))
	if strings.Contains(out, "aaaa") || strings.Contains(out, "bbbb") {
		t.Fatalf("expected rows before the previous one hidden:\n%s", out)
	}
	for _, want := range []string{"cccc", "dddd", "eeee"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q visible:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ffff") {
		t.Fatalf("expected rows beyond the window hidden:\n%s", out)
	}
}

func stripStyles(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
