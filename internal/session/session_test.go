package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/verte-zerg/typesprint/internal/model"
)

func newRunning(t *testing.T, words ...string) *Session {
	t.Helper()
	s, err := New(model.ModeWords, len(words), words)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !s.Start() {
		t.Fatalf("expected Start to transition from idle")
	}
	return s
}

func typeString(s *Session, input string) Outcome {
	out := Ignored
	for _, r := range input {
		out = s.Advance(r)
	}
	return out
}

func TestNewBuildsSpaceSentinels(t *testing.T) {
	s, err := New(model.ModeWords, 2, []string{"ab", "c"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	words := s.Words()
	if len(words[0].Letters) != 3 || words[0].Letters[2].Expected != Space {
		t.Fatalf("expected trailing sentinel on first word: %+v", words[0])
	}
	if len(words[1].Letters) != 1 {
		t.Fatalf("expected no sentinel on last word: %+v", words[1])
	}
	if words[0].Text() != "ab" {
		t.Fatalf("expected text without sentinel, got %q", words[0].Text())
	}
	if s.Status() != Idle {
		t.Fatalf("expected idle, got %s", s.Status())
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(model.ModeWords, 0, nil); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
	if _, err := New(model.ModeWords, 2, []string{"a", ""}); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords for empty word, got %v", err)
	}
}

func TestStartOnlyOnce(t *testing.T) {
	s := newRunning(t, "a")
	if s.Start() {
		t.Fatalf("expected second Start to be a no-op")
	}
}

func TestInputIgnoredWhileIdle(t *testing.T) {
	s, err := New(model.ModeWords, 1, []string{"cat"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if out := s.Advance('c'); out != Ignored {
		t.Fatalf("expected advance to be ignored while idle, got %v", out)
	}
	if out := s.Retreat(); out != Ignored {
		t.Fatalf("expected retreat to be ignored while idle, got %v", out)
	}
	if s.Cursor() != (Cursor{}) || s.Words()[0].Letters[0].State != Pending {
		t.Fatalf("expected no state change while idle")
	}
}

func TestAllCorrectScenario(t *testing.T) {
	s := newRunning(t, "cat", "dog", "run")
	out := typeString(s, "cat dog ru")
	if out != Advanced || s.Status() != Running {
		t.Fatalf("expected running before last letter, got %v %s", out, s.Status())
	}
	if out := s.Advance('n'); out != Completed {
		t.Fatalf("expected Completed on last letter, got %v", out)
	}
	if s.Status() != Finished {
		t.Fatalf("expected finished, got %s", s.Status())
	}
	if got := s.CorrectWords(); got != 3 {
		t.Fatalf("expected 3 correct words, got %d", got)
	}
	if s.Finish() {
		t.Fatalf("expected Finish on a finished session to report no transition")
	}
}

func TestFirstLetterWrongScenario(t *testing.T) {
	s := newRunning(t, "cat", "dog", "run")
	typeString(s, "xat dog run")
	if s.Status() != Finished {
		t.Fatalf("expected finished, got %s", s.Status())
	}
	if got := s.CorrectWords(); got != 2 {
		t.Fatalf("expected 2 correct words, got %d", got)
	}
	if s.Keystrokes() != 11 || s.Mistakes() != 1 {
		t.Fatalf("unexpected counters: %d keystrokes, %d mistakes", s.Keystrokes(), s.Mistakes())
	}
}

func TestWrongSpaceBreaksWord(t *testing.T) {
	s := newRunning(t, "cat", "dog")
	typeString(s, "catxdog")
	if got := s.CorrectWords(); got != 1 {
		t.Fatalf("expected only the last word to count, got %d", got)
	}
}

func TestUnreachedWordsDoNotCount(t *testing.T) {
	s := newRunning(t, "cat", "dog", "run")
	typeString(s, "cat ")
	if got := s.CorrectWords(); got != 1 {
		t.Fatalf("expected 1 correct word, got %d", got)
	}
	typeString(s, "dog")
	if got := s.CorrectWords(); got != 1 {
		t.Fatalf("expected word without its space not to count, got %d", got)
	}
}

func TestRetreatAtOriginIsNoop(t *testing.T) {
	s := newRunning(t, "cat", "dog")
	before := snapshot(s)
	if out := s.Retreat(); out != Ignored {
		t.Fatalf("expected Ignored at origin, got %v", out)
	}
	if !reflect.DeepEqual(before, snapshot(s)) {
		t.Fatalf("expected state unchanged by backspace at origin")
	}
}

func TestAdvanceThenRetreatRoundTrips(t *testing.T) {
	s := newRunning(t, "cat", "dog")
	typeString(s, "ca")
	before := snapshot(s)
	s.Advance('x')
	if out := s.Retreat(); out != Retreated {
		t.Fatalf("expected Retreated, got %v", out)
	}
	if !reflect.DeepEqual(before, snapshot(s)) {
		t.Fatalf("expected round trip to restore letters and cursor")
	}
}

func TestRetreatAcrossWordBoundary(t *testing.T) {
	s := newRunning(t, "cat", "dog")
	typeString(s, "cat ")
	if s.Cursor() != (Cursor{Word: 1, Letter: 0}) {
		t.Fatalf("expected cursor at start of second word, got %+v", s.Cursor())
	}
	s.Retreat()
	if s.Cursor() != (Cursor{Word: 0, Letter: 3}) {
		t.Fatalf("expected cursor on first word sentinel, got %+v", s.Cursor())
	}
	if s.Words()[0].Letters[3].State != Pending {
		t.Fatalf("expected sentinel reset to pending")
	}
	if s.Words()[0].Letters[2].State != Correct {
		t.Fatalf("expected earlier letters untouched")
	}
}

func TestRetreatDoesNotReclassify(t *testing.T) {
	s := newRunning(t, "cat")
	typeString(s, "x")
	s.Retreat()
	if s.Words()[0].Letters[0].State != Pending {
		t.Fatalf("expected pending after retreat")
	}
	if s.Mistakes() != 1 {
		t.Fatalf("expected counters to keep erased keystrokes, got %d mistakes", s.Mistakes())
	}
}

func TestFinishedIgnoresInput(t *testing.T) {
	s := newRunning(t, "a")
	s.Advance('a')
	before := snapshot(s)
	if out := s.Advance('b'); out != Ignored {
		t.Fatalf("expected Ignored after finish, got %v", out)
	}
	if out := s.Retreat(); out != Ignored {
		t.Fatalf("expected Ignored after finish, got %v", out)
	}
	if !reflect.DeepEqual(before, snapshot(s)) {
		t.Fatalf("expected no state change after finish")
	}
}

func TestFinishFromIdle(t *testing.T) {
	s, err := New(model.ModeTime, 10, []string{"cat"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !s.Finish() {
		t.Fatalf("expected Finish to transition from idle")
	}
	if s.CorrectWords() != 0 {
		t.Fatalf("expected no correct words")
	}
}

func TestCorrectWordsNeverExceedsReached(t *testing.T) {
	s := newRunning(t, "cat", "dog", "run", "sun")
	for _, r := range "cat dxg ru" {
		s.Advance(r)
		if got, reached := s.CorrectWords(), s.Cursor().Word; got > reached+1 {
			t.Fatalf("correct words %d exceeds reached words %d", got, reached+1)
		}
	}
}

func TestAllowed(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', ' ', '~', '.'} {
		if !Allowed(r) {
			t.Fatalf("expected %q to be allowed", r)
		}
	}
	for _, r := range []rune{'\t', '\n', 0x7f, 'é', Space} {
		if Allowed(r) {
			t.Fatalf("expected %q to be rejected", r)
		}
	}
}

type state struct {
	cursor Cursor
	status Status
	words  [][]LetterState
}

func snapshot(s *Session) state {
	st := state{cursor: s.Cursor(), status: s.Status()}
	for _, w := range s.Words() {
		letters := make([]LetterState, len(w.Letters))
		for i, l := range w.Letters {
			letters[i] = l.State
		}
		st.words = append(st.words, letters)
	}
	return st
}
