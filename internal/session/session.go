// Package session implements the typing state machine: a cursor walking the
// letters of the sampled words, classifying each keystroke as it goes.
package session

import (
	"errors"

	"github.com/verte-zerg/typesprint/internal/model"
)

// Space is the sentinel letter placed between words. A typed ' ' matches it.
const Space = '\u00a0'

// ErrNoWords is returned when a session is built from an empty word list.
var ErrNoWords = errors.New("session needs at least one non-empty word")

// Status is the session lifecycle state.
type Status int

const (
	// Idle means no keystroke has been accepted yet.
	Idle Status = iota
	// Running means keystrokes are being classified.
	Running
	// Finished is terminal until the session is replaced.
	Finished
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// LetterState is the classification of one letter.
type LetterState int

const (
	// Pending letters have not been typed, or were erased.
	Pending LetterState = iota
	// Correct letters matched the key pressed.
	Correct
	// Incorrect letters did not.
	Incorrect
)

// Letter is one expected character.
type Letter struct {
	Expected rune
	State    LetterState
}

// Matches reports whether r is the key expected for this letter.
func (l Letter) Matches(r rune) bool {
	if l.Expected == Space {
		return r == ' '
	}
	return r == l.Expected
}

// Word is an ordered run of letters, including the trailing space sentinel
// for every word but the last.
type Word struct {
	Letters []Letter
}

// Text returns the expected characters of w without the space sentinel.
func (w Word) Text() string {
	runes := make([]rune, 0, len(w.Letters))
	for _, l := range w.Letters {
		if l.Expected == Space {
			continue
		}
		runes = append(runes, l.Expected)
	}
	return string(runes)
}

// AllCorrect reports whether every letter of w is Correct.
func (w Word) AllCorrect() bool {
	for _, l := range w.Letters {
		if l.State != Correct {
			return false
		}
	}
	return true
}

// Cursor points at the next letter to type.
type Cursor struct {
	Word   int
	Letter int
}

// Outcome describes what a keystroke did.
type Outcome int

const (
	// Ignored means the keystroke did not change state.
	Ignored Outcome = iota
	// Advanced means a letter was classified and the cursor moved forward.
	Advanced
	// Retreated means the cursor moved back and a letter was reset.
	Retreated
	// Completed means the final letter was classified and the session finished.
	Completed
)

// Session is one attempt at a typing trial.
type Session struct {
	mode   model.Mode
	target int
	words  []Word
	cursor Cursor
	status Status

	keystrokes int
	mistakes   int
}

// New builds an Idle session over words.
func New(mode model.Mode, target int, words []string) (*Session, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	built := make([]Word, 0, len(words))
	for i, w := range words {
		runes := []rune(w)
		if len(runes) == 0 {
			return nil, ErrNoWords
		}
		letters := make([]Letter, 0, len(runes)+1)
		for _, r := range runes {
			letters = append(letters, Letter{Expected: r})
		}
		if i < len(words)-1 {
			letters = append(letters, Letter{Expected: Space})
		}
		built = append(built, Word{Letters: letters})
	}
	return &Session{mode: mode, target: target, words: built}, nil
}

// Mode returns the session mode.
func (s *Session) Mode() model.Mode { return s.mode }

// Target returns the word count or seconds the session was built for.
func (s *Session) Target() int { return s.target }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Cursor returns the current position.
func (s *Session) Cursor() Cursor { return s.cursor }

// Words returns the session words. Callers must not modify them.
func (s *Session) Words() []Word { return s.words }

// Keystrokes returns how many keystrokes were classified, including ones
// later erased.
func (s *Session) Keystrokes() int { return s.keystrokes }

// Mistakes returns how many classified keystrokes were Incorrect.
func (s *Session) Mistakes() int { return s.mistakes }

// Start moves an Idle session to Running. It reports whether the transition
// happened.
func (s *Session) Start() bool {
	if s.status != Idle {
		return false
	}
	s.status = Running
	return true
}

// Advance classifies the letter under the cursor against r and moves forward.
func (s *Session) Advance(r rune) Outcome {
	if s.status != Running {
		return Ignored
	}
	word := &s.words[s.cursor.Word]
	letter := &word.Letters[s.cursor.Letter]
	s.keystrokes++
	if letter.Matches(r) {
		letter.State = Correct
	} else {
		letter.State = Incorrect
		s.mistakes++
	}

	if s.cursor.Letter+1 < len(word.Letters) {
		s.cursor.Letter++
		return Advanced
	}
	if s.cursor.Word+1 < len(s.words) {
		s.cursor.Word++
		s.cursor.Letter = 0
		return Advanced
	}
	s.status = Finished
	return Completed
}

// Retreat moves the cursor back one letter and resets that letter to Pending.
// At the first letter of the first word it does nothing.
func (s *Session) Retreat() Outcome {
	if s.status != Running {
		return Ignored
	}
	switch {
	case s.cursor.Letter > 0:
		s.cursor.Letter--
	case s.cursor.Word > 0:
		s.cursor.Word--
		s.cursor.Letter = len(s.words[s.cursor.Word].Letters) - 1
	default:
		return Ignored
	}
	s.words[s.cursor.Word].Letters[s.cursor.Letter].State = Pending
	return Retreated
}

// Finish ends the session. It reports whether this call made the transition.
func (s *Session) Finish() bool {
	if s.status == Finished {
		return false
	}
	s.status = Finished
	return true
}

// CorrectWords counts words whose every letter is Correct.
func (s *Session) CorrectWords() int {
	count := 0
	for _, w := range s.words {
		if w.AllCorrect() {
			count++
		}
	}
	return count
}

// Allowed reports whether r belongs to the accepted input set.
func Allowed(r rune) bool {
	return r >= ' ' && r <= '~'
}
