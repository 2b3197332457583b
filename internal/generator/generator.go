// Package generator samples practice words from a dictionary.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/typesprint/internal/model"
)

// TimeModeWords is how many words a time-mode session is given. It exceeds
// what a typist completes within any offered countdown.
const TimeModeWords = 200

// ErrInvalidTarget reports a target that cannot be sampled.
var ErrInvalidTarget = errors.New("invalid target")

// Sampler produces randomized word sequences.
type Sampler struct {
	rnd   *rand.Rand
	words []string
}

// New returns a Sampler over words drawing from src.
func New(words []string, src rand.Source) *Sampler {
	dict := make([]string, len(words))
	copy(dict, words)
	return &Sampler{rnd: rand.New(src), words: dict}
}

// NewSeeded returns a Sampler seeded with seed, or with the current time when
// seed is zero.
func NewSeeded(words []string, seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(words, rand.NewSource(seed))
}

// Sample shuffles the dictionary and returns its last target entries in words
// mode, or its last TimeModeWords entries in time mode.
func (s *Sampler) Sample(mode model.Mode, target int) ([]string, error) {
	if target <= 0 {
		return nil, fmt.Errorf("%w: %d must be > 0", ErrInvalidTarget, target)
	}
	count := target
	switch mode {
	case model.ModeWords:
		if target > len(s.words) {
			return nil, fmt.Errorf("%w: %d exceeds dictionary size %d", ErrInvalidTarget, target, len(s.words))
		}
	case model.ModeTime:
		count = min(TimeModeWords, len(s.words))
	default:
		return nil, fmt.Errorf("%w: unknown mode %s", ErrInvalidTarget, mode)
	}

	shuffled := make([]string, len(s.words))
	copy(shuffled, s.words)
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[len(shuffled)-count:], nil
}
