// Package trainer drives a typing session: it samples words, owns the clock
// and countdown, feeds keystrokes to the state machine and computes the result
// when the session ends.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/verte-zerg/typesprint/internal/clock"
	"github.com/verte-zerg/typesprint/internal/generator"
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/stats"
)

// Recorder receives every finished session.
type Recorder interface {
	Record(ctx context.Context, mode model.Mode, target int, res model.Result) (model.RunRecord, error)
}

// Effect tells the presentation what follows a handled event.
type Effect struct {
	// Schedule asks for Tick to be delivered to Fire after one second.
	Schedule bool
	Tick     clock.Tick
	// Finished is set when this event ended the session.
	Finished bool
	// Restarted is set when this event replaced the session.
	Restarted bool
}

// Trainer owns the current session and its timers.
type Trainer struct {
	sampler   *generator.Sampler
	clock     *clock.Clock
	countdown clock.Countdown
	recorder  Recorder
	logger    *log.Logger

	mode    model.Mode
	target  int
	session *session.Session

	result    model.Result
	hasResult bool
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithRecorder records every finished session.
func WithRecorder(r Recorder) Option {
	return func(t *Trainer) {
		t.recorder = r
	}
}

// WithLogger sets the logger for recorder failures.
func WithLogger(l *log.Logger) Option {
	return func(t *Trainer) {
		t.logger = l
	}
}

// New returns a Trainer with an Idle session for mode and target.
func New(sampler *generator.Sampler, clk *clock.Clock, mode model.Mode, target int, opts ...Option) (*Trainer, error) {
	t := &Trainer{
		sampler: sampler,
		clock:   clk,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.SetMode(mode, target); err != nil {
		return nil, err
	}
	return t, nil
}

// SetMode cancels the current session and starts a fresh Idle one.
func (t *Trainer) SetMode(mode model.Mode, target int) error {
	words, err := t.sampler.Sample(mode, target)
	if err != nil {
		return fmt.Errorf("sample words: %w", err)
	}
	s, err := session.New(mode, target, words)
	if err != nil {
		return fmt.Errorf("build session: %w", err)
	}
	t.countdown.Cancel()
	t.clock.Reset()
	t.mode = mode
	t.target = target
	t.session = s
	t.result = model.Result{}
	t.hasResult = false
	return nil
}

// Restart replaces the session with a re-sampled one of the same mode.
func (t *Trainer) Restart() error {
	return t.SetMode(t.mode, t.target)
}

// Abandon discards the current session, whatever its state, and restarts.
func (t *Trainer) Abandon() (Effect, error) {
	if err := t.Restart(); err != nil {
		return Effect{}, err
	}
	return Effect{Restarted: true}, nil
}

// Press handles a character key.
func (t *Trainer) Press(r rune) Effect {
	if t.session.Status() == session.Finished {
		if r != ' ' {
			return Effect{}
		}
		if err := t.Restart(); err != nil {
			t.logger.Printf("restart failed: %v", err)
			return Effect{}
		}
		return Effect{Restarted: true}
	}
	if !session.Allowed(r) {
		return Effect{}
	}

	var eff Effect
	if t.session.Start() {
		eff = t.begin()
	}
	if t.session.Advance(r) == session.Completed {
		t.finish()
	}
	if t.session.Status() == session.Finished {
		eff.Finished = true
		eff.Schedule = false
	}
	return eff
}

// Backspace handles the erase key.
func (t *Trainer) Backspace() Effect {
	t.session.Retreat()
	return Effect{}
}

// Fire handles one elapsed countdown second.
func (t *Trainer) Fire(tick clock.Tick) Effect {
	wasFinished := t.session.Status() == session.Finished
	more := t.countdown.Fire(tick)
	eff := Effect{Schedule: more, Tick: tick}
	if !wasFinished && t.session.Status() == session.Finished {
		eff.Finished = true
	}
	return eff
}

func (t *Trainer) begin() Effect {
	t.clock.Start()
	if t.mode != model.ModeTime {
		return Effect{}
	}
	tick := t.countdown.Begin(t.target, nil, t.finish)
	return Effect{Schedule: t.countdown.Running(), Tick: tick}
}

func (t *Trainer) finish() {
	if !t.session.Finish() && t.hasResult {
		return
	}
	t.countdown.Cancel()
	elapsed := 0
	if err := t.clock.Stop(); err == nil {
		elapsed, _ = t.clock.ElapsedSeconds()
	} else if !errors.Is(err, clock.ErrNotStarted) {
		t.logger.Printf("stop clock: %v", err)
	}
	t.result = stats.Compute(t.session, elapsed)
	t.hasResult = true

	if t.recorder == nil {
		return
	}
	if _, err := t.recorder.Record(context.Background(), t.mode, t.target, t.result); err != nil {
		t.logger.Printf("failed to record session: %v", err)
	}
}

// Session returns the current session.
func (t *Trainer) Session() *session.Session {
	return t.session
}

// Mode returns the selected mode and target.
func (t *Trainer) Mode() (model.Mode, int) {
	return t.mode, t.target
}

// Remaining returns the countdown seconds left. Before the first keystroke of
// a time-mode session it is the full target.
func (t *Trainer) Remaining() int {
	if t.mode != model.ModeTime {
		return 0
	}
	if t.session.Status() == session.Idle {
		return t.target
	}
	return t.countdown.Remaining()
}

// Elapsed returns whole seconds since the first keystroke, or 0 before it.
func (t *Trainer) Elapsed() int {
	elapsed, err := t.clock.ElapsedSeconds()
	if err != nil {
		return 0
	}
	return elapsed
}

// Result returns the statistics of the finished session.
func (t *Trainer) Result() (model.Result, bool) {
	return t.result, t.hasResult
}
