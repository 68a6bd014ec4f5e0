// Package poller implements the bounded polling session that watches a
// document until its compliance analysis is complete. One Session owns
// its timer, attempt counter and busy flag; nothing is shared between
// sessions.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lexbharat/lexbharat/internal/client"
	"github.com/lexbharat/lexbharat/internal/domain/analysis"
)

// State of a session.
type State string

const (
	StateIdle      State = "idle"
	StatePolling   State = "polling"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// Terminal failure reasons. Failed means the record never showed up at
// all; TimedOut means it existed but never completed within the budget.
const (
	ReasonNotFound   = "no analysis data available"
	ReasonIncomplete = "analysis incomplete after maximum wait"
)

// ErrCancelled is returned by Run when the caller cancels the session.
var ErrCancelled = errors.New("polling session cancelled")

// Source is one status query, typically client.Client.FetchAnalysis.
type Source interface {
	FetchAnalysis(ctx context.Context, id analysis.DocumentID) (client.Snapshot, error)
}

// Config is policy, not protocol: callers may tune both knobs.
type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

// DefaultConfig polls every 5 seconds for 60 attempts, about five
// minutes of budget.
func DefaultConfig() Config {
	return Config{Interval: 5 * time.Second, MaxAttempts: 60}
}

// Progress is reported after every inconclusive attempt.
type Progress struct {
	Attempt int
	Missing []string
}

// Outcome is the terminal result of a session.
type Outcome struct {
	State    State
	Reason   string
	Record   *analysis.Record
	Attempts int
}

// Session polls for one document id. Create with New, drive with Run,
// stop early with Cancel. A Session is single-use.
type Session struct {
	src        Source
	docID      analysis.DocumentID
	cfg        Config
	onProgress func(Progress)

	mu        sync.Mutex
	state     State
	attempts  int
	busy      bool
	cancelled bool
}

// Option configures a Session.
type Option func(*Session)

// WithProgress registers a callback invoked after each attempt that did
// not finish the session. Called from the polling goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(s *Session) { s.onProgress = fn }
}

func New(src Source, docID analysis.DocumentID, cfg Config, opts ...Option) *Session {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	s := &Session{src: src, docID: docID, cfg: cfg, state: StateIdle}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempts returns how many queries have been issued so far.
func (s *Session) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Cancel stops the session without a verdict. Safe to call from any
// goroutine, idempotent, and effective even while a query is in flight:
// the in-flight response is discarded, never applied.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
}

// Run drives the session to a terminal state and returns its outcome.
// The first query is issued immediately, then one per interval tick.
// Returns ErrCancelled if Cancel is called or ctx is done first.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return Outcome{}, errors.New("session already started")
	}
	s.state = StatePolling
	s.mu.Unlock()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if out, done := s.attempt(ctx); done {
			if out.State == "" {
				return Outcome{Attempts: s.Attempts()}, ErrCancelled
			}
			return out, nil
		}

		select {
		case <-ctx.Done():
			s.Cancel()
			return Outcome{Attempts: s.Attempts()}, ErrCancelled
		case <-ticker.C:
		}
	}
}

// attempt issues one query and applies its result. done is true when the
// session reached a terminal state or was cancelled (zero Outcome).
func (s *Session) attempt(ctx context.Context) (Outcome, bool) {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return Outcome{}, true
	}
	if s.busy {
		// previous query still in flight; skip this tick rather than
		// risk out-of-order state updates
		s.mu.Unlock()
		return Outcome{}, false
	}
	s.busy = true
	s.mu.Unlock()

	snap, err := s.src.FetchAnalysis(ctx, s.docID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	// a response that lands after cancellation must not mutate anything
	if s.cancelled {
		return Outcome{}, true
	}

	s.attempts++
	exhausted := s.attempts >= s.cfg.MaxAttempts

	// transport or parse errors count toward the budget but are not
	// themselves terminal
	if err != nil {
		if exhausted {
			return s.finish(StateTimedOut, ReasonIncomplete, nil), true
		}
		s.progress(nil)
		return Outcome{}, false
	}

	switch snap.State {
	case client.StateReady:
		return s.finish(StateSucceeded, "", snap.Record), true
	case client.StateNotFound:
		if exhausted {
			return s.finish(StateFailed, ReasonNotFound, nil), true
		}
		s.progress([]string{analysis.PartAnalysis, analysis.PartVisualization})
		return Outcome{}, false
	default: // processing / incomplete
		if exhausted {
			return s.finish(StateTimedOut, ReasonIncomplete, snap.Record), true
		}
		s.progress(snap.Missing)
		return Outcome{}, false
	}
}

// finish must be called with s.mu held.
func (s *Session) finish(state State, reason string, rec *analysis.Record) Outcome {
	s.state = state
	return Outcome{State: state, Reason: reason, Record: rec, Attempts: s.attempts}
}

// progress must be called with s.mu held.
func (s *Session) progress(missing []string) {
	if s.onProgress == nil {
		return
	}
	p := Progress{Attempt: s.attempts, Missing: missing}
	// release the lock around the callback so it may query the session
	s.mu.Unlock()
	s.onProgress(p)
	s.mu.Lock()
}
