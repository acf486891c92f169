// Package unwind demonstrates what happens when cleanup itself fails
// while an earlier failure is still propagating out of a scope.
//
// A Scope runs a body and then its registered cleanups in reverse
// registration order. One failure at a time is recoverable and is
// returned to the caller. A second failure raised while the first is
// still in flight has no handler that could receive both, so the scope
// escalates to abnormal process termination.
package unwind

import (
	"context"
	"fmt"
	"os"

	"github.com/andrebq/learn-scoped-resources/internal/logutil"
)

type (
	// CleanupFunc is a fallible teardown step.
	CleanupFunc func(ctx context.Context) error

	// Scope pairs a body with LIFO cleanups. Not safe for concurrent
	// use, the demos are strictly single-threaded.
	Scope struct {
		name      string
		cleanups  []cleanup
		terminate func()
	}

	cleanup struct {
		name string
		fn   CleanupFunc
	}

	// CascadeError names the unrecoverable condition: Second failed
	// while First was still propagating.
	CascadeError struct {
		First  error
		Second error
	}
)

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascading failure during cleanup: %v (while propagating: %v)", e.Second, e.First)
}

func (e *CascadeError) Unwrap() []error {
	return []error{e.First, e.Second}
}

func NewScope(name string) *Scope {
	return &Scope{
		name:      name,
		terminate: func() { os.Exit(2) },
	}
}

// OnTerminate replaces the process-termination step, tests use it to
// observe escalation without dying.
func (s *Scope) OnTerminate(fn func()) {
	s.terminate = fn
}

// Defer registers a cleanup, to run after the body in reverse
// registration order.
func (s *Scope) Defer(name string, fn CleanupFunc) {
	s.cleanups = append(s.cleanups, cleanup{name: name, fn: fn})
}

// Run executes body, then every registered cleanup innermost-first.
// Cleanups run whether or not the body failed, that is the unwinding.
// A single failure (from the body or from one cleanup) is returned.
// A cleanup failure while another failure is in flight is logged with
// both errors and escalated through the terminate hook, no caller
// receives either error.
func (s *Scope) Run(ctx context.Context, body func(ctx context.Context) error) error {
	log := logutil.Component(ctx, "unwind").With().Str("scope", s.name).Logger()
	var inflight error
	if body != nil {
		inflight = body(ctx)
	}
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		c := s.cleanups[i]
		err := c.fn(ctx)
		if err == nil {
			continue
		}
		if inflight != nil {
			log.Error().
				Str("cleanup", c.name).
				AnErr("propagating", inflight).
				AnErr("second", err).
				Msg("Cleanup failed while another failure was propagating, terminating")
			s.terminate()
			return &CascadeError{First: inflight, Second: err}
		}
		inflight = err
	}
	return inflight
}
