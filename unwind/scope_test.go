package unwind

import (
	"context"
	"errors"
	"testing"

	"github.com/andrebq/learn-scoped-resources/internal/logutil"
	"github.com/rs/zerolog"
)

func testCtx() context.Context {
	return logutil.WithLogger(context.Background(), zerolog.Nop())
}

func TestScopeRunsCleanupsInReverse(t *testing.T) {
	ctx := testCtx()
	var order []string
	s := NewScope("test")
	s.OnTerminate(func() { t.Fatal("terminate must not fire") })
	s.Defer("outer", func(context.Context) error {
		order = append(order, "outer")
		return nil
	})
	s.Defer("inner", func(context.Context) error {
		order = append(order, "inner")
		return nil
	})
	err := s.Run(ctx, func(context.Context) error {
		order = append(order, "body")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"body", "inner", "outer"}
	if len(order) != len(want) {
		t.Fatalf("order: %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order: %v, want %v", order, want)
		}
	}
}

func TestScopeSingleCleanupFailureIsRecoverable(t *testing.T) {
	ctx := testCtx()
	boom := errors.New("cleanup boom")
	s := NewScope("test")
	s.OnTerminate(func() { t.Fatal("a single failure must not terminate") })
	s.Defer("failing", func(context.Context) error { return boom })
	err := s.Run(ctx, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want the cleanup failure back, got %v", err)
	}
}

func TestScopeBodyFailureStillUnwinds(t *testing.T) {
	ctx := testCtx()
	boom := errors.New("body boom")
	ran := false
	s := NewScope("test")
	s.OnTerminate(func() { t.Fatal("terminate must not fire") })
	s.Defer("clean", func(context.Context) error {
		ran = true
		return nil
	})
	err := s.Run(ctx, func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("want the body failure back, got %v", err)
	}
	if !ran {
		t.Fatal("cleanups must run while a failure is propagating")
	}
}

func TestScopeCascadeTerminates(t *testing.T) {
	ctx := testCtx()
	first := errors.New("first")
	second := errors.New("second")
	terminated := 0
	s := NewScope("test")
	s.OnTerminate(func() { terminated++ })
	skipped := false
	s.Defer("earlier", func(context.Context) error {
		skipped = true
		return nil
	})
	s.Defer("failing", func(context.Context) error { return second })
	err := s.Run(ctx, func(context.Context) error { return first })
	if terminated != 1 {
		t.Fatalf("terminate fired %d times", terminated)
	}
	var cascade *CascadeError
	if !errors.As(err, &cascade) {
		t.Fatalf("want CascadeError, got %v", err)
	}
	if !errors.Is(cascade.First, first) || !errors.Is(cascade.Second, second) {
		t.Fatalf("cascade holds %v / %v", cascade.First, cascade.Second)
	}
	if skipped {
		t.Fatal("no cleanup may run past the point of termination")
	}
}
