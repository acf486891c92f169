package guard

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrebq/learn-scoped-resources/internal/logutil"
	"github.com/andrebq/learn-scoped-resources/internal/provider"
	"github.com/rs/zerolog"
)

type fakeFiles struct {
	opens      int
	closes     int
	lastClosed provider.Handle
	closeErr   error
	short      bool
}

func (f *fakeFiles) Open(path string) (provider.Handle, error) {
	f.opens++
	return provider.Handle(f.opens), nil
}

func (f *fakeFiles) Write(h provider.Handle, data []byte) (int, error) {
	if f.short {
		return len(data) - 1, nil
	}
	return len(data), nil
}

func (f *fakeFiles) Close(h provider.Handle) error {
	f.closes++
	f.lastClosed = h
	return f.closeErr
}

func testCtx() context.Context {
	return logutil.WithLogger(context.Background(), zerolog.Nop())
}

func TestFileWriteThenRelease(t *testing.T) {
	ctx := testCtx()
	out := filepath.Join(t.TempDir(), "out.txt")
	payload := []byte("Hello, from Go.")
	f, err := Open(ctx, provider.NewPosix(), out)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Write(ctx, payload); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(ctx); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Fatalf("file holds %q, want %q", got, payload)
	}
	// second release is a no-op
	if err := f.Close(ctx); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
}

func TestFileUseAfterRelease(t *testing.T) {
	ctx := testCtx()
	p := &fakeFiles{}
	f, err := Open(ctx, p, "whatever")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(ctx); err != nil {
		t.Fatal(err)
	}
	err = f.Write(ctx, []byte("late"))
	if err == nil {
		t.Fatal("write after release must fail")
	}
	if !errors.Is(err, ErrReleased) {
		t.Fatalf("want ErrReleased cause, got %v", err)
	}
	if !errors.Is(err, &Error{Stage: StageUse, Kind: KindReleased}) {
		t.Fatalf("want use/released taxonomy, got %v", err)
	}
}

func TestFilePartialWrite(t *testing.T) {
	ctx := testCtx()
	p := &fakeFiles{short: true}
	f, err := Open(ctx, p, "whatever")
	if err != nil {
		t.Fatal(err)
	}
	err = f.Write(ctx, []byte("Hello, from Go."))
	if !errors.Is(err, &Error{Stage: StageUse, Kind: KindPartial}) {
		t.Fatalf("want use/partial, got %v", err)
	}
}

func TestFileMoveTransfersOwnership(t *testing.T) {
	ctx := testCtx()
	p := &fakeFiles{}
	src, err := Open(ctx, p, "whatever")
	if err != nil {
		t.Fatal(err)
	}
	dst := src.Move()
	// the emptied source performs no provider call at scope exit
	src.ScopeClose(ctx)
	if p.closes != 0 {
		t.Fatalf("moved-from guard called the provider %d times", p.closes)
	}
	if err := src.Write(ctx, []byte("x")); !errors.Is(err, ErrReleased) {
		t.Fatalf("moved-from guard must be released, got %v", err)
	}
	if err := dst.Write(ctx, []byte("x")); err != nil {
		t.Fatalf("destination must be live, got %v", err)
	}
	if err := dst.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if p.closes != 1 || p.lastClosed != 1 {
		t.Fatalf("destination must release the original handle, closes=%d last=%d", p.closes, p.lastClosed)
	}
}

func TestFileFailedCloseStillReleases(t *testing.T) {
	ctx := testCtx()
	p := &fakeFiles{closeErr: errors.New("boom")}
	f, err := Open(ctx, p, "whatever")
	if err != nil {
		t.Fatal(err)
	}
	err = f.Close(ctx)
	if !errors.Is(err, &Error{Stage: StageRelease, Kind: KindIO}) {
		t.Fatalf("want release/io, got %v", err)
	}
	// the handle is gone even though teardown failed
	if err := f.Write(ctx, []byte("x")); !errors.Is(err, ErrReleased) {
		t.Fatalf("guard must be released after failed close, got %v", err)
	}
	if err := f.Close(ctx); err != nil {
		t.Fatalf("close after failed close is a no-op, got %v", err)
	}
	if p.closes != 1 {
		t.Fatalf("provider teardown must not be retried, closes=%d", p.closes)
	}
}

func TestFileScopeCloseReportsFailure(t *testing.T) {
	var buf bytes.Buffer
	ctx := logutil.WithLogger(context.Background(), zerolog.New(&buf))
	p := &fakeFiles{closeErr: errors.New("boom")}
	f, err := Open(ctx, p, "whatever")
	if err != nil {
		t.Fatal(err)
	}
	f.ScopeClose(ctx)
	out := buf.String()
	if !strings.Contains(out, "Release failed during scope exit") {
		t.Fatalf("scope-exit failure must reach the diagnostic log, got:\n%s", out)
	}
	if !strings.Contains(out, "guard.file") {
		t.Fatalf("scope-exit record must carry the component tag, got:\n%s", out)
	}
	if !strings.Contains(out, "boom") {
		t.Fatalf("scope-exit record must carry the provider diagnostic, got:\n%s", out)
	}
}

func TestFileLifecycleIsLogged(t *testing.T) {
	var buf bytes.Buffer
	ctx := logutil.WithLogger(context.Background(), zerolog.New(&buf))
	p := &fakeFiles{}
	f, err := Open(ctx, p, "whatever")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(ctx); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Acquired write handle") || !strings.Contains(out, "Releasing write handle") {
		t.Fatalf("acquire and release must reach the diagnostic log, got:\n%s", out)
	}
}

func TestFileAcquireFailure(t *testing.T) {
	ctx := testCtx()
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	f, err := Open(ctx, provider.NewPosix(), missing)
	if err == nil {
		t.Fatal("open into a missing directory must fail")
	}
	if f != nil {
		t.Fatal("no guard may be produced on acquisition failure")
	}
	if !errors.Is(err, &Error{Stage: StageAcquire, Kind: KindIO}) {
		t.Fatalf("want acquire/io, got %v", err)
	}
}
