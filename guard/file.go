package guard

import (
	"context"
	"fmt"

	"github.com/andrebq/learn-scoped-resources/internal/logutil"
	"github.com/andrebq/learn-scoped-resources/internal/provider"
)

type (
	// File owns one write handle from the moment Open succeeds until
	// Close (or ScopeClose) runs.
	File struct {
		owned
		p    provider.Files
		path string
	}
)

// Open acquires a write handle for path. On provider failure no guard
// is produced and the error carries the platform diagnostic.
func Open(ctx context.Context, p provider.Files, path string) (*File, error) {
	h, err := p.Open(path)
	if err != nil {
		return nil, acquireErr("open", path, err)
	}
	log := logutil.Component(ctx, "guard.file")
	log.Debug().Str("path", path).Msg("Acquired write handle")
	return &File{owned: own(h), p: p, path: path}, nil
}

// Write sends data through the live handle. A short write is its own
// failure kind, distinct from a hard provider error, neither is ever
// silently ignored.
func (f *File) Write(ctx context.Context, data []byte) error {
	h, ok := f.use()
	if !ok {
		return releasedErr("write", f.path)
	}
	n, err := f.p.Write(h, data)
	if err != nil {
		return useErr(KindIO, "write", f.path, err)
	}
	if n != len(data) {
		return useErr(KindPartial, "write", f.path, fmt.Errorf("incomplete write operation: %d of %d bytes", n, len(data)))
	}
	return nil
}

// Close releases the handle. The first call invokes the provider
// teardown and clears the handle whether teardown succeeded or not,
// every later call is a successful no-op.
func (f *File) Close(ctx context.Context) error {
	h, ok := f.take()
	if !ok {
		return nil
	}
	log := logutil.Component(ctx, "guard.file")
	log.Debug().Str("path", f.path).Msg("Releasing write handle")
	if err := f.p.Close(h); err != nil {
		return releaseErr("close", f.path, err)
	}
	return nil
}

// ScopeClose is the defer-path release. A failure here cannot travel
// as an error return, so it is reported to the diagnostic log instead
// of being swallowed.
func (f *File) ScopeClose(ctx context.Context) {
	if err := f.Close(ctx); err != nil {
		log := logutil.Component(ctx, "guard.file")
		log.Error().Err(err).Str("path", f.path).Msg("Release failed during scope exit")
	}
}

// Move transfers ownership to a fresh guard, leaving f Released. f's
// scope exit performs no provider call afterwards.
func (f *File) Move() *File {
	return &File{owned: f.owned.move(), p: f.p, path: f.path}
}

// Path of the underlying file, kept for diagnostics after release.
func (f *File) Path() string {
	return f.path
}
