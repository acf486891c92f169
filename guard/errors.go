package guard

import (
	"errors"
	"strings"

	"github.com/andrebq/learn-scoped-resources/internal/provider"
)

type (
	// Stage indicates where in the guard lifecycle the failure happened
	Stage string

	// Kind categorizes the failure
	Kind string

	// Error is the structured failure reported by guards. Stage and
	// Kind carry the taxonomy, Cause carries the provider diagnostic.
	Error struct {
		Stage    Stage
		Kind     Kind
		Op       string
		Resource string
		Cause    error
	}
)

const (
	StageAcquire Stage = "acquire"
	StageUse     Stage = "use"
	StageRelease Stage = "release"
)

const (
	// KindIO is a hard failure reported by the provider
	KindIO Kind = "io"
	// KindPartial is an operation that completed only partially
	// (fewer bytes written than requested)
	KindPartial Kind = "partial"
	// KindBusy is a teardown refused because the resource is still in
	// use (destroying a locked mutex)
	KindBusy Kind = "busy"
	// KindReleased is an operation attempted after the guard already
	// gave up its handle
	KindReleased Kind = "released"
)

// ErrReleased is the cause carried by every use-after-release failure.
var ErrReleased = errors.New("resource already released")

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Stage))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Resource != "" {
		b.WriteByte(' ')
		b.WriteString(e.Resource)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error on Stage and Kind, ignoring the
// per-instance fields
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Stage == t.Stage && e.Kind == t.Kind
	}
	return false
}

func acquireErr(op, resource string, cause error) *Error {
	return &Error{Stage: StageAcquire, Kind: KindIO, Op: op, Resource: resource, Cause: cause}
}

func useErr(kind Kind, op, resource string, cause error) *Error {
	return &Error{Stage: StageUse, Kind: kind, Op: op, Resource: resource, Cause: cause}
}

func releaseErr(op, resource string, cause error) *Error {
	kind := KindIO
	if provider.Busy(cause) {
		kind = KindBusy
	}
	return &Error{Stage: StageRelease, Kind: kind, Op: op, Resource: resource, Cause: cause}
}

func releasedErr(op, resource string) *Error {
	return &Error{Stage: StageUse, Kind: KindReleased, Op: op, Resource: resource, Cause: ErrReleased}
}
