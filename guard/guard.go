// Package guard implements the scoped-resource discipline the demos
// are about: a guard owns exactly one provider handle, exposes
// operations only while the handle is live, and releases it exactly
// once on every exit path.
//
// Release is fallible and explicit. The defer-path variants
// (ScopeClose, ScopeDestroy) never return the failure, they report it
// to the diagnostic log, because a cleanup running during unwinding has
// no safe delivery target for an error.
package guard

import "github.com/andrebq/learn-scoped-resources/internal/provider"

type (
	// owned is the two-state core every guard embeds: Live while the
	// handle is present, Released forever after. The transition is
	// one-way, a failed teardown does not revert it.
	owned struct {
		handle provider.Handle
		live   bool
	}
)

func own(h provider.Handle) owned {
	return owned{handle: h, live: true}
}

// use returns the handle for an operation on a live resource.
func (o *owned) use() (provider.Handle, bool) {
	if !o.live {
		return 0, false
	}
	return o.handle, true
}

// take clears the guard and returns the handle for teardown. The
// clear happens before the provider is even called, so the guard is
// Released no matter what teardown reports.
func (o *owned) take() (provider.Handle, bool) {
	if !o.live {
		return 0, false
	}
	h := o.handle
	o.live = false
	o.handle = 0
	return h, true
}

// move transfers ownership, leaving the source Released with no
// provider call pending at its scope exit.
func (o *owned) move() owned {
	m := *o
	o.live = false
	o.handle = 0
	return m
}
