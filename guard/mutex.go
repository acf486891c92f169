package guard

import (
	"context"

	"github.com/andrebq/learn-scoped-resources/internal/logutil"
	"github.com/andrebq/learn-scoped-resources/internal/provider"
)

type (
	// Mutex owns one mutual-exclusion primitive. Lock/Unlock pairing
	// is the caller's job, the guard only guarantees the primitive is
	// destroyed exactly once and never used after that.
	Mutex struct {
		owned
		p provider.Mutexes
	}
)

// InitMutex acquires a fresh primitive from the provider.
func InitMutex(ctx context.Context, p provider.Mutexes) (*Mutex, error) {
	h, err := p.Init()
	if err != nil {
		return nil, acquireErr("init", "mutex", err)
	}
	log := logutil.Component(ctx, "guard.mutex")
	log.Debug().Uint32("handle", uint32(h)).Msg("Acquired mutex")
	return &Mutex{owned: own(h), p: p}, nil
}

func (m *Mutex) Lock(ctx context.Context) error {
	h, ok := m.use()
	if !ok {
		return releasedErr("lock", "mutex")
	}
	if err := m.p.Lock(h); err != nil {
		return useErr(KindIO, "lock", "mutex", err)
	}
	return nil
}

func (m *Mutex) Unlock(ctx context.Context) error {
	h, ok := m.use()
	if !ok {
		return releasedErr("unlock", "mutex")
	}
	if err := m.p.Unlock(h); err != nil {
		return useErr(KindIO, "unlock", "mutex", err)
	}
	return nil
}

// Destroy releases the primitive. Destroying while still locked is a
// caller error the provider reports as busy, the guard is Released
// regardless. Later calls are successful no-ops.
func (m *Mutex) Destroy(ctx context.Context) error {
	h, ok := m.take()
	if !ok {
		return nil
	}
	log := logutil.Component(ctx, "guard.mutex")
	log.Debug().Uint32("handle", uint32(h)).Msg("Destroying mutex")
	if err := m.p.Destroy(h); err != nil {
		return releaseErr("destroy", "mutex", err)
	}
	return nil
}

// ScopeDestroy is the defer-path release, reporting failure to the
// diagnostic log instead of returning it.
func (m *Mutex) ScopeDestroy(ctx context.Context) {
	if err := m.Destroy(ctx); err != nil {
		log := logutil.Component(ctx, "guard.mutex")
		log.Error().Err(err).Msg("Release failed during scope exit")
	}
}

// Move transfers ownership to a fresh guard, leaving m Released.
func (m *Mutex) Move() *Mutex {
	return &Mutex{owned: m.owned.move(), p: m.p}
}
