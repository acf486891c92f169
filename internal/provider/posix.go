package provider

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

type (
	// Posix implements Files and Mutexes the way the demos expect
	// from the platform: files over the OS, mutexes over an
	// in-process primitive with pthread-style failure codes.
	Posix struct {
		files   *table[*os.File]
		mutexes *table[*mutexState]
	}

	mutexState struct {
		mu     sync.Mutex
		locked bool
	}
)

func NewPosix() *Posix {
	return &Posix{
		files:   newTable[*os.File](),
		mutexes: newTable[*mutexState](),
	}
}

func (p *Posix) Open(path string) (Handle, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("error opening file: %w", err)
	}
	return p.files.alloc(f), nil
}

func (p *Posix) Write(h Handle, data []byte) (int, error) {
	f, ok := p.files.get(h)
	if !ok {
		return 0, fmt.Errorf("write: %w", unix.EINVAL)
	}
	n, err := f.Write(data)
	if err != nil {
		return n, fmt.Errorf("error writing data: %w", err)
	}
	return n, nil
}

// Close invalidates the handle even when the underlying close fails,
// closing twice is undefined at the platform layer and the table must
// never hand the same dead handle out again.
func (p *Posix) Close(h Handle) error {
	f, ok := p.files.drop(h)
	if !ok {
		return fmt.Errorf("close: %w", unix.EINVAL)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	return nil
}

func (p *Posix) Init() (Handle, error) {
	return p.mutexes.alloc(&mutexState{}), nil
}

func (p *Posix) Lock(h Handle) error {
	m, ok := p.mutexes.get(h)
	if !ok {
		return fmt.Errorf("lock: %w", unix.EINVAL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked {
		return fmt.Errorf("lock: %w", unix.EDEADLK)
	}
	m.locked = true
	return nil
}

func (p *Posix) Unlock(h Handle) error {
	m, ok := p.mutexes.get(h)
	if !ok {
		return fmt.Errorf("unlock: %w", unix.EINVAL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.locked {
		return fmt.Errorf("unlock: %w", unix.EPERM)
	}
	m.locked = false
	return nil
}

// Destroy refuses to tear down a locked mutex, matching
// pthread_mutex_destroy. The handle stays valid in that case so the
// caller can unlock and retry.
func (p *Posix) Destroy(h Handle) error {
	m, ok := p.mutexes.get(h)
	if !ok {
		return fmt.Errorf("destroy: %w", unix.EINVAL)
	}
	m.mu.Lock()
	locked := m.locked
	m.mu.Unlock()
	if locked {
		return fmt.Errorf("destroy: %w", unix.EBUSY)
	}
	if _, ok := p.mutexes.drop(h); !ok {
		return fmt.Errorf("destroy: %w", unix.EINVAL)
	}
	return nil
}

// Busy reports whether err is the resource-busy class of failure a
// provider raises for teardown of a still-locked primitive.
func Busy(err error) bool {
	return errors.Is(err, unix.EBUSY)
}
