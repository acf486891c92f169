// Package provider binds the demos to platform facilities. Guards never
// touch files or lock primitives directly, they go through one of these
// capabilities and hold only the opaque handle.
package provider

type (
	// Handle is an opaque reference to a provider-owned resource.
	// Handle 0 is reserved and always invalid.
	Handle uint32

	// Files is the capability to obtain, use and tear down a handle
	// that accepts writes.
	Files interface {
		Open(path string) (Handle, error)
		Write(h Handle, data []byte) (int, error)
		Close(h Handle) error
	}

	// Mutexes is the capability to obtain, use and tear down a
	// mutual-exclusion primitive.
	Mutexes interface {
		Init() (Handle, error)
		Lock(h Handle) error
		Unlock(h Handle) error
		Destroy(h Handle) error
	}
)
