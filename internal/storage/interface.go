package storage

// KV is the on-device key-value store the app persists into. Values are
// JSON-encoded collection blobs keyed by the constants.Key* names; providers
// may normalize insignificant whitespace but must otherwise return the bytes
// Set stored, including across a reload. Providers are single-process and
// assume no concurrent external writers.
type KV interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the raw value for key. The second return is false when the
	// key has never been written.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error

	// Utils
	Path() string
}
