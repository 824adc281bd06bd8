package interfaces

// Storage is the durable key-value store that survives restarts. The session
// layer only ever uses the "token" and "user" keys.
//
// Implementations must be safe for concurrent use.
type Storage interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Delete removes all given keys. Missing keys are not an error.
	Delete(keys ...string) error
}
