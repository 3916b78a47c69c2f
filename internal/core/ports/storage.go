package ports

import "context"

// Storage is the key/value persistence behind the session store.
// Implementations must be safe for concurrent use; removing a missing key is
// not an error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// Pinger is implemented by storages that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}
