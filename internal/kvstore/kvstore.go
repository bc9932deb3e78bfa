// Package kvstore provides the persistent key-value store backing the
// summary history. The store holds string values under string keys; the
// application uses a single fixed key whose value is the serialized
// history. Get and Set are synchronous and safe for concurrent use.
package kvstore

import "errors"

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("kvstore: store is closed")

// Store abstracts the durable key-value storage.
// Get returns the stored value and whether the key was present.
// Set replaces the full value for the key (full-replace write, not an
// incremental append).
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}
