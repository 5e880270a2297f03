// Package storage is the local persistent key-value store the editor keeps
// its document in.
package storage

import "errors"

// Store is a synchronous string key-value store.
type Store interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")
