// Package kv provides the single key-value store Forkify persists to.
// It plays the part localStorage plays for a browser app: a handful of string
// keys, each holding one serialized value.
package kv

import "errors"

// ErrNoKey is returned by Get when there is no such key.
var ErrNoKey = errors.New("no such key")

// Store is a flat key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
