package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketValues = "values"

// Ensure BoltStore implements Store at compile time.
var _ Store = (*BoltStore)(nil)

// BoltStore is a Store backed by a bbolt database file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketValues))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Get returns a copy of the value stored under key.
func (s *BoltStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketValues))
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoKey
		}
		// v is only valid for the life of the transaction.
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

// Put stores value under key, replacing any previous value.
func (s *BoltStore) Put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketValues))
		return b.Put([]byte(key), value)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *BoltStore) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketValues))
		return b.Delete([]byte(key))
	})
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
