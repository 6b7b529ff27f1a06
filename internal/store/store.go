package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketState = []byte("state")

// BoltStore implements domain.KVStore on BoltDB. When constructed with an
// empty directory it runs memory-only (no persistence), which tests and the
// demo source mode rely on.
type BoltStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects mem

	// Memory-only fallback when db is nil
	mem map[string]string
}

// NewBoltStore opens (or creates) the store under dir. An empty dir selects
// memory-only mode.
func NewBoltStore(dir string) (*BoltStore, error) {
	if dir == "" {
		return &BoltStore{mem: make(map[string]string)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "picbind.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db, mem: make(map[string]string)}, nil
}

// Read returns the stored value for key, or false if absent.
func (s *BoltStore) Read(key string) (string, bool) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		v, ok := s.mem[key]
		return v, ok
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return "", false
	}
	return string(data), true
}

// Write stores value under key.
func (s *BoltStore) Write(key, value string) error {
	if s.db == nil {
		s.mu.Lock()
		s.mem[key] = value
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		return b.Put([]byte(key), []byte(value))
	})
}

// Delete removes key. Absent keys are ignored.
func (s *BoltStore) Delete(key string) error {
	if s.db == nil {
		s.mu.Lock()
		delete(s.mem, key)
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
