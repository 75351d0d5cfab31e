package session

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Keys of the two persisted entries. They are always cleared together.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store is durable key/value storage for the client session.
// Set and Delete are idempotent. SetAll and Delete apply all keys or none.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	SetAll(values map[string]string) error
	Delete(keys ...string) error
	Close() error
}

var bucketName = []byte("session")

// BoltStore keeps the entries in a bbolt file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens or creates the store at path, creating parent directories.
func OpenBoltStore(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "create session directory")
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open session store %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init session bucket")
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	return value, found, errors.Wrap(err, "read session")
}

func (s *BoltStore) Set(key, value string) error {
	return s.SetAll(map[string]string{key: value})
}

// SetAll writes all values in one transaction.
func (s *BoltStore) SetAll(values map[string]string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for k, v := range values {
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrap(err, "write session")
}

// Delete removes all keys in one transaction.
func (s *BoltStore) Delete(keys ...string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.Wrap(err, "clear session")
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// MemoryStore is a non-durable Store for tests and one-shot runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	return s.SetAll(map[string]string{key: value})
}

func (s *MemoryStore) SetAll(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
