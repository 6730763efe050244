// Package options keeps integer options sent by the server, such as the
// maximum quote length.
package options

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.etcd.io/bbolt"
)

var bucketName = []byte("options")

var ErrInvalidValue = errors.New("invalid option value")

// Manager returns overrides first, then defaults, then zero. Overrides are
// persisted when the manager is backed by a bbolt file.
type Manager struct {
	mu        sync.RWMutex
	defaults  map[string]int64
	overrides map[string]int64
	db        *bbolt.DB
}

func New(defaults map[string]int64) *Manager {
	m := &Manager{
		defaults:  make(map[string]int64, len(defaults)),
		overrides: make(map[string]int64),
	}
	for k, v := range defaults {
		m.defaults[k] = v
	}
	return m
}

// Open loads persisted overrides from the bbolt file at path.
func Open(path string, defaults map[string]int64) (*Manager, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open options storage")
	}
	m := New(defaults)
	m.db = db
	if err := db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			if len(v) != 8 {
				return errors.Wrapf(ErrInvalidValue, "option %q", k)
			}
			m.overrides[string(k)] = int64(binary.BigEndian.Uint64(v))
			return nil
		})
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "load options")
	}
	return m, nil
}

func (m *Manager) Int(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.overrides[name]; ok {
		return v
	}
	return m.defaults[name]
}

func (m *Manager) SetInt(name string, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db != nil {
		if err := m.db.Update(func(tx *bbolt.Tx) error {
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], uint64(value))
			return tx.Bucket(bucketName).Put([]byte(name), buf[:])
		}); err != nil {
			return errors.Wrapf(err, "store option %q", name)
		}
	}
	m.overrides[name] = value
	return nil
}

// Reset drops the override of name.
func (m *Manager) Reset(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db != nil {
		if err := m.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(bucketName).Delete([]byte(name))
		}); err != nil {
			return errors.Wrapf(err, "reset option %q", name)
		}
	}
	delete(m.overrides, name)
	return nil
}

func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
