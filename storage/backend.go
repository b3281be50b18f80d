package storage

import (
	"bytes"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// Namespaces partition the key space of a backend.
const (
	TableNamespace byte = iota + 1
)

func GetKeyPrefix(namespace byte) []byte {
	return []byte{namespace}
}

// GetKey is <1 byte namespace> <name bytes>.
func GetKey(namespace byte, name string) []byte {
	buf := make([]byte, 1+len(name))
	buf[0] = namespace
	copy(buf[1:], name)
	return buf
}

func GetNameFromKey(buf []byte) string {
	return string(buf[1:])
}

func GetNamespaceFromKey(buf []byte) byte {
	return buf[0]
}

type Backend interface {
	Get(key []byte) ([]byte, error)
	Put(key []byte, buf []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)

	// IterateKeys calls lambda with every key under prefix in ascending
	// order, stopping at the first error.
	IterateKeys(prefix []byte, lambda func(key []byte) error) error

	Close() error
}

type InMemoryBackend struct {
	values map[string][]byte
	mu     sync.RWMutex
}

func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{
		values: make(map[string][]byte),
	}
}

func (backend *InMemoryBackend) Get(key []byte) ([]byte, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	buf, ok := backend.values[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte{}, buf...), nil
}

func (backend *InMemoryBackend) Put(key []byte, buf []byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.values[string(key)] = append([]byte{}, buf...)
	return nil
}

func (backend *InMemoryBackend) Delete(key []byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	delete(backend.values, string(key))
	return nil
}

func (backend *InMemoryBackend) Has(key []byte) (bool, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	_, ok := backend.values[string(key)]
	return ok, nil
}

func (backend *InMemoryBackend) IterateKeys(prefix []byte, lambda func(key []byte) error) error {
	backend.mu.RLock()
	keys := make([]string, 0, len(backend.values))
	for k := range backend.values {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	backend.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := lambda([]byte(k)); err != nil {
			return err
		}
	}
	return nil
}

func (backend *InMemoryBackend) Close() error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.values = nil
	return nil
}
