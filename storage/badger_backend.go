package storage

import (
	"errors"

	"github.com/dgraph-io/badger/v2"
)

type BadgerBackendConfig struct {
	// Path is the badger directory. It is ignored when InMemory is set.
	Path     string
	InMemory bool
}

func TestBadgerBackendConfig() *BadgerBackendConfig {
	return &BadgerBackendConfig{InMemory: true}
}

type BadgerBackend struct {
	db *badger.DB
}

func NewBadgerBackend(config *BadgerBackendConfig) (*BadgerBackend, error) {
	var options badger.Options
	if config.InMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	} else {
		options = badger.DefaultOptions(config.Path)
	}
	db, err := badger.Open(options.WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &BadgerBackend{db: db}, nil
}

func (backend *BadgerBackend) Close() error {
	return backend.db.Close()
}

func (backend *BadgerBackend) Get(key []byte) ([]byte, error) {
	var buf []byte
	err := backend.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		buf, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return buf, err
}

func (backend *BadgerBackend) Put(key []byte, buf []byte) error {
	return backend.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf)
	})
}

func (backend *BadgerBackend) Delete(key []byte) error {
	return backend.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (backend *BadgerBackend) Has(key []byte) (bool, error) {
	err := backend.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (backend *BadgerBackend) IterateKeys(prefix []byte, lambda func(key []byte) error) error {
	iterOpts := badger.DefaultIteratorOptions
	iterOpts.PrefetchValues = false
	iterOpts.Prefix = prefix
	return backend.db.View(func(txn *badger.Txn) error {
		iter := txn.NewIterator(iterOpts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			if err := lambda(iter.Item().KeyCopy(nil)); err != nil {
				return err
			}
		}
		return nil
	})
}
