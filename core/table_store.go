package core

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/ristretto"
	"nestsummary/storage"
)

// TableStore persists finished tables under a name, with an optional read
// cache in front of the backend. Tables handed out are copies, so callers
// cannot change what is stored.
type TableStore struct {
	backend      storage.Backend
	cacheEnabled bool
	cache        *ristretto.Cache
	logger       *slog.Logger
}

func NewTableStore(backend storage.Backend, cacheEnabled bool) *TableStore {
	store := &TableStore{
		backend:      backend,
		cacheEnabled: cacheEnabled,
		logger:       slog.Default(),
	}
	if cacheEnabled {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 1e4,
			MaxCost:     1 << 10,
			BufferItems: 64,
		})
		if err != nil {
			store.cacheEnabled = false
		} else {
			store.cache = cache
		}
	}
	return store
}

func OpenTableStore(config *StoreConfig) (*TableStore, error) {
	if config.BadgerConfig == nil {
		return NewTableStore(storage.NewInMemoryBackend(), config.CacheEnabled), nil
	}
	backend, err := storage.NewBadgerBackend(config.BadgerConfig)
	if err != nil {
		return nil, fmt.Errorf("open table store: %w", err)
	}
	return NewTableStore(backend, config.CacheEnabled), nil
}

func (store *TableStore) SetLogger(logger *slog.Logger) *TableStore {
	store.logger = logger
	return store
}

// Save stores table under name. Unless overwrite is set, an existing table
// of the same name is left alone and ErrExists returned.
func (store *TableStore) Save(name string, table *Table, overwrite bool) error {
	key := storage.GetKey(storage.TableNamespace, name)
	if !overwrite {
		exists, err := store.backend.Has(key)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%q: %w", name, ErrExists)
		}
	}
	buf, err := TableToBytes(table)
	if err != nil {
		return fmt.Errorf("encode %q: %w", name, err)
	}
	if store.cacheEnabled {
		store.cache.Del(string(key))
	}
	if err := store.backend.Put(key, buf); err != nil {
		return err
	}
	store.logger.Debug("saved table", "name", name, "bytes", len(buf))
	return nil
}

func (store *TableStore) Load(name string) (*Table, error) {
	key := storage.GetKey(storage.TableNamespace, name)
	if store.cacheEnabled {
		if cached, found := store.cache.Get(string(key)); found {
			return cached.(*Table).Clone(), nil
		}
	}
	buf, err := store.backend.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	table, err := BytesToTable(buf)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	if store.cacheEnabled {
		store.cache.Set(string(key), table.Clone(), 1)
	}
	return table, nil
}

func (store *TableStore) Delete(name string) error {
	key := storage.GetKey(storage.TableNamespace, name)
	if store.cacheEnabled {
		store.cache.Del(string(key))
	}
	return store.backend.Delete(key)
}

// Names lists the stored table names in ascending order.
func (store *TableStore) Names() ([]string, error) {
	var names []string
	err := store.backend.IterateKeys(storage.GetKeyPrefix(storage.TableNamespace), func(key []byte) error {
		names = append(names, storage.GetNameFromKey(key))
		return nil
	})
	return names, err
}

// LoadOrCompute returns the table stored under name when load is set and it
// exists, and otherwise runs compute, saving its result when save is set.
func (store *TableStore) LoadOrCompute(name string, compute func() (*Table, error), save, load bool) (*Table, error) {
	if load {
		table, err := store.Load(name)
		if err == nil {
			store.logger.Info("loaded table from store", "name", name)
			return table, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		store.logger.Debug("table not in store, computing", "name", name)
	}
	table, err := compute()
	if err != nil {
		return nil, err
	}
	if save {
		err := store.Save(name, table, false)
		if errors.Is(err, ErrExists) {
			store.logger.Warn("not overwriting stored table", "name", name)
		} else if err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (store *TableStore) Close() error {
	if store.cacheEnabled {
		store.cache.Close()
	}
	return store.backend.Close()
}
