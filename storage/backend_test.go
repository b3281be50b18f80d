package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKey(t *testing.T) {
	key := GetKey(TableNamespace, "run list/summary")

	assert.Equal(t, TableNamespace, GetNamespaceFromKey(key))
	assert.Equal(t, "run list/summary", GetNameFromKey(key))
	assert.Equal(t, GetKeyPrefix(TableNamespace), key[:1])
}

func testBackend(t *testing.T, backend Backend) {
	key := GetKey(TableNamespace, "a")
	_, err := backend.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)

	has, err := backend.Has(key)
	require.NoError(t, err)
	assert.False(t, has)

	window := []byte{0, 1, 2, 3, 4, 5}
	require.NoError(t, backend.Put(key, window))
	buf, err := backend.Get(key)
	require.NoError(t, err)
	assert.Equal(t, window, buf)

	has, err = backend.Has(key)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, backend.Put(GetKey(TableNamespace, "c"), []byte{1}))
	require.NoError(t, backend.Put(GetKey(TableNamespace, "b"), []byte{2}))
	require.NoError(t, backend.Put(GetKey(TableNamespace+1, "z"), []byte{3}))

	var names []string
	err = backend.IterateKeys(GetKeyPrefix(TableNamespace), func(key []byte) error {
		names = append(names, GetNameFromKey(key))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	require.NoError(t, backend.Delete(key))
	_, err = backend.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Close())
}

func TestInMemoryBackend(t *testing.T) {
	testBackend(t, NewInMemoryBackend())
}

func TestBadgerBackend(t *testing.T) {
	backend, err := NewBadgerBackend(TestBadgerBackendConfig())
	require.NoError(t, err)
	testBackend(t, backend)
}

func TestBadgerBackend_OnDisk(t *testing.T) {
	dir := t.TempDir()
	key := GetKey(TableNamespace, "persisted")
	{
		backend, err := NewBadgerBackend(&BadgerBackendConfig{Path: dir})
		require.NoError(t, err)
		require.NoError(t, backend.Put(key, []byte("table")))
		require.NoError(t, backend.Close())
	}
	{
		backend, err := NewBadgerBackend(&BadgerBackendConfig{Path: dir})
		require.NoError(t, err)
		buf, err := backend.Get(key)
		require.NoError(t, err)
		assert.Equal(t, []byte("table"), buf)
		require.NoError(t, backend.Close())
	}
}
