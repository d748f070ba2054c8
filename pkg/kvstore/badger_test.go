package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/infra"
)

func newTestStore(t *testing.T, prefix string) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir(), prefix, infra.JSON)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerStore_SetGet(t *testing.T) {
	store := newTestStore(t, "lotofacil")

	require.NoError(t, store.Set("latest", "3300"))
	v, err := store.Get("latest")
	require.NoError(t, err)
	assert.Equal(t, "3300", v)
	assert.Equal(t, "badger", store.GetName())
}

func TestBadgerStore_GetMissing(t *testing.T) {
	store := newTestStore(t, "")

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	var out []int
	found, err := store.GetAny("missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBadgerStore_EmptyKey(t *testing.T) {
	store := newTestStore(t, "")

	assert.ErrorIs(t, store.Set("", "x"), ErrKeyEmpty)
	assert.ErrorIs(t, store.SetAny("k", nil), ErrNilValue)
	_, err := store.List("")
	assert.ErrorIs(t, err, ErrPrefixEmpty)
}

func TestBadgerStore_SetAnyGetAny(t *testing.T) {
	store := newTestStore(t, "p")

	in := map[string][]int{"numbers": {1, 2, 3}}
	require.NoError(t, store.SetAny("draw", in))

	var out map[string][]int
	found, err := store.GetAny("draw", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestBadgerStore_ListIsOrderedAndRelative(t *testing.T) {
	store := newTestStore(t, "lotofacil")

	require.NoError(t, store.Set("draws/000010", "b"))
	require.NoError(t, store.Set("draws/000002", "a"))
	require.NoError(t, store.Set("other/000001", "z"))

	pairs, err := store.List("draws/")
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "draws/000002", pairs[0].Key)
	assert.Equal(t, []byte("a"), pairs[0].Value)
	assert.Equal(t, "draws/000010", pairs[1].Key)
}

func TestBadgerStore_Delete(t *testing.T) {
	store := newTestStore(t, "")

	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Delete("k"))
	_, err := store.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestNewFromConfig(t *testing.T) {
	store, err := NewFromConfig(config.KVSConfig{
		Type:   enum.KVStoreTypeBadger,
		Badger: config.BadgerConfig{Directory: t.TempDir()},
	})
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, "badger", store.GetName())

	_, err = NewFromConfig(config.KVSConfig{Type: "etcd"})
	assert.Error(t, err)
}
