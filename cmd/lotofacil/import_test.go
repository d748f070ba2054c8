package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fystack/lotofacil-generator/pkg/infra"
	"github.com/fystack/lotofacil-generator/pkg/kvstore"
	"github.com/fystack/lotofacil-generator/pkg/store/drawstore"
)

func draw(contest int) drawstore.Record {
	return drawstore.Record{
		Contest: contest,
		Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, contest),
		Numbers: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	}
}

func newDrawStore(t *testing.T) drawstore.Store {
	t.Helper()
	kv, err := kvstore.NewBadgerStore(t.TempDir(), "lotofacil", infra.JSON)
	require.NoError(t, err)
	store := drawstore.New(kv)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPruneMissing(t *testing.T) {
	store := newDrawStore(t)
	_, err := store.SaveMany([]drawstore.Record{draw(1), draw(2), draw(3), draw(4)})
	require.NoError(t, err)

	removed, err := pruneMissing(store, []drawstore.Record{draw(2), draw(4)})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Contest)
	assert.Equal(t, 4, records[1].Contest)
}

func TestPruneMissing_RefusesEmptyImport(t *testing.T) {
	store := newDrawStore(t)
	require.NoError(t, store.Save(draw(1)))

	_, err := pruneMissing(store, nil)
	require.Error(t, err)

	records, err := store.List()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
