package gamestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fystack/lotofacil-generator/internal/sampler"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/model"
	"github.com/fystack/lotofacil-generator/pkg/repository"
)

type fakeRepo struct {
	txCalls int
	created []*model.SavedGame
	lastOpt repository.FindOptions
	err     error
}

func (f *fakeRepo) Find(_ context.Context, opt repository.FindOptions) ([]*model.SavedGame, error) {
	f.lastOpt = opt
	return f.created, f.err
}

func (f *fakeRepo) Count(_ context.Context, opt repository.FindOptions) (int64, error) {
	f.lastOpt = opt
	return int64(len(f.created)), f.err
}

func (f *fakeRepo) Create(_ context.Context, rows []*model.SavedGame) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, rows...)
	return nil
}

// Transaction stages creates and only keeps them when fn succeeds.
func (f *fakeRepo) Transaction(_ context.Context, fn func(repository.Repository[model.SavedGame]) error) error {
	f.txCalls++
	staged := &fakeRepo{err: f.err}
	if err := fn(staged); err != nil {
		return err
	}
	f.created = append(f.created, staged.created...)
	return nil
}

var lowGame = sampler.Game{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

func TestSave(t *testing.T) {
	repo := &fakeRepo{}
	store := New(repo)

	rows, err := store.Save(context.Background(), "u1", enum.GameSourceBatch, []sampler.Game{lowGame})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0].UserID)
	assert.Equal(t, lowGame[:], rows[0].Numbers)
	assert.Equal(t, enum.GameSourceBatch, rows[0].Source)
	assert.Equal(t, "1.0", rows[0].Gap)
	assert.Equal(t, "4.3", rows[0].Std)
	assert.Len(t, repo.created, 1)
	assert.Equal(t, 1, repo.txCalls, "saved inside one transaction")
}

func TestSave_RequiresUser(t *testing.T) {
	_, err := New(&fakeRepo{}).Save(context.Background(), "", enum.GameSourceBatch, []sampler.Game{lowGame})
	assert.ErrorIs(t, err, ErrUserRequired)
}

func TestSave_PropagatesRepoError(t *testing.T) {
	repo := &fakeRepo{err: repository.ErrDuplicate}
	_, err := New(repo).Save(context.Background(), "u1", enum.GameSourceManual, []sampler.Game{lowGame})
	assert.True(t, errors.Is(err, repository.ErrDuplicate))
	assert.Equal(t, 1, repo.txCalls)
	assert.Empty(t, repo.created, "nothing kept from a failed transaction")
}

func TestListByUser_BuildsQuery(t *testing.T) {
	repo := &fakeRepo{}
	_, err := New(repo).ListByUser(context.Background(), "u1", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, repository.WhereType{"user_id": "u1"}, repo.lastOpt.Where)
	assert.Equal(t, uint(10), repo.lastOpt.Limit)
	assert.Equal(t, uint(20), repo.lastOpt.Offset)
	assert.Equal(t, repository.OrderTypeDesc, repo.lastOpt.Order["created_at"])
}

func TestHits(t *testing.T) {
	draw := sampler.Draw{1, 2, 3, 4, 5, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25}
	assert.Equal(t, 5, Hits(lowGame[:], draw))
	assert.Equal(t, 15, Hits(draw, draw))
	assert.Equal(t, 0, Hits(nil, draw))
}

func TestCountByUser(t *testing.T) {
	repo := &fakeRepo{}
	store := New(repo)
	_, err := store.Save(context.Background(), "u1", enum.GameSourceBatch, []sampler.Game{lowGame, lowGame})
	require.NoError(t, err)

	n, err := store.CountByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, repository.WhereType{"user_id": "u1"}, repo.lastOpt.Where)

	_, err = store.CountByUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrUserRequired)
}
