package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fystack/lotofacil-generator/internal/sampler"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/sigcache"
	"github.com/fystack/lotofacil-generator/pkg/store/drawstore"
)

func TestProfiles(t *testing.T) {
	svc := NewService(newDrawStore(t, randomRecords(50, 9)), sigcache.NewMemory())

	profiles, err := svc.Profiles(context.Background(), []int{10, 25, 0}, 3)
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	assert.Equal(t, sampler.Range{Start: 40, End: 50}, profiles[0].Window)
	assert.Equal(t, sampler.Range{Start: 25, End: 50}, profiles[1].Window)
	assert.Equal(t, sampler.Range{Start: 0, End: 50}, profiles[2].Window)
	for _, p := range profiles {
		assert.LessOrEqual(t, len(p.TopGaps), 3)
		assert.NotEmpty(t, p.TopGaps)
		assert.NotEmpty(t, p.TopStds)
	}
}

func TestProfiles_NoHistory(t *testing.T) {
	_, err := NewService(newDrawStore(t, nil), nil).Profiles(context.Background(), []int{10}, 3)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestFrequencies(t *testing.T) {
	svc := NewService(newDrawStore(t, randomRecords(20, 4)), nil)

	freq, span, err := svc.Frequencies(10)
	require.NoError(t, err)
	assert.Equal(t, ContestSpan{First: 11, Last: 20, Draws: 10}, span)
	require.Len(t, freq, sampler.MaxNumber)

	total := 0
	for _, f := range freq {
		total += f.Count
	}
	assert.Equal(t, 10*sampler.GameSize, total)
}

func TestCheck(t *testing.T) {
	records := []drawstore.Record{{
		Contest: 1,
		Numbers: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	}}
	games := &fakeGames{}
	svc := NewService(newDrawStore(t, records), nil, WithGameStore(games))

	_, err := games.Save(context.Background(), "bob", enum.GameSourceManual, []sampler.Game{
		{11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	})
	require.NoError(t, err)

	report, err := svc.Check(context.Background(), "bob", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Total)
	assert.Equal(t, 1, report.Contest)
	require.Len(t, report.Games, 2)
	assert.Equal(t, 15, report.Games[0].Hits)
	assert.Equal(t, 5, report.Games[1].Hits)

	_, err = svc.Check(context.Background(), "bob", 2, 10)
	assert.Error(t, err)
}

func TestCheck_NeedsGameStore(t *testing.T) {
	_, err := NewService(newDrawStore(t, nil), nil).Check(context.Background(), "bob", 1, 10)
	assert.ErrorIs(t, err, ErrGameStoreAbsent)
}
