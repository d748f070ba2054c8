package generator

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/fystack/lotofacil-generator/internal/sampler"
	"github.com/fystack/lotofacil-generator/pkg/model"
	"github.com/fystack/lotofacil-generator/pkg/store/drawstore"
	"github.com/fystack/lotofacil-generator/pkg/store/gamestore"
)

// maxParallelProfiles bounds concurrent window profiling.
const maxParallelProfiles = 4

// Profiles computes the signature profile of the last w draws for every w in
// windows, concurrently. Results keep the order of windows.
func (s *Service) Profiles(ctx context.Context, windows []int, topN int) ([]sampler.Profile, error) {
	records, err := s.draws.List()
	if err != nil {
		return nil, fmt.Errorf("load draws: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHistory
	}
	draws := drawstore.Draws(records)
	profiler := s.profiler(topN, 0)

	out := make([]sampler.Profile, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelProfiles)
	for i, w := range windows {
		r := lastWindow(len(draws), w)
		scope := contestScope(records[r.Start:r.End])
		g.Go(func() error {
			p, err := profiler.ProfileScoped(gctx, draws, r.Start, r.End, scope)
			if err != nil {
				return fmt.Errorf("window %d: %w", w, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Frequencies reports per-number counts over the last window draws, and the
// first and last contest they cover.
func (s *Service) Frequencies(window int) ([]sampler.NumberFrequency, ContestSpan, error) {
	records, err := s.draws.Latest(window)
	if err != nil {
		return nil, ContestSpan{}, fmt.Errorf("load draws: %w", err)
	}
	if len(records) == 0 {
		return nil, ContestSpan{}, ErrNoHistory
	}
	span := ContestSpan{First: records[0].Contest, Last: records[len(records)-1].Contest, Draws: len(records)}
	return sampler.Frequencies(drawstore.Draws(records), 0, len(records)), span, nil
}

// ContestSpan is the contest range a statistic was computed over.
type ContestSpan struct {
	First int `json:"first"`
	Last  int `json:"last"`
	Draws int `json:"draws"`
}

// CheckedGame is a saved game scored against one contest.
type CheckedGame struct {
	GameID  string `json:"game_id"`
	Numbers []int  `json:"numbers"`
	Hits    int    `json:"hits"`
}

// CheckReport scores a user's latest saved games against one contest.
type CheckReport struct {
	Contest int           `json:"contest"`
	Total   int64         `json:"total"`
	Games   []CheckedGame `json:"games"`
}

// Check scores the user's most recent saved games against a contest result,
// best first. Total counts every game the user saved, checked or not.
func (s *Service) Check(ctx context.Context, userID string, contest int, limit uint) (*CheckReport, error) {
	if s.games == nil {
		return nil, ErrGameStoreAbsent
	}
	record, found, err := s.draws.Get(contest)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("contest %d not imported", contest)
	}

	total, err := s.games.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	saved, err := s.games.ListByUser(ctx, userID, limit, 0)
	if err != nil {
		return nil, err
	}
	checked := lo.Map(saved, func(g *model.SavedGame, _ int) CheckedGame {
		return CheckedGame{
			GameID:  g.ID,
			Numbers: g.Numbers,
			Hits:    gamestore.Hits(g.Numbers, sampler.Draw(record.Numbers)),
		}
	})
	slices.SortStableFunc(checked, func(a, b CheckedGame) int { return b.Hits - a.Hits })
	return &CheckReport{Contest: contest, Total: total, Games: checked}, nil
}
