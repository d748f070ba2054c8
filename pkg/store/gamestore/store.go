package gamestore

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/fystack/lotofacil-generator/internal/sampler"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/model"
	"github.com/fystack/lotofacil-generator/pkg/repository"
)

var ErrUserRequired = errors.New("user id is required")

// Store keeps the games users decided to play.
type Store interface {
	Save(ctx context.Context, userID string, source enum.GameSource, games []sampler.Game) ([]*model.SavedGame, error)
	ListByUser(ctx context.Context, userID string, limit, offset uint) ([]*model.SavedGame, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type gameStore struct {
	repo repository.Repository[model.SavedGame]
}

func New(repo repository.Repository[model.SavedGame]) Store {
	return &gameStore{repo: repo}
}

// NewSavedGame builds the row for g, signature included.
func NewSavedGame(userID string, source enum.GameSource, g sampler.Game) *model.SavedGame {
	sig := sampler.SignatureOf(g[:])
	return &model.SavedGame{
		UserID:  userID,
		Numbers: append([]int(nil), g[:]...),
		Source:  source,
		Gap:     sig.AverageGap.StringFixed(1),
		Std:     sig.StdDev.StringFixed(1),
	}
}

func (s *gameStore) Save(ctx context.Context, userID string, source enum.GameSource, games []sampler.Game) ([]*model.SavedGame, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	rows := lo.Map(games, func(g sampler.Game, _ int) *model.SavedGame {
		return NewSavedGame(userID, source, g)
	})
	// one batch is stored entirely or not at all
	err := s.repo.Transaction(ctx, func(tx repository.Repository[model.SavedGame]) error {
		return tx.Create(ctx, rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gameStore) ListByUser(ctx context.Context, userID string, limit, offset uint) ([]*model.SavedGame, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	return s.repo.Find(ctx, repository.FindOptions{
		Where:  repository.WhereType{"user_id": userID},
		Order:  repository.Order{"created_at": repository.OrderTypeDesc},
		Limit:  limit,
		Offset: offset,
	})
}

func (s *gameStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrUserRequired
	}
	return s.repo.Count(ctx, repository.FindOptions{
		Where: repository.WhereType{"user_id": userID},
	})
}

// Hits counts how many of the game's numbers were drawn.
func Hits(game []int, draw sampler.Draw) int {
	drawn := make(map[int]struct{}, len(draw))
	for _, n := range draw {
		drawn[n] = struct{}{}
	}
	return lo.CountBy(game, func(n int) bool {
		_, ok := drawn[n]
		return ok
	})
}
