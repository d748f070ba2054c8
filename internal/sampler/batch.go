package sampler

import (
	"context"
	"fmt"
)

// BatchOptions configures one GenerateBatch call.
type BatchOptions struct {
	Count              int
	RangeStart         int
	RangeEnd           int
	MaxColumnsPerDraw  int
	MaxAttemptsPerGame int
	PoolSize           int
	// CacheScope identifies the draws behind the range in profile cache keys.
	CacheScope string
}

// DefaultBatchOptions covers the whole history [0, drawCount).
func DefaultBatchOptions(count, drawCount int) BatchOptions {
	return BatchOptions{
		Count:              count,
		RangeStart:         0,
		RangeEnd:           drawCount,
		MaxColumnsPerDraw:  DefaultMaxColumnsPerDraw,
		MaxAttemptsPerGame: DefaultMaxAttempts,
		PoolSize:           DefaultPoolSize,
	}
}

func (o BatchOptions) Validate() error {
	switch {
	case o.Count < 0:
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidConfig, o.Count)
	case o.MaxColumnsPerDraw < 1 || o.MaxColumnsPerDraw > Cols:
		return fmt.Errorf("%w: max columns per draw must be in [1,%d], got %d", ErrInvalidConfig, Cols, o.MaxColumnsPerDraw)
	case o.MaxAttemptsPerGame < 1:
		return fmt.Errorf("%w: max attempts per game must be >= 1, got %d", ErrInvalidConfig, o.MaxAttemptsPerGame)
	case o.RangeStart < 0 || o.RangeEnd < o.RangeStart:
		return fmt.Errorf("%w: invalid range [%d,%d)", ErrInvalidConfig, o.RangeStart, o.RangeEnd)
	case o.PoolSize < Cols:
		return fmt.Errorf("%w: pool size must be >= %d, got %d", ErrInvalidConfig, Cols, o.PoolSize)
	}
	return nil
}

// BatchResult reports what a batch produced against what was asked.
type BatchResult struct {
	Games     []Game `json:"games"`
	Requested int    `json:"requested"`
	Produced  int    `json:"produced"`
	Attempts  int    `json:"attempts"`
}

// Partial reports whether fewer games than requested were produced.
func (r BatchResult) Partial() bool {
	return r.Produced < r.Requested
}

// GenerateBatch produces up to opts.Count distinct accepted games. A slot whose
// attempt budget runs out is skipped, so Produced may be below Requested.
// A nil profiler profiles without caching.
func (s *Sampler) GenerateBatch(ctx context.Context, draws []Draw, opts BatchOptions, profiler *Profiler) (BatchResult, error) {
	result := BatchResult{Games: []Game{}, Requested: opts.Count}
	if err := opts.Validate(); err != nil {
		return result, err
	}
	if opts.Count == 0 {
		return result, nil
	}

	pool := BuildPool(draws, opts.RangeStart, opts.RangeEnd, opts.PoolSize, s.rng)
	if len(pool) == 0 {
		s.log.Debug("Empty column pool", "start", opts.RangeStart, "end", opts.RangeEnd)
		return result, nil
	}

	if profiler == nil {
		profiler = NewProfiler(nil)
	}
	profile, err := profiler.ProfileScoped(ctx, draws, opts.RangeStart, opts.RangeEnd, opts.CacheScope)
	if err != nil {
		return result, err
	}
	filter := NewFilter(profile)

	seen := make(map[string]struct{}, opts.Count)
	for slot := 0; slot < opts.Count; slot++ {
		if err := ctx.Err(); err != nil {
			result.Produced = len(result.Games)
			return result, err
		}
		game, attempts, ok := s.nextGame(pool, opts, filter, seen)
		result.Attempts += attempts
		if !ok {
			s.log.Debug("Attempt budget exhausted", "slot", slot, "attempts", attempts)
			continue
		}
		seen[game.Key()] = struct{}{}
		result.Games = append(result.Games, game)
	}
	result.Produced = len(result.Games)
	return result, nil
}

func (s *Sampler) nextGame(pool []Column, opts BatchOptions, filter Filter, seen map[string]struct{}) (Game, int, bool) {
	for attempt := 1; attempt <= opts.MaxAttemptsPerGame; attempt++ {
		cand, ok := s.SampleOne(pool, opts.MaxColumnsPerDraw)
		if !ok || !filter.Accept(cand.Game) {
			continue
		}
		if _, dup := seen[cand.Game.Key()]; dup {
			continue
		}
		return cand.Game, attempt, true
	}
	return Game{}, opts.MaxAttemptsPerGame, false
}
