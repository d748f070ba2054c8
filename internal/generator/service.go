package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fystack/lotofacil-generator/internal/sampler"
	"github.com/fystack/lotofacil-generator/pkg/common/config"
	"github.com/fystack/lotofacil-generator/pkg/common/enum"
	"github.com/fystack/lotofacil-generator/pkg/events"
	"github.com/fystack/lotofacil-generator/pkg/model"
	"github.com/fystack/lotofacil-generator/pkg/store/drawstore"
	"github.com/fystack/lotofacil-generator/pkg/store/gamestore"
)

var (
	ErrNoHistory       = errors.New("no draws imported yet")
	ErrGameStoreAbsent = errors.New("saved games need a database")
)

// Request is one generation call. Params is normally a resolved config preset.
type Request struct {
	Preset string
	Params config.Preset
	UserID string
	Save   bool
	// Seed makes the batch reproducible; 0 seeds from the clock.
	Seed uint64
}

type Result struct {
	BatchID string        `json:"batch_id"`
	Window  sampler.Range `json:"window"`
	sampler.BatchResult
	Saved []*model.SavedGame `json:"saved,omitempty"`
}

type Option func(*Service)

func WithGameStore(games gamestore.Store) Option {
	return func(s *Service) { s.games = games }
}

func WithEmitter(emitter events.Emitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type profilerKey struct {
	topN int
	ttl  time.Duration
}

// Service ties the draw history, the shared profile cache and the optional
// saved-game store and event emitter together. Safe for concurrent use.
type Service struct {
	draws   drawstore.Store
	cache   sampler.Cache
	games   gamestore.Store
	emitter events.Emitter
	log     *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	profilers map[profilerKey]*sampler.Profiler
}

// NewService builds a service over draws. A nil cache disables profile caching.
func NewService(draws drawstore.Store, cache sampler.Cache, opts ...Option) *Service {
	s := &Service{
		draws:     draws,
		cache:     cache,
		log:       slog.Default(),
		now:       time.Now,
		profilers: make(map[profilerKey]*sampler.Profiler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// profiler returns the shared profiler for the given top-N and TTL.
func (s *Service) profiler(topN int, ttl time.Duration) *sampler.Profiler {
	if topN <= 0 {
		topN = sampler.DefaultTopN
	}
	if ttl <= 0 {
		ttl = sampler.DefaultProfileTTL
	}
	key := profilerKey{topN: topN, ttl: ttl}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profilers[key]
	if !ok {
		p = sampler.NewProfiler(s.cache,
			sampler.WithTopN(topN),
			sampler.WithTTL(ttl),
			sampler.WithClock(s.now),
			sampler.WithProfilerLogger(s.log),
		)
		s.profilers[key] = p
	}
	return p
}

// window is the tail of the history a request works on.
type window struct {
	draws []sampler.Draw
	span  sampler.Range
	// scope names the contests behind span for profile cache keys.
	scope string
}

// history loads every draw and the range covering the last n of them.
func (s *Service) history(n int) (window, error) {
	records, err := s.draws.List()
	if err != nil {
		return window{}, fmt.Errorf("load draws: %w", err)
	}
	if len(records) == 0 {
		return window{}, ErrNoHistory
	}
	span := lastWindow(len(records), n)
	return window{
		draws: drawstore.Draws(records),
		span:  span,
		scope: contestScope(records[span.Start:span.End]),
	}, nil
}

// contestScope is "c<first>-<last>" over the contests in records.
func contestScope(records []drawstore.Record) string {
	if len(records) == 0 {
		return ""
	}
	return fmt.Sprintf("c%d-%d", records[0].Contest, records[len(records)-1].Contest)
}

// lastWindow is [n-size, n); a non-positive or oversized size covers everything.
func lastWindow(n, size int) sampler.Range {
	if size <= 0 || size > n {
		size = n
	}
	return sampler.Range{Start: n - size, End: n}
}

func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Save && s.games == nil {
		return nil, ErrGameStoreAbsent
	}
	if req.Save && req.UserID == "" {
		return nil, gamestore.ErrUserRequired
	}

	w, err := s.history(req.Params.Window)
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = uint64(s.now().UnixNano())
	}
	smp := sampler.New(
		sampler.WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		sampler.WithLogger(s.log),
	)

	opts := batchOptions(req.Params, w)
	batch, err := smp.GenerateBatch(ctx, w.draws, opts, s.profiler(req.Params.TopN, req.Params.CacheTTL))
	result := &Result{
		BatchID:     uuid.NewString(),
		Window:      w.span,
		BatchResult: batch,
	}
	if err != nil {
		s.emitFailure(ctx, result.BatchID, err)
		return result, err
	}

	if batch.Partial() {
		s.log.Warn("Batch under-delivered",
			"requested", batch.Requested,
			"produced", batch.Produced,
			"attempts", batch.Attempts,
			"window", w.span.End-w.span.Start,
		)
	}

	if req.Save && len(batch.Games) > 0 {
		saved, err := s.games.Save(ctx, req.UserID, enum.GameSourceBatch, batch.Games)
		if err != nil {
			err = fmt.Errorf("save games: %w", err)
			s.emitFailure(ctx, result.BatchID, err)
			return result, err
		}
		result.Saved = saved
	}

	if s.emitter != nil {
		err := s.emitter.EmitBatch(ctx, events.BatchEvent{
			BatchID:   result.BatchID,
			UserID:    req.UserID,
			Preset:    req.Preset,
			Window:    w.span.End - w.span.Start,
			Requested: batch.Requested,
			Produced:  batch.Produced,
			Attempts:  batch.Attempts,
			Games:     batch.Games,
		})
		if err != nil {
			s.log.Error("Emit batch event failed", "batch_id", result.BatchID, "err", err)
		}
	}
	return result, nil
}

// batchOptions starts from the sampler defaults over the window; non-positive
// params keep the default.
func batchOptions(p config.Preset, w window) sampler.BatchOptions {
	opts := sampler.DefaultBatchOptions(p.Count, w.span.End)
	opts.RangeStart = w.span.Start
	opts.CacheScope = w.scope
	if p.MaxColumnsPerDraw > 0 {
		opts.MaxColumnsPerDraw = p.MaxColumnsPerDraw
	}
	if p.MaxAttempts > 0 {
		opts.MaxAttemptsPerGame = p.MaxAttempts
	}
	if p.PoolSize > 0 {
		opts.PoolSize = p.PoolSize
	}
	return opts
}

// emitFailure publishes an error event. Cancellation is the caller's own
// doing and is not reported.
func (s *Service) emitFailure(ctx context.Context, batchID string, err error) {
	if s.emitter == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	if emitErr := s.emitter.EmitError(context.WithoutCancel(ctx), err); emitErr != nil {
		s.log.Error("Emit error event failed", "batch_id", batchID, "err", emitErr)
	}
}
