package sampler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultProfileTTL = time.Hour
	DefaultTopN       = 3
)

// Cache stores encoded profiles with an expiry. Implementations live in pkg/sigcache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Range is a half-open window [Start, End) over the draw history.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Profile holds the most frequent signature buckets of a window.
type Profile struct {
	TopGaps    []decimal.Decimal `json:"top_gaps"`
	TopStds    []decimal.Decimal `json:"top_stds"`
	Window     Range             `json:"window"`
	Draws      int               `json:"draws"`
	ComputedAt time.Time         `json:"computed_at"`
}

type ProfilerOption func(*Profiler)

func WithTTL(ttl time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

func WithTopN(n int) ProfilerOption {
	return func(p *Profiler) {
		if n > 0 {
			p.topN = n
		}
	}
}

func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

func WithProfilerLogger(l *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		if l != nil {
			p.log = l
		}
	}
}

// Profiler computes and caches window profiles. It is safe for concurrent use
// as long as its Cache is.
type Profiler struct {
	cache Cache
	ttl   time.Duration
	topN  int
	now   func() time.Time
	log   *slog.Logger
}

// NewProfiler returns a profiler backed by cache. A nil cache disables caching.
func NewProfiler(cache Cache, opts ...ProfilerOption) *Profiler {
	p := &Profiler{
		cache: cache,
		ttl:   DefaultProfileTTL,
		topN:  DefaultTopN,
		now:   time.Now,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Profiler) TopN() int { return p.topN }

func (p *Profiler) cacheKey(start, end int, scope string) string {
	key := fmt.Sprintf("profile:%d-%d:top%d", start, end, p.topN)
	if scope != "" {
		key += ":" + scope
	}
	return key
}

// Profile returns the top signature buckets for draws in [start, end).
// Cache errors are logged and never fail the call.
func (p *Profiler) Profile(ctx context.Context, draws []Draw, start, end int) (Profile, error) {
	return p.ProfileScoped(ctx, draws, start, end, "")
}

// ProfileScoped is Profile with scope appended to the cache key. Positions
// alone do not identify the draws they cover once the history changes or
// the cache is shared between hosts, so callers name the data set, e.g. by
// the first and last contest of the window.
func (p *Profiler) ProfileScoped(ctx context.Context, draws []Draw, start, end int, scope string) (Profile, error) {
	start, end = clampRange(len(draws), start, end)
	key := p.cacheKey(start, end, scope)

	if cached, ok := p.lookup(ctx, key); ok {
		return cached, nil
	}
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}

	profile := p.compute(draws, start, end)
	if p.cache != nil {
		data, err := json.Marshal(profile)
		if err == nil {
			err = p.cache.Set(ctx, key, data, p.ttl)
		}
		if err != nil {
			p.log.Warn("Store profile in cache failed", "key", key, "err", err)
		}
	}
	return profile, nil
}

func (p *Profiler) lookup(ctx context.Context, key string) (Profile, bool) {
	if p.cache == nil {
		return Profile{}, false
	}
	data, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.log.Warn("Read profile from cache failed", "key", key, "err", err)
		return Profile{}, false
	}
	if !ok {
		return Profile{}, false
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		p.log.Warn("Decode cached profile failed", "key", key, "err", err)
		return Profile{}, false
	}
	if p.now().Sub(profile.ComputedAt) >= p.ttl {
		return Profile{}, false
	}
	p.log.Debug("Profile cache hit", "key", key)
	return profile, true
}

func (p *Profiler) compute(draws []Draw, start, end int) Profile {
	gaps := newBucketCounter()
	stds := newBucketCounter()
	valid := 0
	for i := start; i < end; i++ {
		if !draws[i].IsValid() {
			continue
		}
		sig := SignatureOf(draws[i])
		gaps.add(sig.AverageGap)
		stds.add(sig.StdDev)
		valid++
	}
	return Profile{
		TopGaps:    gaps.top(p.topN),
		TopStds:    stds.top(p.topN),
		Window:     Range{Start: start, End: end},
		Draws:      valid,
		ComputedAt: p.now(),
	}
}

// bucketCounter counts decimal buckets; ties keep first-seen order.
type bucketCounter struct {
	order  []decimal.Decimal
	counts map[string]int
}

func newBucketCounter() *bucketCounter {
	return &bucketCounter{counts: make(map[string]int)}
}

func (b *bucketCounter) add(v decimal.Decimal) {
	k := v.String()
	if _, ok := b.counts[k]; !ok {
		b.order = append(b.order, v)
	}
	b.counts[k]++
}

func (b *bucketCounter) top(n int) []decimal.Decimal {
	ranked := slices.Clone(b.order)
	slices.SortStableFunc(ranked, func(x, y decimal.Decimal) int {
		return b.counts[y.String()] - b.counts[x.String()]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	if ranked == nil {
		ranked = []decimal.Decimal{}
	}
	return ranked
}
