package sampler

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

const (
	DefaultMaxColumnsPerDraw = 2
	DefaultMaxAttempts       = 1000
)

// Candidate is one sampled game and the columns it was built from.
type Candidate struct {
	Game    Game
	Columns [Cols]Column
}

type Option func(*Sampler)

// WithRand sets the random source. Tests pass a seeded generator.
func WithRand(rng *rand.Rand) Option {
	return func(s *Sampler) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.log = l
		}
	}
}

// Sampler recombines historical columns into games. A Sampler is not safe
// for concurrent use; create one per generation request.
type Sampler struct {
	rng *rand.Rand
	log *slog.Logger
}

func New(opts ...Option) *Sampler {
	seed := uint64(time.Now().UnixNano())
	s := &Sampler{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SampleOne picks one column per slot so that no number repeats and no source
// draw gives more than maxColumnsPerDraw columns. There is no backtracking:
// a slot without candidates fails the whole attempt.
func (s *Sampler) SampleOne(pool []Column, maxColumnsPerDraw int) (Candidate, bool) {
	var (
		cand       Candidate
		used       [MaxNumber + 1]bool
		perDraw    = make(map[int]int, Cols)
		candidates = make([]int, 0, len(pool))
		triples    [Cols][ColumnSize]int
	)

	for slot := range Cols {
		candidates = candidates[:0]
		for i, col := range pool {
			if perDraw[col.DrawIndex] >= maxColumnsPerDraw {
				continue
			}
			if col.intersects(&used) {
				continue
			}
			candidates = append(candidates, i)
		}
		if len(candidates) == 0 {
			return Candidate{}, false
		}

		chosen := pool[candidates[s.rng.IntN(len(candidates))]]
		for _, n := range chosen.Values {
			used[n] = true
		}
		perDraw[chosen.DrawIndex]++
		cand.Columns[slot] = chosen
		triples[slot] = chosen.Values
	}

	cand.Game = GridFromColumns(triples).Game()
	return cand, true
}
