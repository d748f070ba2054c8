package sampler

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// randomDraws builds n valid, ascending draws.
func randomDraws(rng *rand.Rand, n int) []Draw {
	draws := make([]Draw, 0, n)
	for range n {
		perm := rng.Perm(MaxNumber)[:GameSize]
		d := make(Draw, GameSize)
		for i, v := range perm {
			d[i] = v + 1
		}
		slices.Sort(d)
		draws = append(draws, d)
	}
	return draws
}

func seq(from, to int) Draw {
	d := make(Draw, 0, to-from+1)
	for n := from; n <= to; n++ {
		d = append(d, n)
	}
	return d
}

type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	gets   int
	sets   int
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

var errCacheDown = errors.New("cache down")
