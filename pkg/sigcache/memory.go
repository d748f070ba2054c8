package sigcache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// DefaultSweepInterval is how often Set also sweeps expired entries.
const DefaultSweepInterval = 10 * time.Minute

// Memory is a process-local cache with per-entry TTL. Expired entries are
// dropped on read, and Set sweeps the whole map at most once per sweep
// interval so keys that are never read again do not pile up.
type Memory struct {
	mu            sync.RWMutex
	entries       map[string]entry
	now           func() time.Time
	stats         Stats
	sweepInterval time.Duration
	lastSweep     time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries:       make(map[string]entry),
		now:           time.Now,
		sweepInterval: DefaultSweepInterval,
	}
}

// NewMemoryWithClock is NewMemory with an injectable clock.
func NewMemoryWithClock(now func() time.Time) *Memory {
	m := NewMemory()
	if now != nil {
		m.now = now
	}
	m.lastSweep = m.now()
	return m
}

// SetSweepInterval changes how often Set sweeps; non-positive disables it.
func (m *Memory) SetSweepInterval(d time.Duration) {
	m.mu.Lock()
	m.sweepInterval = d
	m.mu.Unlock()
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if ok && !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, still := m.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
			m.stats.Evictions++
		}
		m.mu.Unlock()
		ok = false
	}

	m.mu.Lock()
	if ok {
		m.stats.Hits++
	} else {
		m.stats.Misses++
	}
	m.mu.Unlock()

	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores value; a non-positive ttl never expires.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := m.now()
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	if m.sweepInterval > 0 && now.Sub(m.lastSweep) >= m.sweepInterval {
		m.sweepLocked(now)
	}
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(now)
}

func (m *Memory) sweepLocked(now time.Time) int {
	m.lastSweep = now
	dropped := 0
	for k, e := range m.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.entries, k)
			dropped++
		}
	}
	m.stats.Evictions += uint64(dropped)
	return dropped
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}
