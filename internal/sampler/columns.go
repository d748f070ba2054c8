package sampler

import (
	"math/rand/v2"
	"slices"
)

// DefaultPoolSize bounds the column pool handed to the sampler.
const DefaultPoolSize = 30

// Column is one vertical slice of a historical draw's grid.
type Column struct {
	DrawIndex int             `json:"draw_index"`
	Index     int             `json:"index"`
	Values    [ColumnSize]int `json:"values"`
}

// Key identifies a column by its value set, ignoring order.
func (c Column) Key() string {
	sorted := c.Values
	slices.Sort(sorted[:])
	return joinInts(sorted[:])
}

func (c Column) intersects(used *[MaxNumber + 1]bool) bool {
	for _, n := range c.Values {
		if used[n] {
			return true
		}
	}
	return false
}

// ExtractColumns returns every column of every valid draw in [start, end),
// deduplicated by value set and kept in first-seen order.
func ExtractColumns(draws []Draw, start, end int) []Column {
	start, end = clampRange(len(draws), start, end)

	columns := make([]Column, 0, (end-start)*Cols)
	seen := make(map[string]struct{})
	for i := start; i < end; i++ {
		grid, err := NewGrid(draws[i])
		if err != nil {
			continue
		}
		for c := range Cols {
			col := Column{DrawIndex: i, Index: c, Values: grid.Column(c)}
			key := col.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			columns = append(columns, col)
		}
	}
	return columns
}

// BuildPool extracts the columns of [start, end) and, when there are more than
// size of them, keeps a uniformly shuffled subset of size columns.
func BuildPool(draws []Draw, start, end, size int, rng *rand.Rand) []Column {
	pool := ExtractColumns(draws, start, end)
	if size <= 0 || len(pool) <= size {
		return pool
	}
	for i := len(pool) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:size]
}

func clampRange(n, start, end int) (int, int) {
	start = max(start, 0)
	end = min(end, n)
	if start > end {
		start = end
	}
	return start, end
}
