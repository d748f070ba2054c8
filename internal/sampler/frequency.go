package sampler

import (
	"slices"

	"github.com/shopspring/decimal"
)

// NumberFrequency is how often a number was drawn within a window.
type NumberFrequency struct {
	Number int             `json:"number"`
	Count  int             `json:"count"`
	Share  decimal.Decimal `json:"share"`
}

// Frequencies counts each number 1..25 over the valid draws in [start, end),
// most frequent first. Share is the fraction of draws containing the number.
func Frequencies(draws []Draw, start, end int) []NumberFrequency {
	start, end = clampRange(len(draws), start, end)

	var counts [MaxNumber + 1]int
	valid := 0
	for i := start; i < end; i++ {
		if !draws[i].IsValid() {
			continue
		}
		for _, n := range draws[i] {
			counts[n]++
		}
		valid++
	}

	out := make([]NumberFrequency, 0, MaxNumber)
	for n := MinNumber; n <= MaxNumber; n++ {
		share := decimal.Zero
		if valid > 0 {
			share = decimal.NewFromInt(int64(counts[n])).Div(decimal.NewFromInt(int64(valid))).Round(2)
		}
		out = append(out, NumberFrequency{Number: n, Count: counts[n], Share: share})
	}
	slices.SortStableFunc(out, func(a, b NumberFrequency) int {
		return b.Count - a.Count
	})
	return out
}
