package sampler

import "github.com/shopspring/decimal"

// Filter accepts games whose signature falls in the profiled top buckets.
type Filter struct {
	gaps []decimal.Decimal
	stds []decimal.Decimal
}

func NewFilter(p Profile) Filter {
	return Filter{gaps: p.TopGaps, stds: p.TopStds}
}

// Accept requires both the gap and the std bucket to match.
func (f Filter) Accept(g Game) bool {
	sig := SignatureOf(g[:])
	return containsDecimal(f.gaps, sig.AverageGap) && containsDecimal(f.stds, sig.StdDev)
}

func containsDecimal(values []decimal.Decimal, v decimal.Decimal) bool {
	for _, x := range values {
		if x.Equal(v) {
			return true
		}
	}
	return false
}
