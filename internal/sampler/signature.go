package sampler

import (
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// signaturePlaces is the rounding used for every signature bucket.
const signaturePlaces = 1

// Signature describes the spread of a 15-number set.
type Signature struct {
	AverageGap decimal.Decimal `json:"average_gap"`
	StdDev     decimal.Decimal `json:"std_dev"`
}

func (s Signature) String() string {
	return fmt.Sprintf("gap=%s std=%s", s.AverageGap.StringFixed(signaturePlaces), s.StdDev.StringFixed(signaturePlaces))
}

// SignatureOf computes the rounded signature of values. Order does not matter.
func SignatureOf(values []int) Signature {
	if len(values) == 0 {
		return Signature{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var gapSum float64
	for i := 1; i < len(sorted); i++ {
		gapSum += float64(sorted[i] - sorted[i-1])
	}
	var avgGap float64
	if len(sorted) > 1 {
		avgGap = gapSum / float64(len(sorted)-1)
	}

	var sum float64
	for _, v := range sorted {
		sum += float64(v)
	}
	mean := sum / float64(len(sorted))
	var sq float64
	for _, v := range sorted {
		d := float64(v) - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(sorted)))

	return Signature{
		AverageGap: roundBucket(avgGap),
		StdDev:     roundBucket(std),
	}
}

func roundBucket(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(signaturePlaces)
}
