package sampler

import "errors"

var (
	// ErrInvalidConfig is returned before any sampling starts when batch options are out of range.
	ErrInvalidConfig = errors.New("invalid sampler config")
	// ErrInvalidDraw marks a draw that is not 15 distinct numbers in [1,25].
	ErrInvalidDraw = errors.New("invalid draw")
)
