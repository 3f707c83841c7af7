package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so every draw made through it is logged at
// debug level. Roller itself satisfies Source.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn draws from the wrapped Source and logs the bound and result.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("dice draw",
		zap.Int("n", n),
		zap.Int("value", v),
	)
	return v
}

// Draw returns a value in rng and logs the interval and result.
//
// Postcondition: rng.Contains(result) is true.
func (r *Roller) Draw(rng Range) int {
	v := Draw(rng, r.src)
	r.logger.Debug("dice range draw",
		zap.Stringer("range", rng),
		zap.Int("value", v),
	)
	return v
}
