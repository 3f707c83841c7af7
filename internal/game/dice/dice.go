// Package dice provides the randomness abstraction used by the battle engine:
// a Source of uniform integers and half-open range draws built on top of it.
package dice

import "fmt"

// Source is the randomness provider for every draw in a battle.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Range is a half-open integer interval [Low, High).
//
// Invariant: Low < High for any Range produced by NewRange.
type Range struct {
	Low  int
	High int
}

// NewRange builds the Range [low, high).
//
// Precondition: low < high.
// Postcondition: Returns a Range or an error when the interval is empty.
func NewRange(low, high int) (Range, error) {
	if low >= high {
		return Range{}, fmt.Errorf("dice: empty range [%d, %d)", low, high)
	}
	return Range{Low: low, High: high}, nil
}

// Spread returns the Range [base-spread, base+spread).
//
// Precondition: spread > 0.
func Spread(base, spread int) Range {
	return Range{Low: base - spread, High: base + spread}
}

// Contains reports whether v lies in [Low, High).
func (r Range) Contains(v int) bool {
	return v >= r.Low && v < r.High
}

// Width returns High - Low.
func (r Range) Width() int {
	return r.High - r.Low
}

// String renders the interval as "[low, high)".
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Low, r.High)
}

// Draw returns a value uniformly distributed in r using src.
//
// Precondition: r.Low < r.High; src must be non-nil.
// Postcondition: r.Contains(result) is true.
func Draw(r Range, src Source) int {
	if r.Width() <= 0 {
		panic("dice: Draw called with empty range " + r.String())
	}
	return r.Low + src.Intn(r.Width())
}
