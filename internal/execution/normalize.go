// Package execution holds the order validation and request-construction
// engine: pure checks over (intent, constraints, quote) snapshots and
// the orchestration that turns an admissible intent into a terminal
// order request.
package execution

import "math"

// Normalize rounds price to the nearest multiple of tickSize. A zero or
// unknown tick size means no normalization is possible and the price is
// returned unchanged. Idempotent: normalizing a normalized price yields
// the same value.
func Normalize(price, tickSize float64) float64 {
	if tickSize <= 0 {
		return price
	}
	return math.Round(price/tickSize) * tickSize
}
