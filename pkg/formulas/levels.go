package formulas

import (
	"github.com/markcheno/go-talib"
)

// TrailingExtremes returns the lowest low and highest high over the trailing
// `window` bars. Returns ok=false if the series is shorter than the window.
func TrailingExtremes(lows, highs []float64, window int) (low, high float64, ok bool) {
	if window <= 0 || len(lows) < window || len(highs) < window || len(lows) != len(highs) {
		return 0, 0, false
	}

	mins := talib.Min(lows, window)
	maxs := talib.Max(highs, window)

	return mins[len(mins)-1], maxs[len(maxs)-1], true
}

// RangePosition returns current's linear position within [low, high] as a
// percentage (0 at the low, 100 at the high).
//
// The result is deliberately not clamped: when a live price has escaped a
// stale stored range the position reports >100 or <0, and threshold checks
// on the result still behave sensibly. A degenerate range (high == low)
// reports the midpoint, 50.
func RangePosition(current, low, high float64) float64 {
	if high == low {
		return 50
	}
	return (current - low) / (high - low) * 100
}
