package technical

import (
	"github.com/quantfolio/signal-engine/internal/domain"
	"github.com/quantfolio/signal-engine/pkg/formulas"
)

// Indicator parameters. These are contract values, not tuning knobs: the
// degraded-input defaults below are part of the engine's output contract.
const (
	RSIPeriod      = 14
	MACDFast       = 12
	MACDSlow       = 26
	MACDSignal     = 9
	LevelsLookback = 20

	rsiOversoldMax   = 30.0
	rsiOverboughtMin = 70.0
	nearLevelPct     = 3.0
	nearHighMin      = 90.0
	nearLowMax       = 10.0
	fallbackBandPct  = 0.05
)

// CalculateRSI computes the 14-period RSI for a close series. A series too
// short for the calculation yields the neutral default {50, neutral} rather
// than an error.
func CalculateRSI(closes []float64) RSIResult {
	value := formulas.CalculateRSI(closes, RSIPeriod)
	if value == nil {
		return RSIResult{Value: 50, Signal: RSINeutral}
	}

	result := RSIResult{Value: *value, Signal: RSINeutral}
	switch {
	case *value <= rsiOversoldMax:
		result.Signal = RSIOversold
	case *value >= rsiOverboughtMin:
		result.Signal = RSIOverbought
	}
	return result
}

// CalculateMACD computes the 12/26/9 MACD for a close series. Fewer than 26
// closes yields a zeroed neutral result.
func CalculateMACD(closes []float64) MACDResult {
	values := formulas.CalculateMACD(closes, MACDFast, MACDSlow, MACDSignal)
	if values == nil {
		return MACDResult{Trend: TrendNeutral}
	}

	result := MACDResult{
		MACDLine:   values.MACD,
		SignalLine: values.Signal,
		Histogram:  values.Histogram,
		Trend:      TrendNeutral,
	}
	switch {
	case values.Histogram > 0:
		result.Trend = TrendBullish
	case values.Histogram < 0:
		result.Trend = TrendBearish
	}
	return result
}

// CalculateSupportResistance derives a support/resistance band from the
// trailing 20 bars. A shorter series falls back to a synthetic ±5% band
// around the last close.
func CalculateSupportResistance(bars []domain.PriceBar) SupportResistance {
	if len(bars) == 0 {
		return SupportResistance{NearLevel: NearMiddle}
	}

	current := bars[len(bars)-1].Close

	lows := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	for i, b := range bars {
		lows[i] = b.Low
		highs[i] = b.High
	}

	support, resistance, ok := formulas.TrailingExtremes(lows, highs, LevelsLookback)
	if !ok {
		support = current * (1 - fallbackBandPct)
		resistance = current * (1 + fallbackBandPct)
	}

	result := SupportResistance{
		Support:    support,
		Resistance: resistance,
		NearLevel:  NearMiddle,
	}
	if current != 0 {
		result.DistanceToSupportPct = (current - support) / current * 100
		result.DistanceToResistancePct = (resistance - current) / current * 100
	}

	switch {
	case result.DistanceToSupportPct < nearLevelPct:
		result.NearLevel = NearSupport
	case result.DistanceToResistancePct < nearLevelPct:
		result.NearLevel = NearResistance
	}
	return result
}

// CalculateFiftyTwoWeek places the current price inside a one-year range.
// Out-of-range prices keep their unclamped position; high == low reports 50.
func CalculateFiftyTwoWeek(current, high, low float64) FiftyTwoWeekPosition {
	position := formulas.RangePosition(current, low, high)

	result := FiftyTwoWeekPosition{
		High:        high,
		Low:         low,
		Current:     current,
		PositionPct: position,
		Signal:      RangeMiddle,
	}
	switch {
	case position >= nearHighMin:
		result.Signal = RangeNearHigh
	case position <= nearLowMax:
		result.Signal = RangeNearLow
	}
	return result
}
