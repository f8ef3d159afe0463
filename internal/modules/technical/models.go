package technical

import "time"

// Indicator signal categories.
const (
	RSIOversold   = "oversold"
	RSINeutral    = "neutral"
	RSIOverbought = "overbought"

	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNeutral = "neutral"

	NearSupport    = "support"
	NearResistance = "resistance"
	NearMiddle     = "middle"

	RangeNearHigh = "near_high"
	RangeNearLow  = "near_low"
	RangeMiddle   = "middle"
)

// Composite signal categories, ordered weakest sell to strongest buy.
const (
	SignalStrongSell = "strong_sell"
	SignalSell       = "sell"
	SignalHold       = "hold"
	SignalBuy        = "buy"
	SignalStrongBuy  = "strong_buy"
)

// RSIResult is the outcome of the RSI calculation.
type RSIResult struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
}

// MACDResult is the outcome of the MACD calculation.
type MACDResult struct {
	MACDLine   float64 `json:"macd_line"`
	SignalLine float64 `json:"signal_line"`
	Histogram  float64 `json:"histogram"`
	Trend      string  `json:"trend"`
}

// SupportResistance describes the trailing support/resistance band and how
// close the current price sits to either edge.
type SupportResistance struct {
	Support                 float64 `json:"support"`
	Resistance              float64 `json:"resistance"`
	DistanceToSupportPct    float64 `json:"distance_to_support_pct"`
	DistanceToResistancePct float64 `json:"distance_to_resistance_pct"`
	NearLevel               string  `json:"near_level"`
}

// FiftyTwoWeekPosition places the current price inside the trailing one-year
// range. PositionPct is not clamped; see formulas.RangePosition.
type FiftyTwoWeekPosition struct {
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Current     float64 `json:"current"`
	PositionPct float64 `json:"position_pct"`
	Signal      string  `json:"signal"`
}

// TechnicalSignal aggregates all indicators for one ticker plus the composite
// score and categorical signal derived from them. Recomputing from the same
// indicator inputs always yields the same score and signal.
type TechnicalSignal struct {
	Ticker            string               `json:"ticker"`
	RSI               RSIResult            `json:"rsi"`
	MACD              MACDResult           `json:"macd"`
	FiftyTwoWeek      FiftyTwoWeekPosition `json:"fifty_two_week"`
	SupportResistance SupportResistance    `json:"support_resistance"`
	OverallSignal     string               `json:"overall_signal"`
	SignalScore       int                  `json:"signal_score"`
	CalculatedAt      time.Time            `json:"calculated_at"`
}
