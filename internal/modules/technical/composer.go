package technical

// Contribution weights and signal thresholds. These values are output
// contract: downstream consumers key off the exact score bands.
const (
	weightRSIOversold   = 25
	weightRSIOverbought = -25
	weightMACDBullish   = 30
	weightMACDBearish   = -30
	weightRangeNearLow  = 15
	weightRangeNearHigh = -10

	thresholdStrongBuy  = 40
	thresholdBuy        = 15
	thresholdSell       = -15
	thresholdStrongSell = -40
)

// ComposeScore sums the indicator contributions into a single directional
// score. The effective range is [-65, +70].
func ComposeScore(rsi RSIResult, macd MACDResult, fiftyTwoWeek FiftyTwoWeekPosition) int {
	score := 0

	switch rsi.Signal {
	case RSIOversold:
		score += weightRSIOversold
	case RSIOverbought:
		score += weightRSIOverbought
	}

	switch macd.Trend {
	case TrendBullish:
		score += weightMACDBullish
	case TrendBearish:
		score += weightMACDBearish
	}

	switch fiftyTwoWeek.Signal {
	case RangeNearLow:
		score += weightRangeNearLow
	case RangeNearHigh:
		score += weightRangeNearHigh
	}

	return score
}

// ClassifyScore maps a composite score onto a categorical signal. The
// mapping is monotonic in the score.
func ClassifyScore(score int) string {
	switch {
	case score >= thresholdStrongBuy:
		return SignalStrongBuy
	case score >= thresholdBuy:
		return SignalBuy
	case score <= thresholdStrongSell:
		return SignalStrongSell
	case score <= thresholdSell:
		return SignalSell
	default:
		return SignalHold
	}
}
