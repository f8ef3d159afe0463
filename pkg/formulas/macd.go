package formulas

// MACDValues holds the latest values of the MACD chain.
type MACDValues struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// CalculateMACD calculates Moving Average Convergence Divergence.
//
// MACD line = EMA(fast) - EMA(slow), aligned from the first index where the
// slow EMA exists. Signal line = EMA(MACD line, signalPeriod).
// Histogram = last MACD - last signal.
//
// Returns nil if fewer than `slow` closes are available.
func CalculateMACD(closes []float64, fast, slow, signalPeriod int) *MACDValues {
	if len(closes) < slow || fast <= 0 || slow <= fast || signalPeriod <= 0 {
		return nil
	}

	emaFast := EMASeries(closes, fast)
	emaSlow := EMASeries(closes, slow)

	macdLine := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		macdLine = append(macdLine, emaFast[i]-emaSlow[i])
	}

	signalLine := EMASeries(macdLine, signalPeriod)

	macd := macdLine[len(macdLine)-1]
	signal := signalLine[len(signalLine)-1]

	return &MACDValues{
		MACD:      macd,
		Signal:    signal,
		Histogram: macd - signal,
	}
}

// EMASeries calculates an exponential moving average series with
// k = 2/(period+1), seeded with the simple mean of the first `period`
// values. Indices before the seed point carry the running mean so far;
// series shorter than the period degrade to a running mean, which lets
// callers smooth short tails (e.g. the MACD signal line on a minimal
// input) without a separate code path.
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || period <= 0 {
		return out
	}

	seedLen := period
	if len(values) < period {
		seedLen = len(values)
	}

	var sum float64
	for i := 0; i < seedLen; i++ {
		sum += values[i]
		out[i] = sum / float64(i+1)
	}

	k := 2.0 / (float64(period) + 1)
	for i := seedLen; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}

	return out
}
