package formulas

// CalculateRSI calculates Wilder's smoothed Relative Strength Index.
//
// RSI Formula:
//   RSI = 100 - (100 / (1 + RS))
//   where RS = Average Gain / Average Loss over N periods
//
// The averages are seeded with the simple mean of the first `length`
// per-bar gains/losses, then smoothed per bar as
// avg = (avg*(length-1) + value) / length. When the series never loses,
// RS saturates at 100 rather than dividing by zero.
//
// Returns nil if fewer than length+1 closes are available.
func CalculateRSI(closes []float64, length int) *float64 {
	if length <= 0 || len(closes) < length+1 {
		return nil
	}

	var gains, losses float64
	for i := 1; i <= length; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(length)
	avgLoss := losses / float64(length)

	for i := length + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		var gain, loss float64
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(length-1) + gain) / float64(length)
		avgLoss = (avgLoss*float64(length-1) + loss) / float64(length)
	}

	rs := 100.0
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}

	rsi := 100 - 100/(1+rs)
	return &rsi
}
