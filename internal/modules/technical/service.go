package technical

import (
	"time"

	"github.com/quantfolio/signal-engine/internal/domain"
)

// ComputeTechnicalSignal runs every indicator over a bar series and composes
// the results into a single signal. It is pure apart from the CalculatedAt
// timestamp: the same bars and range always produce the same score/signal.
//
// fiftyTwoWeekHigh/Low come from the caller's quote snapshot; a zero range
// falls back to the extremes of the bar series itself so the position stays
// meaningful when the quote API omits the range.
func ComputeTechnicalSignal(ticker string, bars []domain.PriceBar, fiftyTwoWeekHigh, fiftyTwoWeekLow float64) TechnicalSignal {
	closes := domain.Closes(bars)

	var current float64
	if len(bars) > 0 {
		current = bars[len(bars)-1].Close
	}

	if fiftyTwoWeekHigh == 0 && fiftyTwoWeekLow == 0 {
		for _, b := range bars {
			if fiftyTwoWeekLow == 0 || b.Low < fiftyTwoWeekLow {
				fiftyTwoWeekLow = b.Low
			}
			if b.High > fiftyTwoWeekHigh {
				fiftyTwoWeekHigh = b.High
			}
		}
	}

	rsi := CalculateRSI(closes)
	macd := CalculateMACD(closes)
	fiftyTwoWeek := CalculateFiftyTwoWeek(current, fiftyTwoWeekHigh, fiftyTwoWeekLow)
	levels := CalculateSupportResistance(bars)

	score := ComposeScore(rsi, macd, fiftyTwoWeek)

	return TechnicalSignal{
		Ticker:            ticker,
		RSI:               rsi,
		MACD:              macd,
		FiftyTwoWeek:      fiftyTwoWeek,
		SupportResistance: levels,
		OverallSignal:     ClassifyScore(score),
		SignalScore:       score,
		CalculatedAt:      time.Now().UTC(),
	}
}
