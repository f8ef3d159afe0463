package technical

import (
	"testing"
)

func TestComputeTechnicalSignalUptrend(t *testing.T) {
	closes := make([]float64, 35)
	for i := range closes {
		closes[i] = 10 + float64(i)*0.4
	}
	bars := barsFromCloses(closes)

	signal := ComputeTechnicalSignal("AAPL", bars, 30, 8)

	if signal.Ticker != "AAPL" {
		t.Errorf("Ticker = %s, want AAPL", signal.Ticker)
	}
	if signal.MACD.Trend != TrendBullish {
		t.Fatalf("Uptrend MACD trend = %s, want bullish", signal.MACD.Trend)
	}

	// The bullish MACD contribution must show up in the composite score:
	// flipping MACD to neutral drops the score by exactly 30.
	withoutMACD := ComposeScore(signal.RSI, MACDResult{Trend: TrendNeutral}, signal.FiftyTwoWeek)
	if signal.SignalScore != withoutMACD+30 {
		t.Errorf("Score = %d, want %d + 30 MACD contribution", signal.SignalScore, withoutMACD)
	}

	if signal.OverallSignal != ClassifyScore(signal.SignalScore) {
		t.Errorf("OverallSignal %s inconsistent with score %d", signal.OverallSignal, signal.SignalScore)
	}
}

func TestComputeTechnicalSignalDeterministic(t *testing.T) {
	closes := []float64{
		10, 10.5, 11, 10.8, 11.2, 11.5, 11.3, 11.8, 12.1, 12.0,
		12.4, 12.6, 12.3, 12.9, 13.2, 13.0, 13.5, 13.8, 13.6, 14.0,
		14.3, 14.1, 14.6, 14.9, 14.7, 15.1, 15.4, 15.2, 15.7, 16.0,
	}
	bars := barsFromCloses(closes)

	a := ComputeTechnicalSignal("MSFT", bars, 18, 9)
	b := ComputeTechnicalSignal("MSFT", bars, 18, 9)

	if a.SignalScore != b.SignalScore || a.OverallSignal != b.OverallSignal {
		t.Errorf("Recomputation diverged: %d/%s vs %d/%s",
			a.SignalScore, a.OverallSignal, b.SignalScore, b.OverallSignal)
	}
}

func TestComputeTechnicalSignalRangeFallback(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 20 + float64(i)*0.1
	}
	bars := barsFromCloses(closes)

	// No quote range supplied: the bar extremes stand in for the 52-week range.
	signal := ComputeTechnicalSignal("NVDA", bars, 0, 0)
	if signal.FiftyTwoWeek.High <= signal.FiftyTwoWeek.Low {
		t.Errorf("Fallback range invalid: high %v, low %v",
			signal.FiftyTwoWeek.High, signal.FiftyTwoWeek.Low)
	}
	if signal.FiftyTwoWeek.Signal != RangeNearHigh {
		t.Errorf("Rising series should end near its own high, got %s", signal.FiftyTwoWeek.Signal)
	}
}
