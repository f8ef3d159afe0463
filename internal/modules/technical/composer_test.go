package technical

import (
	"testing"
)

func TestComposeScoreContributions(t *testing.T) {
	tests := []struct {
		name      string
		rsi       string
		macd      string
		position  string
		wantScore int
	}{
		{name: "all neutral", rsi: RSINeutral, macd: TrendNeutral, position: RangeMiddle, wantScore: 0},
		{name: "max bullish", rsi: RSIOversold, macd: TrendBullish, position: RangeNearLow, wantScore: 70},
		{name: "max bearish", rsi: RSIOverbought, macd: TrendBearish, position: RangeNearHigh, wantScore: -65},
		{name: "rsi only oversold", rsi: RSIOversold, macd: TrendNeutral, position: RangeMiddle, wantScore: 25},
		{name: "macd only bearish", rsi: RSINeutral, macd: TrendBearish, position: RangeMiddle, wantScore: -30},
		{name: "near low only", rsi: RSINeutral, macd: TrendNeutral, position: RangeNearLow, wantScore: 15},
		{name: "near high only", rsi: RSINeutral, macd: TrendNeutral, position: RangeNearHigh, wantScore: -10},
		{name: "mixed signals", rsi: RSIOverbought, macd: TrendBullish, position: RangeNearHigh, wantScore: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeScore(
				RSIResult{Signal: tt.rsi},
				MACDResult{Trend: tt.macd},
				FiftyTwoWeekPosition{Signal: tt.position},
			)
			if got != tt.wantScore {
				t.Errorf("ComposeScore = %d, want %d", got, tt.wantScore)
			}
		})
	}
}

func TestClassifyScoreThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: 70, want: SignalStrongBuy},
		{score: 40, want: SignalStrongBuy},
		{score: 39, want: SignalBuy},
		{score: 15, want: SignalBuy},
		{score: 14, want: SignalHold},
		{score: 0, want: SignalHold},
		{score: -14, want: SignalHold},
		{score: -15, want: SignalSell},
		{score: -39, want: SignalSell},
		{score: -40, want: SignalStrongSell},
		{score: -65, want: SignalStrongSell},
	}

	for _, tt := range tests {
		if got := ClassifyScore(tt.score); got != tt.want {
			t.Errorf("ClassifyScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

// ClassifyScore must never weaken as the score strengthens.
func TestClassifyScoreMonotonic(t *testing.T) {
	rank := map[string]int{
		SignalStrongSell: 0,
		SignalSell:       1,
		SignalHold:       2,
		SignalBuy:        3,
		SignalStrongBuy:  4,
	}

	prev := rank[ClassifyScore(-100)]
	for score := -99; score <= 100; score++ {
		cur := rank[ClassifyScore(score)]
		if cur < prev {
			t.Fatalf("Signal weakened at score %d", score)
		}
		prev = cur
	}
}
