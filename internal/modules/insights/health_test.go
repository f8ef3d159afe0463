package insights

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/quantfolio/signal-engine/internal/modules/technical"
)

func healthService(categories CategoryLookup) *Service {
	return NewService(nil, categories, zerolog.Nop())
}

func TestComputeHealthWellDiversified(t *testing.T) {
	categories := fakeCategories{
		"A": "tech", "B": "energy", "C": "health", "D": "finance", "E": "consumer",
	}
	s := healthService(categories)

	signals := make([]technical.TechnicalSignal, 5)
	for i, ticker := range []string{"A", "B", "C", "D", "E"} {
		signals[i] = technical.TechnicalSignal{
			Ticker: ticker,
			RSI:    technical.RSIResult{Signal: technical.RSINeutral},
		}
	}

	health := s.computeHealth([]string{"A", "B", "C", "D", "E"}, signals)

	// 5 categories over 5 holdings: full diversification. Neutral signals:
	// momentum 50, risk perfectly balanced.
	if health.Breakdown.Diversification != 100 {
		t.Errorf("Diversification = %v, want 100", health.Breakdown.Diversification)
	}
	if health.Breakdown.Momentum != 50 {
		t.Errorf("Momentum = %v, want 50", health.Breakdown.Momentum)
	}
	if health.Breakdown.RiskBalance != 100 {
		t.Errorf("RiskBalance = %v, want 100", health.Breakdown.RiskBalance)
	}
	if health.Score != 80 {
		t.Errorf("Score = %d, want 80", health.Score)
	}
	if health.Assessment != AssessmentExcellent {
		t.Errorf("Assessment = %s, want excellent", health.Assessment)
	}
}

func TestComputeHealthConcentratedAndWeak(t *testing.T) {
	s := healthService(fakeCategories{"A": "tech"})

	signals := []technical.TechnicalSignal{
		{
			Ticker:      "A",
			SignalScore: -60,
			RSI:         technical.RSIResult{Signal: technical.RSIOversold},
		},
	}

	health := s.computeHealth([]string{"A"}, signals)

	if health.Breakdown.Diversification != 20 {
		t.Errorf("Diversification = %v, want 20 (1 category over floor of 5)", health.Breakdown.Diversification)
	}
	if health.Breakdown.Momentum != 0 {
		t.Errorf("Momentum = %v, want 0 (clamped)", health.Breakdown.Momentum)
	}
	if health.Breakdown.RiskBalance != 50 {
		t.Errorf("RiskBalance = %v, want 50", health.Breakdown.RiskBalance)
	}
	// 0.3*20 + 0.4*0 + 0.3*50 = 21
	if health.Score != 21 {
		t.Errorf("Score = %d, want 21", health.Score)
	}
	if health.Assessment != AssessmentNeedsAttention {
		t.Errorf("Assessment = %s, want needs_attention", health.Assessment)
	}
}

func TestComputeHealthUnknownCategoryCountsOnce(t *testing.T) {
	s := healthService(fakeCategories{})

	signals := []technical.TechnicalSignal{}
	health := s.computeHealth([]string{"X", "Y", "Z"}, signals)

	// All three tickers collapse into one uncategorized bucket.
	if health.Breakdown.Diversification != 20 {
		t.Errorf("Diversification = %v, want 20", health.Breakdown.Diversification)
	}
}

func TestAssessScoreBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{90, AssessmentExcellent},
		{75, AssessmentExcellent},
		{74, AssessmentGood},
		{55, AssessmentGood},
		{54, AssessmentFair},
		{35, AssessmentFair},
		{34, AssessmentNeedsAttention},
		{0, AssessmentNeedsAttention},
	}
	for _, tt := range tests {
		if got := assessScore(tt.score); got != tt.want {
			t.Errorf("assessScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
