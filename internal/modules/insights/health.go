package insights

import (
	"math"

	"github.com/quantfolio/signal-engine/internal/modules/technical"
	"github.com/quantfolio/signal-engine/pkg/formulas"
)

// Health component weights.
const (
	weightDiversification = 0.3
	weightMomentum        = 0.4
	weightRiskBalance     = 0.3
)

// computeHealth rolls the per-ticker signals into one portfolio score.
//
// Diversification rewards distinct categories relative to portfolio size
// (a floor of 5 keeps tiny portfolios from scoring 100 on two names).
// Momentum centers the mean signal score at 50. Risk balance penalizes a
// lopsided oversold/overbought split.
func (s *Service) computeHealth(tickers []string, signals []technical.TechnicalSignal) PortfolioHealth {
	if len(tickers) == 0 {
		return PortfolioHealth{
			Assessment: AssessmentNeedsAttention,
			Summary:    summaryForAssessment(AssessmentNeedsAttention),
		}
	}

	categories := make(map[string]struct{})
	for _, ticker := range tickers {
		category, err := s.categories.CategoryBySymbol(ticker)
		if err != nil {
			s.log.Warn().Err(err).Str("ticker", ticker).Msg("Category lookup failed")
		}
		if category == "" {
			category = "uncategorized"
		}
		categories[category] = struct{}{}
	}

	holdings := float64(len(tickers))
	diversification := math.Min(100, float64(len(categories))/math.Max(5, holdings)*100)

	scores := make([]float64, len(signals))
	oversold, overbought := 0, 0
	for i, sig := range signals {
		scores[i] = float64(sig.SignalScore)
		switch sig.RSI.Signal {
		case technical.RSIOversold:
			oversold++
		case technical.RSIOverbought:
			overbought++
		}
	}

	momentum := formulas.Clamp(50+formulas.Mean(scores), 0, 100)

	imbalance := math.Abs(float64(oversold - overbought))
	riskBalance := 100 - imbalance/math.Max(1, float64(len(signals)))*50

	score := int(math.Round(
		weightDiversification*diversification +
			weightMomentum*momentum +
			weightRiskBalance*riskBalance,
	))

	assessment := assessScore(score)
	return PortfolioHealth{
		Score: score,
		Breakdown: HealthBreakdown{
			Diversification: diversification,
			Momentum:        momentum,
			RiskBalance:     riskBalance,
		},
		Assessment: assessment,
		Summary:    summaryForAssessment(assessment),
	}
}

func assessScore(score int) string {
	switch {
	case score >= 75:
		return AssessmentExcellent
	case score >= 55:
		return AssessmentGood
	case score >= 35:
		return AssessmentFair
	default:
		return AssessmentNeedsAttention
	}
}

func summaryForAssessment(assessment string) string {
	switch assessment {
	case AssessmentExcellent:
		return "Portfolio is well diversified with healthy momentum"
	case AssessmentGood:
		return "Portfolio is in good shape with minor imbalances"
	case AssessmentFair:
		return "Portfolio shows concentration or momentum risks worth reviewing"
	default:
		return "Portfolio needs attention across several dimensions"
	}
}
