package insights

import (
	"fmt"

	"github.com/quantfolio/signal-engine/internal/modules/technical"
)

const (
	dipBuyRangeMaxPct     = 30.0
	takeProfitRangeMinPct = 80.0
)

// deriveOpportunities groups tickers sharing one tactical setup: oversold or
// bottom-of-range tickers into a dip_buy, overbought top-of-range tickers
// into a take_profit.
func deriveOpportunities(signals []technical.TechnicalSignal) []Opportunity {
	var dipBuys, takeProfits []string

	for _, s := range signals {
		if s.RSI.Signal == technical.RSIOversold || s.FiftyTwoWeek.PositionPct <= dipBuyRangeMaxPct {
			dipBuys = append(dipBuys, s.Ticker)
		}
		if s.RSI.Signal == technical.RSIOverbought && s.FiftyTwoWeek.PositionPct >= takeProfitRangeMinPct {
			takeProfits = append(takeProfits, s.Ticker)
		}
	}

	opportunities := make([]Opportunity, 0, 2)
	if len(dipBuys) > 0 {
		opportunities = append(opportunities, Opportunity{
			Type:      OpportunityDipBuy,
			Tickers:   dipBuys,
			Rationale: fmt.Sprintf("%d holding(s) oversold or in the bottom 30%% of their yearly range", len(dipBuys)),
			Priority:  PriorityHigh,
		})
	}
	if len(takeProfits) > 0 {
		opportunities = append(opportunities, Opportunity{
			Type:      OpportunityTakeProfit,
			Tickers:   takeProfits,
			Rationale: fmt.Sprintf("%d holding(s) overbought near the top of their yearly range", len(takeProfits)),
			Priority:  PriorityMedium,
		})
	}
	return opportunities
}
