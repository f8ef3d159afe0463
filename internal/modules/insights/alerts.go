package insights

import (
	"fmt"
	"sort"

	"github.com/quantfolio/signal-engine/internal/modules/technical"
)

const maxAlerts = 10

var priorityRank = map[string]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// deriveAlerts maps each signal onto its alert rules. Rules fire
// independently, so one ticker can emit several alerts. The result is
// sorted by priority and truncated to the top 10.
func deriveAlerts(signals []technical.TechnicalSignal) []Alert {
	alerts := make([]Alert, 0, len(signals))

	for _, s := range signals {
		switch s.RSI.Signal {
		case technical.RSIOversold:
			alerts = append(alerts, Alert{
				Type:       AlertOversold,
				Ticker:     s.Ticker,
				Message:    fmt.Sprintf("%s RSI at %.1f indicates oversold conditions", s.Ticker, s.RSI.Value),
				Priority:   PriorityMedium,
				ActionHint: "Potential entry point",
			})
		case technical.RSIOverbought:
			alerts = append(alerts, Alert{
				Type:       AlertOverbought,
				Ticker:     s.Ticker,
				Message:    fmt.Sprintf("%s RSI at %.1f indicates overbought conditions", s.Ticker, s.RSI.Value),
				Priority:   PriorityMedium,
				ActionHint: "Consider trimming the position",
			})
		}

		switch s.SupportResistance.NearLevel {
		case technical.NearSupport:
			alerts = append(alerts, Alert{
				Type:       AlertNearSupport,
				Ticker:     s.Ticker,
				Message:    fmt.Sprintf("%s is trading within %.1f%% of support at %.2f", s.Ticker, s.SupportResistance.DistanceToSupportPct, s.SupportResistance.Support),
				Priority:   PriorityMedium,
				ActionHint: "Watch for a bounce off support",
			})
		case technical.NearResistance:
			alerts = append(alerts, Alert{
				Type:       AlertNearResistance,
				Ticker:     s.Ticker,
				Message:    fmt.Sprintf("%s is trading within %.1f%% of resistance at %.2f", s.Ticker, s.SupportResistance.DistanceToResistancePct, s.SupportResistance.Resistance),
				Priority:   PriorityLow,
				ActionHint: "Watch for a breakout",
			})
		}

		switch s.FiftyTwoWeek.Signal {
		case technical.RangeNearHigh:
			alerts = append(alerts, Alert{
				Type:     AlertNear52wHigh,
				Ticker:   s.Ticker,
				Message:  fmt.Sprintf("%s is near its 52-week high of %.2f", s.Ticker, s.FiftyTwoWeek.High),
				Priority: PriorityLow,
			})
		case technical.RangeNearLow:
			alerts = append(alerts, Alert{
				Type:       AlertNear52wLow,
				Ticker:     s.Ticker,
				Message:    fmt.Sprintf("%s is near its 52-week low of %.2f", s.Ticker, s.FiftyTwoWeek.Low),
				Priority:   PriorityHigh,
				ActionHint: "Potential value play",
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return priorityRank[alerts[i].Priority] < priorityRank[alerts[j].Priority]
	})

	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	return alerts
}
