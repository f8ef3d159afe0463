package insights

import (
	"testing"

	"github.com/quantfolio/signal-engine/internal/modules/technical"
)

func signalWith(ticker, rsi, nearLevel, rangeSignal string) technical.TechnicalSignal {
	return technical.TechnicalSignal{
		Ticker:            ticker,
		RSI:               technical.RSIResult{Value: 50, Signal: rsi},
		SupportResistance: technical.SupportResistance{NearLevel: nearLevel},
		FiftyTwoWeek:      technical.FiftyTwoWeekPosition{Signal: rangeSignal, PositionPct: 50},
	}
}

func TestDeriveAlertsRules(t *testing.T) {
	signals := []technical.TechnicalSignal{
		signalWith("DIP", technical.RSIOversold, technical.NearSupport, technical.RangeNearLow),
	}

	alerts := deriveAlerts(signals)
	if len(alerts) != 3 {
		t.Fatalf("Alerts = %d, want 3 independent rules fired", len(alerts))
	}

	// High priority first: the 52-week-low alert leads.
	if alerts[0].Type != AlertNear52wLow || alerts[0].Priority != PriorityHigh {
		t.Errorf("First alert = %+v, want high-priority 52w low", alerts[0])
	}
	for _, a := range alerts[1:] {
		if a.Priority == PriorityHigh {
			t.Errorf("Unexpected extra high-priority alert: %+v", a)
		}
	}
}

func TestDeriveAlertsQuietSignal(t *testing.T) {
	signals := []technical.TechnicalSignal{
		signalWith("CALM", technical.RSINeutral, technical.NearMiddle, technical.RangeMiddle),
	}
	if alerts := deriveAlerts(signals); len(alerts) != 0 {
		t.Errorf("Neutral signal produced alerts: %+v", alerts)
	}
}

func TestDeriveAlertsTruncatesToTopTen(t *testing.T) {
	var signals []technical.TechnicalSignal
	for i := 0; i < 6; i++ {
		// Each signal fires three rules: 18 candidate alerts.
		signals = append(signals, signalWith("T", technical.RSIOversold, technical.NearSupport, technical.RangeNearLow))
	}

	alerts := deriveAlerts(signals)
	if len(alerts) != 10 {
		t.Fatalf("Alerts = %d, want truncation to 10", len(alerts))
	}
	// All six high-priority alerts must survive the cut.
	high := 0
	for _, a := range alerts {
		if a.Priority == PriorityHigh {
			high++
		}
	}
	if high != 6 {
		t.Errorf("High-priority alerts kept = %d, want 6", high)
	}
}

func TestDeriveOpportunitiesGrouping(t *testing.T) {
	signals := []technical.TechnicalSignal{
		signalWith("OS", technical.RSIOversold, technical.NearMiddle, technical.RangeMiddle),
		{Ticker: "LOW", RSI: technical.RSIResult{Signal: technical.RSINeutral}, FiftyTwoWeek: technical.FiftyTwoWeekPosition{PositionPct: 20}},
		{Ticker: "TOP", RSI: technical.RSIResult{Signal: technical.RSIOverbought}, FiftyTwoWeek: technical.FiftyTwoWeekPosition{PositionPct: 95}},
		{Ticker: "OB", RSI: technical.RSIResult{Signal: technical.RSIOverbought}, FiftyTwoWeek: technical.FiftyTwoWeekPosition{PositionPct: 50}},
	}

	opportunities := deriveOpportunities(signals)
	if len(opportunities) != 2 {
		t.Fatalf("Opportunities = %+v, want dip_buy and take_profit", opportunities)
	}

	dip := opportunities[0]
	if dip.Type != OpportunityDipBuy || len(dip.Tickers) != 2 {
		t.Errorf("Dip buy = %+v, want OS and LOW grouped", dip)
	}

	// Overbought alone is not enough for take_profit; the ticker must also
	// sit in the top of its range.
	profit := opportunities[1]
	if profit.Type != OpportunityTakeProfit || len(profit.Tickers) != 1 || profit.Tickers[0] != "TOP" {
		t.Errorf("Take profit = %+v, want only TOP", profit)
	}
}
