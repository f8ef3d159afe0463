package domain

import "time"

// PriceBar represents a single daily OHLCV observation. Series are ordered
// ascending by date; calculators tolerate short series.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Closes extracts the close column from a bar series.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// QuoteMetrics is a point-in-time quote snapshot. Every field is optional:
// the upstream quote API omits fields freely and callers must treat a nil
// as "unknown", not zero.
type QuoteMetrics struct {
	Ticker              string     `json:"ticker"`
	MarketCap           *float64   `json:"market_cap,omitempty"`
	FiftyTwoWeekHigh    *float64   `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow     *float64   `json:"fifty_two_week_low,omitempty"`
	AverageVolume       *float64   `json:"average_volume,omitempty"`
	Beta                *float64   `json:"beta,omitempty"`
	ShortPercentOfFloat *float64   `json:"short_percent_of_float,omitempty"`
	NextEarningsDate    *time.Time `json:"next_earnings_date,omitempty"`
}

// Security represents a tracked security in the analysis universe.
// LastUpdated is an RFC3339 timestamp, stored as text.
type Security struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Active      bool   `json:"active"`
	LastUpdated string `json:"last_updated,omitempty"`
}
