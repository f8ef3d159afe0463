package insights

import (
	"time"

	"github.com/quantfolio/signal-engine/internal/modules/technical"
)

// Alert priorities, strongest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Alert types.
const (
	AlertOversold       = "rsi_oversold"
	AlertOverbought     = "rsi_overbought"
	AlertNearSupport    = "near_support"
	AlertNearResistance = "near_resistance"
	AlertNear52wHigh    = "near_52w_high"
	AlertNear52wLow     = "near_52w_low"
)

// Opportunity types.
const (
	OpportunityDipBuy     = "dip_buy"
	OpportunityTakeProfit = "take_profit"
)

// Health assessment bands.
const (
	AssessmentExcellent      = "excellent"
	AssessmentGood           = "good"
	AssessmentFair           = "fair"
	AssessmentNeedsAttention = "needs_attention"
)

// Alert is a single actionable observation about one ticker.
type Alert struct {
	Type       string `json:"type"`
	Ticker     string `json:"ticker"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
	ActionHint string `json:"action_hint,omitempty"`
}

// Opportunity groups tickers sharing one tactical setup.
type Opportunity struct {
	Type      string   `json:"type"`
	Tickers   []string `json:"tickers"`
	Rationale string   `json:"rationale"`
	Priority  string   `json:"priority"`
}

// HealthBreakdown holds the weighted components of the health score.
type HealthBreakdown struct {
	Diversification float64 `json:"diversification"`
	Momentum        float64 `json:"momentum"`
	RiskBalance     float64 `json:"risk_balance"`
}

// PortfolioHealth is the rolled-up health assessment.
type PortfolioHealth struct {
	Score      int             `json:"score"`
	Breakdown  HealthBreakdown `json:"breakdown"`
	Assessment string          `json:"assessment"`
	Summary    string          `json:"summary"`
}

// PortfolioInsights is the full aggregator output for one request.
type PortfolioInsights struct {
	Signals       []technical.TechnicalSignal `json:"signals"`
	Alerts        []Alert                     `json:"alerts"`
	Opportunities []Opportunity               `json:"opportunities"`
	Health        PortfolioHealth             `json:"health"`
	GeneratedAt   time.Time                   `json:"generated_at"`
}
