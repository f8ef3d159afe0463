package insights

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfolio/signal-engine/internal/domain"
	"github.com/quantfolio/signal-engine/internal/modules/technical"
)

// PriceHistoryProvider supplies daily bars and quote snapshots. Empty bars
// are the "no data" recovery path, never an error.
type PriceHistoryProvider interface {
	GetDailyBars(ctx context.Context, ticker string, start, end time.Time) ([]domain.PriceBar, error)
	GetQuoteMetrics(ctx context.Context, ticker string) (*domain.QuoteMetrics, error)
}

// CategoryLookup maps a ticker to its portfolio category. An unknown ticker
// returns an empty category, not an error.
type CategoryLookup interface {
	CategoryBySymbol(symbol string) (string, error)
}

const (
	// MaxTickers caps a single request for cost and latency control.
	MaxTickers = 10

	// batchSize bounds peak concurrency: batches run sequentially, tickers
	// inside a batch fan out together.
	batchSize = 3

	// lookbackDays covers every indicator's requirement (MACD 26, RSI 15,
	// levels 20) with headroom for smoother EMAs.
	lookbackDays = 90

	// minBars excludes tickers that cannot support a MACD.
	minBars = 26

	defaultTickerTimeout = 8 * time.Second
)

// Service orchestrates indicator calculation across a portfolio.
type Service struct {
	provider      PriceHistoryProvider
	categories    CategoryLookup
	tickerTimeout time.Duration
	log           zerolog.Logger
}

// NewService creates a new insights service.
func NewService(provider PriceHistoryProvider, categories CategoryLookup, log zerolog.Logger) *Service {
	return &Service{
		provider:      provider,
		categories:    categories,
		tickerTimeout: defaultTickerTimeout,
		log:           log.With().Str("module", "insights").Logger(),
	}
}

// tickerResult is the per-unit outcome: exactly one of signal/err is set,
// or neither when the ticker was skipped for insufficient history.
type tickerResult struct {
	ticker string
	signal *technical.TechnicalSignal
	err    error
}

// ComputePortfolioInsights runs the full pipeline: fetch and score each
// ticker with bounded concurrency, then derive alerts, opportunities and
// the portfolio health score.
//
// A failing or slow ticker is excluded from the output and never fails the
// request; an empty portfolio short-circuits to the canonical empty response.
func (s *Service) ComputePortfolioInsights(ctx context.Context, tickers []string) (*PortfolioInsights, error) {
	if len(tickers) == 0 {
		return emptyInsights(), nil
	}

	if len(tickers) > MaxTickers {
		s.log.Warn().Int("requested", len(tickers)).Int("cap", MaxTickers).Msg("Ticker list truncated")
		tickers = tickers[:MaxTickers]
	}

	results := make([]tickerResult, len(tickers))
	for start := 0; start < len(tickers); start += batchSize {
		end := start + batchSize
		if end > len(tickers) {
			end = len(tickers)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = s.analyzeTicker(ctx, tickers[i])
			}(i)
		}
		wg.Wait()
	}

	// Results are collected positionally, so output order follows input
	// order regardless of completion order.
	signals := make([]technical.TechnicalSignal, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			s.log.Warn().Err(r.err).Str("ticker", r.ticker).Msg("Ticker excluded from insights")
			continue
		}
		if r.signal == nil {
			continue
		}
		signals = append(signals, *r.signal)
	}

	return &PortfolioInsights{
		Signals:       signals,
		Alerts:        deriveAlerts(signals),
		Opportunities: deriveOpportunities(signals),
		Health:        s.computeHealth(tickers, signals),
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

// analyzeTicker is one unit of work with its own timeout. Fetch or compute
// problems surface as an err result, insufficient history as a silent skip.
func (s *Service) analyzeTicker(parent context.Context, ticker string) tickerResult {
	ctx, cancel := context.WithTimeout(parent, s.tickerTimeout)
	defer cancel()

	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays)

	bars, err := s.provider.GetDailyBars(ctx, ticker, start, end)
	if err != nil {
		return tickerResult{ticker: ticker, err: fmt.Errorf("price history fetch: %w", err)}
	}

	if len(bars) < minBars {
		s.log.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("Insufficient history, ticker omitted")
		return tickerResult{ticker: ticker}
	}

	var high, low float64
	if quote, err := s.provider.GetQuoteMetrics(ctx, ticker); err == nil && quote != nil {
		if quote.FiftyTwoWeekHigh != nil {
			high = *quote.FiftyTwoWeekHigh
		}
		if quote.FiftyTwoWeekLow != nil {
			low = *quote.FiftyTwoWeekLow
		}
	}
	// A missing quote range degrades to the bar extremes inside
	// ComputeTechnicalSignal; it never fails the ticker.

	signal := technical.ComputeTechnicalSignal(ticker, bars, high, low)
	return tickerResult{ticker: ticker, signal: &signal}
}

// emptyInsights is the canonical zero-holdings response.
func emptyInsights() *PortfolioInsights {
	return &PortfolioInsights{
		Signals:       []technical.TechnicalSignal{},
		Alerts:        []Alert{},
		Opportunities: []Opportunity{},
		Health: PortfolioHealth{
			Score:      0,
			Assessment: AssessmentNeedsAttention,
			Summary:    summaryForAssessment(AssessmentNeedsAttention),
		},
		GeneratedAt: time.Now().UTC(),
	}
}
