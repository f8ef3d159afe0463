package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfolio/signal-engine/internal/domain"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is a Yahoo Finance market data client. It implements the price
// history provider contract used by the insights pipeline and the snapshot
// job: daily bars plus an optional-field quote snapshot.
type Client struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewClient creates a new Yahoo Finance client. An empty baseURL selects the
// public query endpoint; tests point it at a local stub.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// GetDailyBars fetches daily OHLCV bars for [start, end], ascending by date.
// A ticker with no data in the window yields an empty slice, not an error:
// missing data is a recoverable condition for the callers, unavailability
// is not.
func (c *Client) GetDailyBars(ctx context.Context, ticker string, start, end time.Time) ([]domain.PriceBar, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(ticker), start.Unix(), end.Unix())

	body, status, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		// Unknown or delisted symbol: no data, not a failure.
		c.log.Debug().Str("ticker", ticker).Msg("No chart data for symbol")
		return []domain.PriceBar{}, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("chart API returned status %d: %s", status, string(body))
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse chart response: %w", err)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return []domain.PriceBar{}, nil
	}

	result := parsed.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]domain.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Holidays and half-days surface as null entries; skip them.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := domain.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

// GetQuoteMetrics fetches the quote snapshot used for 52-week ranges and
// daily metric tracking. Every field is optional upstream; absent fields
// stay nil.
func (c *Client) GetQuoteMetrics(ctx context.Context, ticker string) (*domain.QuoteMetrics, error) {
	params := url.Values{}
	params.Add("symbols", ticker)
	params.Add("fields", "symbol,marketCap,fiftyTwoWeekHigh,fiftyTwoWeekLow,"+
		"averageDailyVolume3Month,beta,shortPercentOfFloat,earningsTimestamp")

	body, status, err := c.get(ctx, c.baseURL+"/v7/finance/quote?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d: %s", status, string(body))
	}

	var parsed quoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}
	if parsed.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote API error: %v", parsed.QuoteResponse.Error)
	}
	if len(parsed.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data returned for %s", ticker)
	}

	info := parsed.QuoteResponse.Result[0]
	metrics := &domain.QuoteMetrics{
		Ticker:              ticker,
		MarketCap:           getFloat64(info, "marketCap"),
		FiftyTwoWeekHigh:    getFloat64(info, "fiftyTwoWeekHigh"),
		FiftyTwoWeekLow:     getFloat64(info, "fiftyTwoWeekLow"),
		AverageVolume:       getFloat64(info, "averageDailyVolume3Month"),
		Beta:                getFloat64(info, "beta"),
		ShortPercentOfFloat: getFloat64(info, "shortPercentOfFloat"),
	}
	if ts := getFloat64(info, "earningsTimestamp"); ts != nil {
		earnings := time.Unix(int64(*ts), 0).UTC()
		metrics.NextEarningsDate = &earnings
	}

	return metrics, nil
}

// get performs a GET with browser-like headers and returns body and status.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// getFloat64 safely extracts a numeric field from a quote result map.
func getFloat64(m map[string]interface{}, key string) *float64 {
	if val, ok := m[key]; ok && val != nil {
		switch v := val.(type) {
		case float64:
			return &v
		case int:
			f := float64(v)
			return &f
		case int64:
			f := float64(v)
			return &f
		}
	}
	return nil
}
