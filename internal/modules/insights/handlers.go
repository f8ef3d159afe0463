package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/quantfolio/signal-engine/internal/modules/technical"
)

// Handlers provides HTTP handlers for the insights module.
type Handlers struct {
	service  *Service
	provider PriceHistoryProvider
	log      zerolog.Logger
}

// NewHandlers creates a new insights handlers instance.
func NewHandlers(service *Service, provider PriceHistoryProvider, log zerolog.Logger) *Handlers {
	return &Handlers{
		service:  service,
		provider: provider,
		log:      log.With().Str("module", "insights_handlers").Logger(),
	}
}

// HandleGetInsights handles GET /api/insights?tickers=AAPL,MSFT
func (h *Handlers) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	var tickers []string
	for _, t := range strings.Split(r.URL.Query().Get("tickers"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, strings.ToUpper(t))
		}
	}

	result, err := h.service.ComputePortfolioInsights(r.Context(), tickers)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute insights")
		h.writeError(w, http.StatusInternalServerError, "Failed to compute insights")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleGetTechnicalSignal handles GET /api/technical/{ticker}
// Computes a single ticker's technical signal on demand.
func (h *Handlers) HandleGetTechnicalSignal(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	ctx, cancel := context.WithTimeout(r.Context(), defaultTickerTimeout)
	defer cancel()

	end := time.Now()
	bars, err := h.provider.GetDailyBars(ctx, ticker, end.AddDate(0, 0, -lookbackDays), end)
	if err != nil {
		h.log.Warn().Err(err).Str("ticker", ticker).Msg("Price history fetch failed")
		h.writeError(w, http.StatusBadGateway, "Price history unavailable")
		return
	}
	if len(bars) < minBars {
		h.writeError(w, http.StatusUnprocessableEntity, "Insufficient price history for technical analysis")
		return
	}

	var high, low float64
	if quote, err := h.provider.GetQuoteMetrics(ctx, ticker); err == nil && quote != nil {
		if quote.FiftyTwoWeekHigh != nil {
			high = *quote.FiftyTwoWeekHigh
		}
		if quote.FiftyTwoWeekLow != nil {
			low = *quote.FiftyTwoWeekLow
		}
	}

	h.writeJSON(w, http.StatusOK, technical.ComputeTechnicalSignal(ticker, bars, high, low))
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
