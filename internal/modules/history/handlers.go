package history

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for the metric history module.
type Handlers struct {
	tracker *Tracker
	log     zerolog.Logger
}

// NewHandlers creates a new history handlers instance.
func NewHandlers(tracker *Tracker, log zerolog.Logger) *Handlers {
	return &Handlers{
		tracker: tracker,
		log:     log.With().Str("module", "history_handlers").Logger(),
	}
}

// recordMetricRequest is the body for a metric observation.
type recordMetricRequest struct {
	Value *float64 `json:"value"`
}

// HandleRecordMetric handles POST /api/metrics/{metric}/{ticker}
// Records today's observation (idempotent per UTC day) and returns the
// percentile summary for the trailing year.
func (h *Handlers) HandleRecordMetric(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")
	ticker := chi.URLParam(r, "ticker")

	var req recordMetricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Value == nil {
		h.writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	summary := h.tracker.RecordAndSummarizeMetric(r.Context(), metric, ticker, *req.Value, time.Now())
	h.writeJSON(w, http.StatusOK, summary)
}

// HandleGetMetricSummary handles GET /api/metrics/{metric}/{ticker}?current=0.42
// Computes the percentile summary without recording anything.
func (h *Handlers) HandleGetMetricSummary(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")
	ticker := chi.URLParam(r, "ticker")

	current, err := strconv.ParseFloat(r.URL.Query().Get("current"), 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "current query parameter is required")
		return
	}

	summary := h.tracker.ComputeSummary(r.Context(), MetricKey(metric, ticker), current, time.Now())
	h.writeJSON(w, http.StatusOK, summary)
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
