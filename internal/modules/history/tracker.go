package history

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfolio/signal-engine/pkg/formulas"
)

const (
	// DefaultRetention bounds the stored series; pruning runs on every write.
	// Kept above the summary window so a slow prune never starves a summary.
	DefaultRetention = 400 * 24 * time.Hour

	summaryWindow = 365 * 24 * time.Hour
	markerTTL     = 24 * time.Hour
	minSamples    = 5
	dayFormat     = "2006-01-02"
)

// Tracker maintains rolling daily observations per entity and ranks the
// current observation against the trailing window.
//
// All operations degrade instead of failing: analytics here are advisory,
// so a store error yields a false write or a building-history summary,
// never an error to the caller.
type Tracker struct {
	store     TimeSeriesStore
	retention time.Duration
	log       zerolog.Logger
}

// NewTracker creates a tracker. A zero retention falls back to
// DefaultRetention.
func NewTracker(store TimeSeriesStore, retention time.Duration, log zerolog.Logger) *Tracker {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Tracker{
		store:     store,
		retention: retention,
		log:       log.With().Str("module", "history").Logger(),
	}
}

// MetricKey builds the canonical entity key for a metric/ticker pair.
func MetricKey(metricName, ticker string) string {
	return metricName + ":" + strings.ToUpper(strings.TrimSpace(ticker))
}

// RecordSnapshot stores at most one observation per entity per UTC calendar
// day. Returns true when a new record was written, false when today's
// snapshot already existed or the store was unavailable.
//
// The per-day marker is claimed with an atomic set-if-absent before the
// series insert, so concurrent same-day writers race on the marker, not on
// the series.
func (t *Tracker) RecordSnapshot(ctx context.Context, entityKey string, value float64, now time.Time) bool {
	day := now.UTC().Format(dayFormat)

	won, err := t.store.MarkOnce(ctx, markerKey(entityKey, day), markerTTL)
	if err != nil {
		t.log.Warn().Err(err).Str("entity", entityKey).Msg("Snapshot marker unavailable, skipping write")
		return false
	}
	if !won {
		return false
	}

	member, err := json.Marshal(sample{Value: value, Date: day})
	if err != nil {
		t.log.Warn().Err(err).Str("entity", entityKey).Msg("Failed to encode snapshot")
		return false
	}

	key := seriesKey(entityKey)
	if err := t.store.Insert(ctx, key, midnightUTC(now), string(member)); err != nil {
		t.log.Warn().Err(err).Str("entity", entityKey).Msg("Failed to insert snapshot")
		return false
	}

	// Prune on every write so the series never grows past the retention
	// window. Only entries outside the window are removed.
	if err := t.store.DeleteBefore(ctx, key, now.UTC().Add(-t.retention)); err != nil {
		t.log.Warn().Err(err).Str("entity", entityKey).Msg("Failed to prune snapshot history")
	}

	return true
}

// ComputeSummary ranks currentValue against the trailing 365 days of stored
// observations. The current value always participates as a virtual sample,
// so a summary is meaningful before (or without) a durable record step.
func (t *Tracker) ComputeSummary(ctx context.Context, entityKey string, currentValue float64, now time.Time) PercentileSummary {
	members, err := t.store.RangeSince(ctx, seriesKey(entityKey), now.UTC().Add(-summaryWindow))
	if err != nil {
		t.log.Warn().Err(err).Str("entity", entityKey).Msg("History read failed, reporting building state")
		return PercentileSummary{BuildingHistory: true}
	}

	values := make([]float64, 0, len(members)+1)
	currentPresent := false
	for _, m := range members {
		var s sample
		if err := json.Unmarshal([]byte(m), &s); err != nil {
			// Malformed entries are skipped, not fatal.
			t.log.Debug().Str("entity", entityKey).Str("member", m).Msg("Skipping malformed history entry")
			continue
		}
		values = append(values, s.Value)
		if s.Value == currentValue {
			currentPresent = true
		}
	}
	if !currentPresent {
		values = append(values, currentValue)
	}

	summary := PercentileSummary{SampleCount: len(values)}
	if len(values) == 0 {
		summary.BuildingHistory = true
		return summary
	}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	summary.Low = &low
	summary.High = &high

	if summary.SampleCount < minSamples {
		summary.BuildingHistory = true
		return summary
	}

	if high > low {
		p := int(math.Round(formulas.Clamp((currentValue-low)/(high-low), 0, 1) * 100))
		summary.Percentile = &p
	}
	return summary
}

// RecordAndSummarizeMetric records today's observation for a metric/ticker
// pair (idempotently) and returns its percentile summary.
func (t *Tracker) RecordAndSummarizeMetric(ctx context.Context, metricName, ticker string, value float64, now time.Time) PercentileSummary {
	key := MetricKey(metricName, ticker)
	t.RecordSnapshot(ctx, key, value, now)
	return t.ComputeSummary(ctx, key, value, now)
}

func markerKey(entityKey, day string) string {
	return "history:mark:" + entityKey + ":" + day
}

func seriesKey(entityKey string) string {
	return "history:series:" + entityKey
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
