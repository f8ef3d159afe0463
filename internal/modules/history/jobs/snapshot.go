package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfolio/signal-engine/internal/domain"
	"github.com/quantfolio/signal-engine/internal/modules/history"
)

// SecurityLister supplies the tracked security universe.
type SecurityLister interface {
	ListActive() ([]domain.Security, error)
}

// QuoteFetcher supplies point-in-time quote metrics.
type QuoteFetcher interface {
	GetQuoteMetrics(ctx context.Context, ticker string) (*domain.QuoteMetrics, error)
}

// MetricSnapshotJob records one daily observation per tracked security for
// every quote metric worth ranking against its own history. Per-ticker
// failures are logged and skipped; the job itself only fails when the
// universe cannot be listed at all.
type MetricSnapshotJob struct {
	tracker    *history.Tracker
	securities SecurityLister
	quotes     QuoteFetcher
	log        zerolog.Logger
}

// NewMetricSnapshotJob creates the daily snapshot job.
func NewMetricSnapshotJob(tracker *history.Tracker, securities SecurityLister, quotes QuoteFetcher, log zerolog.Logger) *MetricSnapshotJob {
	return &MetricSnapshotJob{
		tracker:    tracker,
		securities: securities,
		quotes:     quotes,
		log:        log.With().Str("job", "metric_snapshot").Logger(),
	}
}

// Name returns the job name.
func (j *MetricSnapshotJob) Name() string {
	return "metric_snapshot"
}

// Run records today's metric observations for the whole universe.
func (j *MetricSnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	securities, err := j.securities.ListActive()
	if err != nil {
		return fmt.Errorf("failed to list securities: %w", err)
	}

	now := time.Now()
	recorded := 0

	for _, sec := range securities {
		quote, err := j.quotes.GetQuoteMetrics(ctx, sec.Symbol)
		if err != nil {
			j.log.Warn().Err(err).Str("symbol", sec.Symbol).Msg("Quote fetch failed, skipping")
			continue
		}

		for name, value := range presentMetrics(quote) {
			if j.tracker.RecordSnapshot(ctx, history.MetricKey(name, sec.Symbol), value, now) {
				recorded++
			}
		}
	}

	j.log.Info().
		Int("securities", len(securities)).
		Int("recorded", recorded).
		Msg("Metric snapshot run complete")

	return nil
}

// presentMetrics flattens the optional quote fields into name/value pairs.
func presentMetrics(q *domain.QuoteMetrics) map[string]float64 {
	metrics := make(map[string]float64, 4)
	if q == nil {
		return metrics
	}
	if q.MarketCap != nil {
		metrics["marketCap"] = *q.MarketCap
	}
	if q.Beta != nil {
		metrics["beta"] = *q.Beta
	}
	if q.ShortPercentOfFloat != nil {
		metrics["shortInterest"] = *q.ShortPercentOfFloat
	}
	if q.AverageVolume != nil {
		metrics["avgVolume"] = *q.AverageVolume
	}
	return metrics
}
