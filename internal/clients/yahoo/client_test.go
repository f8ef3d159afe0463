package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartPayload = `{
	"chart": {
		"result": [{
			"timestamp": [1746057600, 1746144000, 1746230400],
			"indicators": {
				"quote": [{
					"open":   [100.0, null, 102.0],
					"high":   [101.0, null, 103.5],
					"low":    [99.0,  null, 101.0],
					"close":  [100.5, null, 103.0],
					"volume": [5000,  null, 6000]
				}]
			}
		}],
		"error": null
	}
}`

const quotePayload = `{
	"quoteResponse": {
		"result": [{
			"symbol": "AAPL",
			"marketCap": 2800000000000,
			"fiftyTwoWeekHigh": 237.23,
			"fiftyTwoWeekLow": 164.08,
			"beta": 1.25,
			"earningsTimestamp": 1753142400
		}],
		"error": null
	}
}`

func stubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zerolog.Nop())
}

func TestGetDailyBarsSkipsNullEntries(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/AAPL")
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Write([]byte(chartPayload))
	})

	bars, err := client.GetDailyBars(context.Background(), "AAPL",
		time.Now().AddDate(0, 0, -5), time.Now())
	require.NoError(t, err)
	require.Len(t, bars, 2, "null close entry must be skipped")

	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 103.0, bars[1].Close)
	assert.Equal(t, int64(6000), bars[1].Volume)
	assert.True(t, bars[0].Date.Before(bars[1].Date))
}

func TestGetDailyBarsUnknownSymbol(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	bars, err := client.GetDailyBars(context.Background(), "NOPE",
		time.Now().AddDate(0, 0, -5), time.Now())
	require.NoError(t, err, "missing data is not an error")
	assert.Empty(t, bars)
}

func TestGetDailyBarsServerError(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetDailyBars(context.Background(), "AAPL",
		time.Now().AddDate(0, 0, -5), time.Now())
	require.Error(t, err)
}

func TestGetQuoteMetricsOptionalFields(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v7/finance/quote")
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
		w.Write([]byte(quotePayload))
	})

	metrics, err := client.GetQuoteMetrics(context.Background(), "AAPL")
	require.NoError(t, err)

	require.NotNil(t, metrics.MarketCap)
	assert.Equal(t, 2.8e12, *metrics.MarketCap)
	require.NotNil(t, metrics.Beta)
	assert.Equal(t, 1.25, *metrics.Beta)
	require.NotNil(t, metrics.NextEarningsDate)
	assert.Equal(t, int64(1753142400), metrics.NextEarningsDate.Unix())

	// Fields absent from the payload stay nil.
	assert.Nil(t, metrics.AverageVolume)
	assert.Nil(t, metrics.ShortPercentOfFloat)
}

func TestGetQuoteMetricsContextCancelled(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetQuoteMetrics(ctx, "AAPL")
	require.Error(t, err)
}
