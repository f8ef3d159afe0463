package formulas

import (
	"math"
	"testing"
)

func TestCalculateMACDInsufficientData(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}

	if got := CalculateMACD(closes, 12, 26, 9); got != nil {
		t.Errorf("Expected nil under 26 closes, got %+v", got)
	}
}

func TestCalculateMACDUptrend(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}

	macd := CalculateMACD(closes, 12, 26, 9)
	if macd == nil {
		t.Fatal("Expected MACD for 40 closes")
	}

	// In a steady uptrend the fast EMA leads the slow EMA and the MACD line
	// keeps rising ahead of its own signal EMA.
	if macd.MACD <= 0 {
		t.Errorf("Uptrend MACD line = %v, expected > 0", macd.MACD)
	}
	if macd.Histogram <= 0 {
		t.Errorf("Uptrend histogram = %v, expected > 0", macd.Histogram)
	}
}

func TestCalculateMACDFlatSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50
	}

	macd := CalculateMACD(closes, 12, 26, 9)
	if macd == nil {
		t.Fatal("Expected MACD for flat series")
	}
	if math.Abs(macd.MACD) > 1e-9 || math.Abs(macd.Histogram) > 1e-9 {
		t.Errorf("Flat series should produce zero MACD, got %+v", macd)
	}
}

func TestEMASeriesSeed(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}

	ema := EMASeries(values, 3)
	if len(ema) != len(values) {
		t.Fatalf("EMA series length = %d, want %d", len(ema), len(values))
	}

	// Seed is the simple mean of the first period values.
	if math.Abs(ema[2]-2.0) > 1e-9 {
		t.Errorf("EMA seed = %v, want 2.0", ema[2])
	}

	// Next value: 4*0.5 + 2*0.5 with k = 2/(3+1).
	if math.Abs(ema[3]-3.0) > 1e-9 {
		t.Errorf("EMA[3] = %v, want 3.0", ema[3])
	}
}
