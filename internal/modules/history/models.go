package history

// PercentileSummary describes where the current observation ranks inside the
// trailing one-year window for one entity/metric.
//
// Percentile is nil while the history is still building (fewer than 5
// samples) and when the window is flat (high == low). Low/High are nil only
// when there are no samples at all.
type PercentileSummary struct {
	Percentile      *int     `json:"percentile"`
	High            *float64 `json:"high"`
	Low             *float64 `json:"low"`
	SampleCount     int      `json:"sample_count"`
	BuildingHistory bool     `json:"building_history"`
}

// sample is the stored member format: one JSON object per entity per day,
// scored by the UTC midnight timestamp of its day.
type sample struct {
	Value float64 `json:"v"`
	Date  string  `json:"d"`
}
