package store

// MetricRow is one warehouse row as scanned: column name to value.
// Value types depend on the driver (time.Time, string, float64,
// int64, []byte); the adapter and normalizer coerce them.
type MetricRow map[string]any
