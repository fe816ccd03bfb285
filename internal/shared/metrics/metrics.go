package metrics

import "time"

type Metrics interface {
	// Business
	RecordAuctionClosed(status string)
	RecordPaymentGenerated(status string)
	RecordBatchRun(batch string, success bool, duration time.Duration)

	// Infrastructure
	ObserveHTTPRequestDuration(method, path, statusCode string, duration float64)
}

// Noop discards everything, used when no registry is wired (tests, one-off runs).
type Noop struct{}

func (Noop) RecordAuctionClosed(string)                                 {}
func (Noop) RecordPaymentGenerated(string)                              {}
func (Noop) RecordBatchRun(string, bool, time.Duration)                 {}
func (Noop) ObserveHTTPRequestDuration(string, string, string, float64) {}
