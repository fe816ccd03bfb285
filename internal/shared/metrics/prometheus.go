package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Prometheus struct {
	auctionsClosed    *prometheus.CounterVec
	paymentsGenerated *prometheus.CounterVec
	batchTotal        *prometheus.CounterVec
	batchDuration     *prometheus.HistogramVec
	httpDuration      *prometheus.HistogramVec
}

func NewPrometheusMetrics(reg prometheus.Registerer, serviceName string) *Prometheus {
	m := &Prometheus{
		auctionsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "auction_closed_total",
			Help:        "Auctions picked up by the closer, by outcome.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		paymentsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "auction_payment_generated_total",
			Help:        "Payments generated for closed auctions, by outcome.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		batchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_batch_total",
			Help:        "Total number of batch runs.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"batch", "status"}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_batch_duration_seconds",
			Help:        "Batch run latency.",
			Buckets:     []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"batch", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_http_duration_seconds",
			Help:        "Duration of HTTP requests.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status_code"}),
	}

	reg.MustRegister(
		m.auctionsClosed,
		m.paymentsGenerated,
		m.batchTotal,
		m.batchDuration,
		m.httpDuration,
	)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (p *Prometheus) RecordAuctionClosed(status string) {
	p.auctionsClosed.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordPaymentGenerated(status string) {
	p.paymentsGenerated.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordBatchRun(batch string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.batchTotal.WithLabelValues(batch, status).Inc()
	p.batchDuration.WithLabelValues(batch, status).Observe(duration.Seconds())
}

func (p *Prometheus) ObserveHTTPRequestDuration(method, path, code string, duration float64) {
	p.httpDuration.WithLabelValues(method, path, code).Observe(duration)
}
