// Package sodaprom exports SODA client call metrics to Prometheus.
//
// Attach the interceptors of a Collector to a soda.Config:
//
//	collector := sodaprom.NewCollector("myapp")
//	prometheus.MustRegister(collector)
//	config.RequestInterceptors = append(config.RequestInterceptors, collector.RequestInterceptor())
//	config.ResponseInterceptors = append(config.ResponseInterceptors, collector.ResponseInterceptor())
package sodaprom

import (
	"context"
	"strconv"
	"time"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/prometheus/client_golang/prometheus"
)

const startKey = "sodaprom_start"

// Collector counts requests and observes their latency, labeled by method and
// status code.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "soda",
			Name:      "requests_total",
			Help:      "SODA API requests by method and status code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "soda",
			Name:      "request_duration_seconds",
			Help:      "SODA API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.duration.Collect(ch)
}

// RequestInterceptor stamps the request start time.
func (c *Collector) RequestInterceptor() soda.RequestInterceptor {
	return func(ctx context.Context, req *soda.Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[startKey] = time.Now()

		return nil
	}
}

// ResponseInterceptor records the response.
func (c *Collector) ResponseInterceptor() soda.ResponseInterceptor {
	return func(ctx context.Context, req *soda.Request, resp *soda.Response) error {
		c.requests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

		if start, ok := req.Metadata[startKey].(time.Time); ok {
			c.duration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
		}

		return nil
	}
}
