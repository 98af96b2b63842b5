// Package metrics exposes Prometheus counters for decode outcomes.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sgbdecode/internal/bits"
)

// Message kinds used as the kind label.
const (
	KindDetection = "detection"
	KindBeaconID  = "beacon_id"
)

// Collector bundles the decode metrics and serves them over HTTP.
type Collector struct {
	gatherer prometheus.Gatherer

	Decoded   *prometheus.CounterVec
	Failures  *prometheus.CounterVec
	Durations *prometheus.HistogramVec
}

// NewCollector registers the decode metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	decoded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sgb_decoded_total",
		Help: "Messages decoded successfully, labeled by message kind.",
	}, []string{"kind"})
	decoded, err := registerCounterVec(reg, decoded, "sgb_decoded_total")
	if err != nil {
		return nil, err
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sgb_decode_failures_total",
		Help: "Messages that failed to decode, labeled by message kind and failure reason.",
	}, []string{"kind", "reason"})
	failures, err = registerCounterVec(reg, failures, "sgb_decode_failures_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sgb_decode_duration_seconds",
		Help:    "Time spent decoding a single message.",
		Buckets: []float64{0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.005},
	}, []string{"kind"})
	durations, err = registerHistogramVec(reg, durations, "sgb_decode_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:  gatherer,
		Decoded:   decoded,
		Failures:  failures,
		Durations: durations,
	}, nil
}

// Handler exposes the registered metrics for scraping.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Observe records the outcome of one decode. A nil collector is a no-op.
func (c *Collector) Observe(kind string, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	c.Durations.WithLabelValues(kind).Observe(elapsed.Seconds())
	if err != nil {
		c.Failures.WithLabelValues(kind, Reason(err)).Inc()
		return
	}
	c.Decoded.WithLabelValues(kind).Inc()
}

// Reason maps a decode error to a low cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, bits.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, bits.ErrInvalidCharacter):
		return "invalid_character"
	case errors.Is(err, bits.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, bits.ErrUnknownLookup):
		return "unknown_lookup"
	default:
		return "other"
	}
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
