package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/ledger-history/models/history"
)

const namespaceHistory = "ledger_history"

// Gateway wraps a gateway and records the number, outcome and duration of
// every remote call made through it.
type Gateway struct {
	gateway  history.Gateway
	calls    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewGateway wraps the given gateway and registers its collectors with the
// given registerer.
func NewGateway(gateway history.Gateway, reg prometheus.Registerer) *Gateway {
	factory := promauto.With(reg)

	callsOpts := prometheus.CounterOpts{
		Name:      "remote_calls_total",
		Namespace: namespaceHistory,
		Help:      "number of remote calls issued to ledger endpoints",
	}
	calls := factory.NewCounterVec(callsOpts, []string{"method", "outcome"})

	failuresOpts := prometheus.CounterOpts{
		Name:      "remote_call_failures_total",
		Namespace: namespaceHistory,
		Help:      "number of remote calls that failed in transport",
	}
	failures := factory.NewCounterVec(failuresOpts, []string{"method", "endpoint"})

	durationOpts := prometheus.HistogramOpts{
		Name:      "remote_call_duration_seconds",
		Namespace: namespaceHistory,
		Help:      "duration of remote calls to ledger endpoints",
		Buckets:   prometheus.DefBuckets,
	}
	duration := factory.NewHistogramVec(durationOpts, []string{"method"})

	g := Gateway{
		gateway:  gateway,
		calls:    calls,
		failures: failures,
		duration: duration,
	}

	return &g
}

func (g *Gateway) Block(ctx context.Context, endpoint history.Endpoint, method string, height history.Height) (history.Lookup, error) {
	start := time.Now()
	lookup, err := g.gateway.Block(ctx, endpoint, method, height)
	g.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		g.calls.WithLabelValues(method, "error").Inc()
		g.failures.WithLabelValues(method, string(endpoint)).Inc()
	case lookup.Redirect != "":
		g.calls.WithLabelValues(method, "redirect").Inc()
	case len(lookup.Block) > 0:
		g.calls.WithLabelValues(method, "block").Inc()
	default:
		g.calls.WithLabelValues(method, "not_found").Inc()
	}

	return lookup, err
}

func (g *Gateway) Tip(ctx context.Context, endpoint history.Endpoint, method string) (*history.TipOfChain, error) {
	start := time.Now()
	tip, err := g.gateway.Tip(ctx, endpoint, method)
	g.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		g.calls.WithLabelValues(method, "error").Inc()
		g.failures.WithLabelValues(method, string(endpoint)).Inc()
		return nil, err
	}
	g.calls.WithLabelValues(method, "tip").Inc()

	return tip, nil
}
