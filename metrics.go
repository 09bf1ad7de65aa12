// Copyright 2025 The Hostway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsProvider selects which OpenTelemetry metric exporter backs
// WithMetrics. PrometheusProvider is the default, matching the common
// "scrape me" deployment shape for a library with no server of its own.
type MetricsProvider string

const (
	PrometheusProvider MetricsProvider = "prometheus"
	StdoutProvider     MetricsProvider = "stdout"
)

type metricsConfig struct {
	meter metric.Meter

	matchCount           metric.Int64Counter
	matchDuration        metric.Float64Histogram
	constraintRejections metric.Int64Counter
}

// metricsObserver adapts metricsConfig to the observer interface match.go
// calls into, carrying the context a particular Execute call was made with.
type metricsObserver struct {
	ctx context.Context
	cfg *metricsConfig
}

func (o *metricsObserver) onConstraintReject() {
	o.cfg.constraintRejections.Add(o.ctx, 1)
}

// onHighBindingCount is a no-op: binding-count thresholds are a diagnostics
// concern (DiagHighBindingCount), not a metric this package exports.
func (o *metricsObserver) onHighBindingCount(int) {}

// WithMetrics enables OpenTelemetry metrics around every Matcher.Execute
// call: a counter of match outcomes (tagged "outcome" = hit/host_not_found/
// path_not_found/path_bad_request) and a duration histogram. provider
// selects the exporter; PrometheusProvider is used when provider is empty.
//
// WithMetrics panics if the exporter cannot be constructed, matching the
// teacher's posture that metrics backend wiring is a startup-time
// configuration error, not a runtime one.
func WithMetrics(provider MetricsProvider) Option {
	return func(m *Matcher) {
		reader, err := newMetricReader(provider)
		if err != nil {
			panic(fmt.Sprintf("dispatch: failed to initialize metrics: %v", err))
		}

		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		otel.SetMeterProvider(mp)

		meter := mp.Meter("hostway.dev/dispatch")
		cfg := &metricsConfig{meter: meter}

		cfg.matchCount, err = meter.Int64Counter("dispatch_match_total",
			metric.WithDescription("Number of Execute calls by outcome"))
		if err != nil {
			panic(fmt.Sprintf("dispatch: failed to create match counter: %v", err))
		}

		cfg.matchDuration, err = meter.Float64Histogram("dispatch_match_duration_seconds",
			metric.WithDescription("Execute call latency in seconds"))
		if err != nil {
			panic(fmt.Sprintf("dispatch: failed to create match duration histogram: %v", err))
		}

		cfg.constraintRejections, err = meter.Int64Counter("dispatch_constraint_rejections_total",
			metric.WithDescription("Number of per-binding constraint rejections across all candidate rules"))
		if err != nil {
			panic(fmt.Sprintf("dispatch: failed to create constraint rejection counter: %v", err))
		}

		m.metrics = cfg
	}
}

func newMetricReader(provider MetricsProvider) (sdkmetric.Reader, error) {
	switch provider {
	case StdoutProvider:
		exp, err := stdoutmetric.New()
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp), nil
	case PrometheusProvider, "":
		return prometheus.New()
	default:
		return nil, fmt.Errorf("unknown metrics provider %q", provider)
	}
}

func (m *Matcher) recordMetrics(ctx context.Context, elapsed time.Duration, err error) {
	if m.metrics == nil {
		return
	}

	m.metrics.matchCount.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcomeLabel(err))))
	m.metrics.matchDuration.Record(ctx, elapsed.Seconds())
}

func outcomeLabel(err error) string {
	switch err {
	case nil:
		return "hit"
	case ErrHostNotFound:
		return "host_not_found"
	case ErrPathNotFound:
		return "path_not_found"
	case ErrPathBadRequest:
		return "path_bad_request"
	default:
		return "error"
	}
}
