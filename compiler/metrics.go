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

package compiler

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type metricsConfig struct {
	compileDuration metric.Float64Histogram
	compiledRules   metric.Int64Counter
}

// WithMetrics records two OpenTelemetry instruments around every Compile
// call: dispatch_compile_duration_seconds and dispatch_compiled_rules_total
// (the number of compiled path rules across every host rule, after
// bracket-group expansion). It uses whatever global MeterProvider is
// configured (otel.SetMeterProvider) when Compile runs. dispatch.WithMetrics
// installs its provider globally only when NewMatcher applies it, which is
// after Compile has returned the Table. WithMetrics panics if the
// instruments cannot be created, the same fail-fast posture WithMetrics
// takes on the matcher side.
func WithMetrics() Option {
	return func(c *config) {
		meter := otel.Meter("hostway.dev/dispatch/compiler")

		dur, err := meter.Float64Histogram("dispatch_compile_duration_seconds",
			metric.WithDescription("Compile call latency in seconds"))
		if err != nil {
			panic(fmt.Sprintf("dispatch/compiler: failed to create compile duration histogram: %v", err))
		}

		cnt, err := meter.Int64Counter("dispatch_compiled_rules_total",
			metric.WithDescription("Number of compiled path rules produced by Compile, after bracket expansion"))
		if err != nil {
			panic(fmt.Sprintf("dispatch/compiler: failed to create compiled rules counter: %v", err))
		}

		c.metrics = &metricsConfig{compileDuration: dur, compiledRules: cnt}
	}
}

func (c *metricsConfig) record(ctx context.Context, seconds float64, rules int) {
	if c == nil {
		return
	}
	c.compileDuration.Record(ctx, seconds)
	c.compiledRules.Add(ctx, int64(rules))
}
