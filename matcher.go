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
	"time"
)

// Matcher wraps an immutable Table with optional, opt-in observability
// (metrics, tracing, diagnostics). It adds nothing to the matching
// algorithm itself: Matcher.Execute always produces exactly what
// Execute(table, req) would, instrumentation aside.
//
// The bare package-level Execute function remains available for callers
// who want the core algorithm with zero observability overhead.
type Matcher struct {
	table       *Table
	diagnostics DiagnosticHandler
	metrics     *metricsConfig
	tracing     *tracingConfig
}

// Option configures a Matcher. Options follow the "With"-prefixed
// functional-options convention throughout; there is no error return.
// WithMetrics panics if its exporter or instruments cannot be created; the
// other options cannot fail.
type Option func(*Matcher)

// NewMatcher builds a Matcher over table, applying opts in order.
func NewMatcher(table *Table, opts ...Option) *Matcher {
	m := &Matcher{table: table}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithDiagnostics attaches a DiagnosticHandler to receive match-time
// diagnostic events. Currently it emits DiagHighBindingCount whenever a
// match captures more than highBindingCountThreshold bindings; it never
// influences the match outcome.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(m *Matcher) { m.diagnostics = handler }
}

// Table returns the Table the Matcher was constructed with.
func (m *Matcher) Table() *Table { return m.table }

// multiObserver fans a single observer callback out to every observer in
// the slice, used when a Matcher has more than one observability option
// attached (e.g. both metrics and diagnostics).
type multiObserver []observer

func (mo multiObserver) onConstraintReject() {
	for _, o := range mo {
		o.onConstraintReject()
	}
}

func (mo multiObserver) onHighBindingCount(n int) {
	for _, o := range mo {
		o.onHighBindingCount(n)
	}
}

func (m *Matcher) buildObserver(ctx context.Context) observer {
	var obs []observer
	if m.metrics != nil {
		obs = append(obs, &metricsObserver{ctx: ctx, cfg: m.metrics})
	}
	if m.diagnostics != nil {
		obs = append(obs, &diagnosticsObserver{handler: m.diagnostics})
	}
	switch len(obs) {
	case 0:
		return nil
	case 1:
		return obs[0]
	default:
		return multiObserver(obs)
	}
}

// Execute matches req against the wrapped Table, recording metrics, a trace
// span, and diagnostic events around the call when the corresponding
// options were supplied. ctx is only consulted for tracing (span parenting)
// and for the context passed to metric recording; the match itself never
// blocks on it.
func (m *Matcher) Execute(ctx context.Context, req Request) (*Match, error) {
	if m.metrics == nil && m.tracing == nil && m.diagnostics == nil {
		return Execute(m.table, req)
	}

	start := time.Now()
	ctx, span := m.startSpan(ctx, req)

	obs := m.buildObserver(ctx)

	match, err := execute(m.table, req, obs)
	m.recordMetrics(ctx, time.Since(start), err)
	m.endSpan(span, match, err)
	return match, err
}
