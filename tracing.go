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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type tracingConfig struct {
	tracer trace.Tracer
}

// WithTracing enables an OpenTelemetry span around every Matcher.Execute
// call, tagged with the outcome and, on a hit, the matched handler's
// bindings count. It uses the globally configured TracerProvider
// (otel.SetTracerProvider), matching the convention the rest of the
// corpus's OTel integrations follow.
func WithTracing() Option {
	return func(m *Matcher) {
		m.tracing = &tracingConfig{
			tracer: otel.Tracer("hostway.dev/dispatch"),
		}
	}
}

func (m *Matcher) startSpan(ctx context.Context, req Request) (context.Context, trace.Span) {
	if m.tracing == nil {
		return ctx, nil
	}
	return m.tracing.tracer.Start(ctx, "dispatch.Execute", trace.WithAttributes(
		attribute.String("dispatch.host", req.Host),
		attribute.String("dispatch.path", req.Path),
	))
}

func (m *Matcher) endSpan(span trace.Span, match *Match, err error) {
	if span == nil {
		return
	}
	defer span.End()

	span.SetAttributes(attribute.String("dispatch.outcome", outcomeLabel(err)))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(attribute.Int("dispatch.bindings", len(match.Bindings)))
	span.SetStatus(codes.Ok, "")
}
