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

import "fmt"

// DiagnosticEvent is an optional, informational event emitted by the
// compiler or the matcher. Diagnostics never change behavior: a Table
// compiles and matches identically whether or not a DiagnosticHandler is
// attached.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes a DiagnosticEvent.
type DiagnosticKind string

const (
	// DiagRouteCompiled fires once per compiled path rule, after bracket
	// expansion, for callers that want to log or count the final
	// dispatch table shape.
	DiagRouteCompiled DiagnosticKind = "route_compiled"

	// DiagHighBindingCount fires when a single successful match (host and
	// path bindings together) captures more than highBindingCountThreshold
	// bindings, which is rarely intentional.
	DiagHighBindingCount DiagnosticKind = "binding_count_high"
)

// DiagnosticHandler receives DiagnosticEvents. Implementations may log,
// emit metrics, or ignore them; the zero value (no handler attached) is a
// silent no-op.
//
// Example wiring to log/slog:
//
//	handler := dispatch.DiagnosticHandlerFunc(func(e dispatch.DiagnosticEvent) {
//		slog.Info(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc adapts a function to DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

// OnDiagnostic implements DiagnosticHandler.
func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) { f(e) }

// highBindingCountThreshold is the binding count above which a match is
// considered unusual enough to report via DiagHighBindingCount.
const highBindingCountThreshold = 8

// diagnosticsObserver adapts a DiagnosticHandler to the observer interface
// match.go calls into, emitting DiagHighBindingCount when a match's binding
// count exceeds highBindingCountThreshold. It never affects the match
// outcome.
type diagnosticsObserver struct {
	handler DiagnosticHandler
}

func (o *diagnosticsObserver) onConstraintReject() {}

func (o *diagnosticsObserver) onHighBindingCount(n int) {
	if n <= highBindingCountThreshold {
		return
	}
	o.handler.OnDiagnostic(DiagnosticEvent{
		Kind:    DiagHighBindingCount,
		Message: fmt.Sprintf("match captured %d bindings, above the %d threshold", n, highBindingCountThreshold),
		Fields: map[string]any{
			"bindings":  n,
			"threshold": highBindingCountThreshold,
		},
	})
}
