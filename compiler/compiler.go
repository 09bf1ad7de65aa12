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
	"strings"
	"time"

	"hostway.dev/dispatch"
)

// Option configures a Compile call.
type Option func(*config)

type config struct {
	diagnostics dispatch.DiagnosticHandler
	metrics     *metricsConfig
}

// WithDiagnostics attaches a handler that receives a DiagRouteCompiled
// event for every compiled path rule, after bracket-group expansion. It
// never influences what gets compiled.
func WithDiagnostics(handler dispatch.DiagnosticHandler) Option {
	return func(c *config) { c.diagnostics = handler }
}

// Compile builds a *dispatch.Table from authored host rules, in order.
// Compile is pure and deterministic: the same hosts always produce a
// Table with the same host and path rule order and the same interned
// binding names.
func Compile(hosts []Host, opts ...Option) (*dispatch.Table, error) {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	start := time.Now()
	table, ruleCount, err := compile(hosts, cfg)
	if cfg.metrics != nil {
		cfg.metrics.record(context.Background(), time.Since(start).Seconds(), ruleCount)
	}
	return table, err
}

func compile(hosts []Host, cfg *config) (*dispatch.Table, int, error) {
	in := newInterner()
	var compiled []dispatch.HostRule
	ruleCount := 0

	for _, h := range hosts {
		paths, err := compilePaths(h.Paths, in, cfg)
		if err != nil {
			return nil, 0, err
		}

		if h.Any {
			if len(h.Constraints) > 0 {
				return nil, 0, &CompileError{Class: ErrConstraintsOnWildcard, Pattern: "_", Detail: "wildcard host pattern cannot carry constraints"}
			}
			compiled = append(compiled, dispatch.HostRule{Pattern: dispatch.AnyPattern, Paths: paths})
			ruleCount += len(paths)
			continue
		}

		items, err := parseItems(h.Pattern, h.Pattern, '.')
		if err != nil {
			return nil, 0, err
		}
		variants := dedupVariants(expand(items))

		for _, v := range variants {
			pat, err := buildPattern(h.Pattern, v, true, in)
			if err != nil {
				return nil, 0, err
			}
			compiled = append(compiled, dispatch.HostRule{
				Pattern:     pat,
				Constraints: h.Constraints,
				Paths:       paths,
			})
			ruleCount += len(paths)
		}
	}

	return dispatch.NewTable(compiled, in.names), ruleCount, nil
}

// MustCompile is Compile, panicking on error. It is meant for program
// startup, where a malformed route table should fail fast and loud.
func MustCompile(hosts []Host, opts ...Option) *dispatch.Table {
	table, err := Compile(hosts, opts...)
	if err != nil {
		panic(err)
	}
	return table
}

func compilePaths(paths []Path, in *interner, cfg *config) ([]dispatch.PathRule, error) {
	var out []dispatch.PathRule

	for _, p := range paths {
		if p.Any {
			if len(p.Constraints) > 0 {
				return nil, &CompileError{Class: ErrConstraintsOnWildcard, Pattern: "_", Detail: "wildcard path pattern cannot carry constraints"}
			}
			out = append(out, dispatch.PathRule{Pattern: dispatch.AnyPattern, Handler: p.Handler, Opts: p.Opts})
			emitCompiled(cfg, "_", nil)
			continue
		}

		if p.Pattern == "*" {
			if len(p.Constraints) > 0 {
				return nil, &CompileError{Class: ErrConstraintsOnWildcard, Pattern: "*", Detail: "asterisk path pattern cannot carry constraints"}
			}
			out = append(out, dispatch.PathRule{Asterisk: true, Handler: p.Handler, Opts: p.Opts})
			emitCompiled(cfg, "*", nil)
			continue
		}

		if !strings.HasPrefix(p.Pattern, "/") {
			return nil, &CompileError{Class: ErrPathMissingSlash, Pattern: p.Pattern, Detail: "path pattern must begin with '/'"}
		}

		items, err := parseItems(p.Pattern, p.Pattern[1:], '/')
		if err != nil {
			return nil, err
		}
		variants := dedupVariants(expand(items))

		for _, v := range variants {
			pat, err := buildPattern(p.Pattern, v, false, in)
			if err != nil {
				return nil, err
			}
			out = append(out, dispatch.PathRule{
				Pattern:     pat,
				Constraints: p.Constraints,
				Handler:     p.Handler,
				Opts:        p.Opts,
			})
			emitCompiled(cfg, p.Pattern, pat.Segments)
		}
	}

	return out, nil
}

func emitCompiled(cfg *config, pattern string, segments []dispatch.Segment) {
	if cfg == nil || cfg.diagnostics == nil {
		return
	}
	cfg.diagnostics.OnDiagnostic(dispatch.DiagnosticEvent{
		Kind:    dispatch.DiagRouteCompiled,
		Message: fmt.Sprintf("compiled pattern %q (%d segments)", pattern, len(segments)),
		Fields: map[string]any{
			"pattern":  pattern,
			"segments": len(segments),
		},
	})
}

// buildPattern converts one expanded, group-free token list into a
// dispatch.Pattern. For host patterns it reverses the segment order after
// conversion, matching the reversed token list SplitHost produces, then
// validates that any Rest segment is terminal.
func buildPattern(pattern string, variant []item, isHost bool, in *interner) (dispatch.Pattern, error) {
	segs := make([]dispatch.Segment, len(variant))
	for i, it := range variant {
		segs[i] = toSegment(it, in)
	}
	if isHost {
		reverseSegments(segs)
	}
	for i, s := range segs {
		if s.Kind == dispatch.Rest && i != len(segs)-1 {
			return dispatch.Pattern{}, &CompileError{Class: ErrRestNotTerminal, Pattern: pattern, Detail: "Rest segment is not terminal"}
		}
	}
	return dispatch.Pattern{Segments: segs}, nil
}

func toSegment(it item, in *interner) dispatch.Segment {
	switch it.kind {
	case itemRest:
		return dispatch.Segment{Kind: dispatch.Rest}
	case itemBind:
		if it.text == "_" {
			return dispatch.Segment{Kind: dispatch.AnyOne}
		}
		return dispatch.Segment{Kind: dispatch.Bind, Name: it.text, NameID: in.id(it.text)}
	default: // itemLiteral
		return dispatch.Segment{Kind: dispatch.Literal, Value: it.text}
	}
}

func reverseSegments(s []dispatch.Segment) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// interner assigns small, stable integer tags to binding names, shared
// across every pattern compiled by one Compile call.
type interner struct {
	ids   map[string]int32
	names []string
}

func newInterner() *interner {
	return &interner{ids: make(map[string]int32)}
}

func (in *interner) id(name string) int32 {
	if id, ok := in.ids[name]; ok {
		return id
	}
	id := int32(len(in.names))
	in.names = append(in.names, name)
	in.ids[name] = id
	return id
}
