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

import "hostway.dev/dispatch"

// Host is one authored host rule: either the wildcard (Any) or a textual
// Pattern, its constraints, and the path rules that apply once it matches.
type Host struct {
	// Any marks the wildcard host pattern (dispatch.AnyPattern). Pattern
	// is ignored when Any is set, and Constraints must be empty.
	Any bool

	// Pattern is host text such as "ninenines.eu" or "[...].ninenines.eu"
	// for a subdomain-wildcard prefix.
	Pattern string

	Constraints []dispatch.Constraint
	Paths       []Path
}

// Path is one authored path rule under a Host: either the wildcard (Any),
// the literal asterisk-form request-target "*", or textual Pattern.
type Path struct {
	// Any marks the wildcard path pattern (dispatch.AnyPattern). Pattern
	// is ignored when Any is set, and Constraints must be empty.
	Any bool

	// Pattern is path text such as "/users/:id" or the literal "*". Any
	// non-wildcard, non-"*" pattern must begin with "/".
	Pattern string

	Constraints []dispatch.Constraint
	Handler     any
	Opts        any
}

// ErrorClass identifies which grammar rule a CompileError violates.
type ErrorClass string

const (
	// ErrMalformedBinding marks an empty ":name" binding.
	ErrMalformedBinding ErrorClass = "malformed_binding"
	// ErrUnbalancedBracket marks an unmatched "[" or stray "]".
	ErrUnbalancedBracket ErrorClass = "unbalanced_bracket"
	// ErrMisplacedBracket marks a "[" that does not open at a segment
	// boundary.
	ErrMisplacedBracket ErrorClass = "misplaced_bracket"
	// ErrPathMissingSlash marks a non-wildcard, non-"*" path pattern that
	// does not begin with "/".
	ErrPathMissingSlash ErrorClass = "path_missing_slash"
	// ErrConstraintsOnWildcard marks constraints attached to a wildcard
	// (Any) host or path rule.
	ErrConstraintsOnWildcard ErrorClass = "constraints_on_wildcard"
	// ErrRestNotTerminal marks a Rest segment that does not end up last
	// in the compiled pattern.
	ErrRestNotTerminal ErrorClass = "rest_not_terminal"
)

// CompileError reports a single malformed construct. Pattern is the
// original authored text the offending construct was found in.
type CompileError struct {
	Class   ErrorClass
	Pattern string
	Detail  string
}

func (e *CompileError) Error() string {
	return "dispatch/compiler: " + string(e.Class) + ": " + e.Detail + " (in " + quoted(e.Pattern) + ")"
}

func quoted(s string) string {
	return "\"" + s + "\""
}
