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

// SegmentKind identifies the shape of a single compiled Segment pattern.
type SegmentKind uint8

const (
	// Literal matches an exact byte string.
	Literal SegmentKind = iota
	// AnyOne matches any single segment without recording a binding.
	AnyOne
	// Bind matches any single segment and records name -> segment.
	Bind
	// Rest matches zero or more trailing segments and terminates the
	// match. It may only appear as the final Segment of a Pattern.
	Rest
)

// Segment is one element of a compiled Pattern. Which fields are
// meaningful depends on Kind:
//
//	Literal: Value
//	AnyOne:  (none)
//	Bind:    Name, NameID
//	Rest:    (none)
type Segment struct {
	Kind SegmentKind

	// Value holds the exact bytes to match for a Literal segment.
	Value string

	// Name holds the binding name for a Bind segment, as written in the
	// authored route. NameID is a small interned tag for the same name,
	// precomputed by the compiler as an index into Table.Names(). The
	// matcher's duplicate-binding consistency check compares Name, not
	// NameID.
	Name   string
	NameID int32
}

// Pattern is either the wildcard AnyPattern (matches everything and is
// incompatible with constraints) or a finite ordered sequence of Segments
// with at most one Rest, which if present is terminal.
type Pattern struct {
	Any      bool
	Segments []Segment
}

// AnyPattern is the wildcard pattern that matches any token list.
var AnyPattern = Pattern{Any: true}

// ConstraintKind selects how a Constraint's predicate is evaluated.
type ConstraintKind uint8

const (
	// ConstraintInteger requires the bound value to parse as a signed
	// decimal integer; on success the stored binding value is replaced by
	// the parsed integer.
	ConstraintInteger ConstraintKind = iota
	// ConstraintFunction delegates to an opaque ConstraintFunc predicate.
	ConstraintFunction
)

// Outcome is the result a ConstraintFunc returns for one binding value.
type Outcome uint8

const (
	// Reject fails the rule; the matcher continues with the next
	// candidate rule.
	Reject Outcome = iota
	// Accept keeps the binding value unchanged.
	Accept
	// AcceptWith keeps the rule but replaces the binding value.
	AcceptWith
)

// ConstraintFunc is a per-binding predicate. It inspects value (the bytes
// most recently captured for the binding, or the integer produced by an
// earlier Integer constraint on the same name) and returns an Outcome plus
// a replacement value, which is only consulted when the Outcome is
// AcceptWith.
//
// Implementations must be synchronous and side-effect free: the matcher
// invokes them on the calling goroutine for every candidate rule, and a
// slow or blocking predicate directly adds to request latency.
type ConstraintFunc func(value any) (Outcome, any)

// Constraint pairs a binding name with a predicate. A Constraint naming a
// binding absent from the match is ignored (vacuously satisfied), not an
// error.
type Constraint struct {
	Name string
	Kind ConstraintKind
	Func ConstraintFunc
}

// PathRule is one compiled path pattern under a HostRule: a pattern, its
// constraints (evaluated in declared order), and the handler it dispatches
// to on a successful match.
type PathRule struct {
	Pattern     Pattern
	Constraints []Constraint
	Handler     any
	Opts        any

	// Asterisk marks the special path pattern "*", which matches only the
	// literal request-target "*" used by HTTP OPTIONS and ignores
	// constraints.
	Asterisk bool
}

// HostRule is one compiled host pattern: the host Pattern matched against
// reversed host tokens, its constraints, and the ordered path rules that
// apply once the host matches.
type HostRule struct {
	Pattern     Pattern
	Constraints []Constraint
	Paths       []PathRule
}

// Table is the compiled, immutable dispatch table produced by
// dispatch/compiler.Compile. It is read concurrently without
// synchronization: construct it once at startup and never mutate it.
type Table struct {
	Hosts []HostRule

	// names is the interned binding-name table; Segment.NameID indexes
	// into it. Populated by the compiler and returned by Names; the matcher
	// does not consult it.
	names []string
}

// NewTable assembles a Table from already-compiled host rules and the
// interned binding-name table that produced their Segment.NameID values.
// dispatch/compiler calls this to build the Table that Compile returns, and
// the package's own tests call it to build tables by hand; a Table is
// read-only once built.
func NewTable(hosts []HostRule, names []string) *Table {
	return &Table{Hosts: hosts, names: names}
}

// Names returns the interned binding-name table backing Segment.NameID,
// in assignment order (NameID i corresponds to Names()[i]).
func (t *Table) Names() []string { return t.names }

// Binding is one captured name/value pair. Value is a string unless a
// ConstraintInteger (or a ConstraintFunction returning AcceptWith) has
// replaced it, in which case it may be any type the constraint produced.
type Binding struct {
	Name  string
	Value any
}

// Match is the successful result of Execute: the handler and opaque
// per-route options to dispatch to, the bindings captured along the way,
// and the token lists absorbed by a trailing Rest segment in the host
// and/or path pattern, if any matched.
type Match struct {
	Handler  any
	Opts     any
	Bindings []Binding

	// HostRest holds the subdomain labels absorbed by a Rest host
	// segment, in authored left-to-right reading order. Nil if the
	// matched host pattern had no Rest segment.
	HostRest []string

	// PathRest holds the trailing path segments absorbed by a Rest path
	// segment. Nil if the matched path pattern had no Rest segment.
	PathRest []string
}
