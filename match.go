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

// Request describes the host and path to match against a Table. A field is
// either supplied pre-tokenized or as a raw string; Execute tokenizes
// lazily so that a caller holding an already-split host or path (for
// reasons of its own) need not pay for re-splitting it.
//
// PathBad is the typed replacement for the bad-request sentinel the
// original implementation threaded through the path argument: set it when
// the caller already attempted to split the path and failed. Once a host
// rule has matched, Execute then returns ErrPathBadRequest without looking
// at Path/PathTokens at all; a host miss is still ErrHostNotFound.
type Request struct {
	Host          string
	HostTokens    []string
	HasHostTokens bool

	Path          string
	PathTokens    []string
	HasPathTokens bool
	PathBad       bool
}

// observer receives purely informational callbacks during a single Execute
// call. It exists only so that Matcher can attach optional metrics and
// diagnostics without the core matching algorithm importing those packages
// itself; a nil observer costs nothing beyond the nil check. Implementations
// must be synchronous and must not affect the match outcome.
type observer interface {
	onConstraintReject()
	onHighBindingCount(n int)
}

func notifyMatch(obs observer, bindingCount int) {
	if obs != nil {
		obs.onHighBindingCount(bindingCount)
	}
}

// Execute walks table in declared order against req, returning a
// successful Match or one of ErrHostNotFound, ErrPathNotFound,
// ErrPathBadRequest. It performs no I/O, allocates only for tokenizing a
// raw host or path and for Bindings/rest-token slices, and is safe to call
// concurrently from an
// unbounded number of goroutines since table is read-only.
func Execute(table *Table, req Request) (*Match, error) {
	return execute(table, req, nil)
}

func execute(table *Table, req Request, obs observer) (*Match, error) {
	hostTokens, hostOK := req.HostTokens, true
	if !req.HasHostTokens {
		hostTokens, hostOK = SplitHost(req.Host)
	}
	if !hostOK {
		// A malformed host degrades to no match, never a distinguished
		// bad-request classification (see specification §9).
		return nil, ErrHostNotFound
	}

	for i := range table.Hosts {
		rule := &table.Hosts[i]

		var bindings []Binding
		var hostRest []string

		if rule.Pattern.Any {
			// AnyPattern host rules carry no constraints (enforced at
			// compile time); nothing to evaluate.
		} else {
			result, ok := listMatch(hostTokens, rule.Pattern.Segments, nil)
			if !ok {
				continue
			}
			bindings = result.bindings
			if result.hasRest {
				hostRest = reversedCopy(result.rest)
			}
			if !checkConstraints(bindings, rule.Constraints, obs) {
				continue
			}
		}

		// This host rule is selected: its path rules are the only ones
		// consulted, win or lose. A miss here is PathNotFound, not a
		// reason to keep searching for another host rule.
		return matchPaths(rule, req, bindings, hostRest, obs)
	}

	return nil, ErrHostNotFound
}

func matchPaths(rule *HostRule, req Request, hostBindings []Binding, hostRest []string, obs observer) (*Match, error) {
	if req.PathBad {
		return nil, ErrPathBadRequest
	}

	// The asterisk-form request-target "*" is not split: it can only match
	// an Asterisk or AnyPattern rule, and reaching any other rule first
	// classifies it as a bad request.
	asteriskPath := !req.HasPathTokens && req.Path == "*"

	pathTokens, pathOK := req.PathTokens, true
	if !req.HasPathTokens && !asteriskPath {
		pathTokens, pathOK = SplitPath(req.Path)
	}
	if !pathOK {
		return nil, ErrPathBadRequest
	}

	for i := range rule.Paths {
		pr := &rule.Paths[i]

		if pr.Asterisk {
			if asteriskPath {
				notifyMatch(obs, len(hostBindings))
				return &Match{Handler: pr.Handler, Opts: pr.Opts, Bindings: copyBindings(hostBindings), HostRest: hostRest}, nil
			}
			continue
		}

		if pr.Pattern.Any {
			notifyMatch(obs, len(hostBindings))
			return &Match{Handler: pr.Handler, Opts: pr.Opts, Bindings: copyBindings(hostBindings), HostRest: hostRest}, nil
		}

		if asteriskPath {
			return nil, ErrPathBadRequest
		}

		result, ok := listMatch(pathTokens, pr.Pattern.Segments, hostBindings)
		if !ok {
			continue
		}
		if !checkConstraints(result.bindings, pr.Constraints, obs) {
			continue
		}

		var pathRest []string
		if result.hasRest {
			pathRest = make([]string, len(result.rest))
			copy(pathRest, result.rest)
		}

		notifyMatch(obs, len(result.bindings))
		return &Match{
			Handler:  pr.Handler,
			Opts:     pr.Opts,
			Bindings: result.bindings,
			HostRest: hostRest,
			PathRest: pathRest,
		}, nil
	}

	return nil, ErrPathNotFound
}

type listMatchResult struct {
	bindings []Binding
	hasRest  bool
	rest     []string
}

// listMatch walks tokens against pattern segments, seeded with any
// bindings already captured (from a host match, when matching a path).
// Duplicate binding names are permitted only when the newly matched
// segment is byte-equal to the previously captured value.
func listMatch(tokens []string, segments []Segment, seed []Binding) (listMatchResult, bool) {
	bindings := copyBindings(seed)

	i := 0
	for si := 0; si < len(segments); si++ {
		seg := segments[si]

		if seg.Kind == Rest {
			rest := make([]string, len(tokens)-i)
			copy(rest, tokens[i:])
			return listMatchResult{bindings: bindings, hasRest: true, rest: rest}, true
		}

		if i >= len(tokens) {
			return listMatchResult{}, false
		}
		tok := tokens[i]

		switch seg.Kind {
		case AnyOne:
			// matches unconditionally

		case Literal:
			if tok != seg.Value {
				return listMatchResult{}, false
			}

		case Bind:
			if idx := indexBinding(bindings, seg.Name); idx >= 0 {
				existing, isStr := bindings[idx].Value.(string)
				if !isStr || existing != tok {
					return listMatchResult{}, false
				}
			} else {
				bindings = append(bindings, Binding{Name: seg.Name, Value: tok})
			}
		}

		i++
	}

	if i != len(tokens) {
		return listMatchResult{}, false
	}
	return listMatchResult{bindings: bindings}, true
}

func copyBindings(src []Binding) []Binding {
	if len(src) == 0 {
		return nil
	}
	out := make([]Binding, len(src))
	copy(out, src)
	return out
}

func reversedCopy(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
