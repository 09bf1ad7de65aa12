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
	"regexp"
	"strconv"
)

// checkConstraints evaluates constraints against bindings in declared
// order, mutating binding values in place on success. It returns false on
// the first constraint that rejects, at which point bindings may have been
// partially mutated; the caller must discard them and try the next
// candidate rule rather than reuse the slice. obs, if non-nil, is notified
// of every rejection for optional metrics; it never influences the result.
func checkConstraints(bindings []Binding, constraints []Constraint, obs observer) bool {
	for _, c := range constraints {
		idx := indexBinding(bindings, c.Name)
		if idx < 0 {
			// Constraint names a binding absent from the match: vacuously
			// satisfied, not an error.
			continue
		}

		switch c.Kind {
		case ConstraintInteger:
			s, isStr := bindings[idx].Value.(string)
			if !isStr {
				notifyReject(obs)
				return false
			}
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				notifyReject(obs)
				return false
			}
			bindings[idx].Value = n

		case ConstraintFunction:
			outcome, newValue := c.Func(bindings[idx].Value)
			switch outcome {
			case Reject:
				notifyReject(obs)
				return false
			case AcceptWith:
				bindings[idx].Value = newValue
			case Accept:
				// value unchanged
			}
		}
	}
	return true
}

func notifyReject(obs observer) {
	if obs != nil {
		obs.onConstraintReject()
	}
}

func indexBinding(bindings []Binding, name string) int {
	for i, b := range bindings {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Regex returns a ConstraintFunc that accepts a binding only when its
// string value fully matches pattern. Values that are not strings (e.g.
// already converted by an earlier constraint) are rejected. Panics if
// pattern does not compile, mirroring the teacher's fail-fast posture for
// startup-time configuration errors.
func Regex(pattern string) ConstraintFunc {
	re := regexp.MustCompile("^(?:" + pattern + ")$")
	return func(value any) (Outcome, any) {
		s, ok := value.(string)
		if !ok || !re.MatchString(s) {
			return Reject, nil
		}
		return Accept, nil
	}
}

// Enum returns a ConstraintFunc that accepts a binding only when its
// string value is byte-equal to one of values.
func Enum(values ...string) ConstraintFunc {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(value any) (Outcome, any) {
		s, ok := value.(string)
		if !ok {
			return Reject, nil
		}
		if _, found := set[s]; !found {
			return Reject, nil
		}
		return Accept, nil
	}
}
