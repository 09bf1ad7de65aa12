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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConstraintsIgnoresMissingBinding(t *testing.T) {
	t.Parallel()

	bindings := []Binding{{Name: "id", Value: "42"}}
	ok := checkConstraints(bindings, []Constraint{{Name: "missing", Kind: ConstraintInteger}}, nil)
	require.True(t, ok)
	assert.Equal(t, "42", bindings[0].Value)
}

func TestCheckConstraintsIntegerReplacesValue(t *testing.T) {
	t.Parallel()

	bindings := []Binding{{Name: "id", Value: "123"}}
	ok := checkConstraints(bindings, []Constraint{{Name: "id", Kind: ConstraintInteger}}, nil)
	require.True(t, ok)
	assert.Equal(t, int64(123), bindings[0].Value)
}

func TestCheckConstraintsIntegerRejectsNonNumeric(t *testing.T) {
	t.Parallel()

	bindings := []Binding{{Name: "value", Value: "NaN"}}
	ok := checkConstraints(bindings, []Constraint{{Name: "value", Kind: ConstraintInteger}}, nil)
	assert.False(t, ok)
}

func TestCheckConstraintsFunctionAcceptWithReplaces(t *testing.T) {
	t.Parallel()

	upper := ConstraintFunc(func(v any) (Outcome, any) {
		return AcceptWith, v.(string) + "!"
	})
	bindings := []Binding{{Name: "name", Value: "bob"}}
	ok := checkConstraints(bindings, []Constraint{{Name: "name", Kind: ConstraintFunction, Func: upper}}, nil)
	require.True(t, ok)
	assert.Equal(t, "bob!", bindings[0].Value)
}

func TestCheckConstraintsFunctionReject(t *testing.T) {
	t.Parallel()

	alwaysReject := ConstraintFunc(func(any) (Outcome, any) { return Reject, nil })
	bindings := []Binding{{Name: "name", Value: "bob"}}
	ok := checkConstraints(bindings, []Constraint{{Name: "name", Kind: ConstraintFunction, Func: alwaysReject}}, nil)
	assert.False(t, ok)
}

type countingObserver struct{ rejects int }

func (o *countingObserver) onConstraintReject()     { o.rejects++ }
func (o *countingObserver) onHighBindingCount(int) {}

func TestCheckConstraintsNotifiesObserverOnReject(t *testing.T) {
	t.Parallel()

	obs := &countingObserver{}
	bindings := []Binding{{Name: "value", Value: "NaN"}}
	ok := checkConstraints(bindings, []Constraint{{Name: "value", Kind: ConstraintInteger}}, obs)
	assert.False(t, ok)
	assert.Equal(t, 1, obs.rejects)
}

func TestRegexConstraint(t *testing.T) {
	t.Parallel()

	digits := Regex(`[0-9]+`)

	outcome, _ := digits("42")
	assert.Equal(t, Accept, outcome)

	outcome, _ = digits("abc")
	assert.Equal(t, Reject, outcome)
}

func TestEnumConstraint(t *testing.T) {
	t.Parallel()

	colors := Enum("red", "green", "blue")

	outcome, _ := colors("green")
	assert.Equal(t, Accept, outcome)

	outcome, _ = colors("purple")
	assert.Equal(t, Reject, outcome)
}
