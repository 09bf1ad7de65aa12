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

func TestSplitHostEmptyProducesEmptyList(t *testing.T) {
	t.Parallel()

	tokens, ok := SplitHost("")
	require.True(t, ok)
	assert.Empty(t, tokens)
}

func TestSplitHostReversesLabels(t *testing.T) {
	t.Parallel()

	tokens, ok := SplitHost("a.b.c")
	require.True(t, ok)
	assert.Equal(t, []string{"c", "b", "a"}, tokens)
}

func TestSplitHostFourLabels(t *testing.T) {
	t.Parallel()

	tokens, ok := SplitHost("a.b.c.d")
	require.True(t, ok)
	assert.Equal(t, []string{"d", "c", "b", "a"}, tokens)
}

func TestSplitHostRejectsEmptyInteriorLabel(t *testing.T) {
	t.Parallel()

	_, ok := SplitHost("a..b")
	assert.False(t, ok)
}

func TestSplitPathRequiresLeadingSlash(t *testing.T) {
	t.Parallel()

	_, ok := SplitPath("users/42")
	assert.False(t, ok)
}

func TestSplitPathRoot(t *testing.T) {
	t.Parallel()

	tokens, ok := SplitPath("/")
	require.True(t, ok)
	assert.Empty(t, tokens)
}

func TestSplitPathPreservesEmptyInteriorSegment(t *testing.T) {
	t.Parallel()

	tokens, ok := SplitPath("/a//b")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "", "b"}, tokens)
}

func TestSplitPathTrailingSlashTolerated(t *testing.T) {
	t.Parallel()

	tokens, ok := SplitPath("/path/to/resource/")
	require.True(t, ok)
	assert.Equal(t, []string{"path", "to", "resource"}, tokens)
}

func TestSplitPathPercentDecodesSegments(t *testing.T) {
	t.Parallel()

	tokens, ok := SplitPath("/a%21b/c+d")
	require.True(t, ok)
	assert.Equal(t, []string{"a!b", "c d"}, tokens)
}

func TestSplitPathRejectsInvalidPercentEscape(t *testing.T) {
	t.Parallel()

	_, ok := SplitPath("/a%2gz")
	assert.False(t, ok)
}

func TestSplitPathRejectsTruncatedPercentEscape(t *testing.T) {
	t.Parallel()

	_, ok := SplitPath("/a%2")
	assert.False(t, ok)
}
