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

// Package compiler turns authored host/path text into a *dispatch.Table.
//
// # Textual pattern grammar
//
// A host or path pattern is a sequence of segments separated by '.' (host)
// or '/' (path):
//
//   - a bare run of bytes is a Literal segment, matched exactly
//   - ":name" is a Bind segment; ":_" discards the capture (dispatch.AnyOne)
//   - "[...]" (literal, five bytes) is the Rest segment: zero or more
//     trailing tokens. In host text it is written first, since the
//     compiler reverses host segments after parsing so that a leading
//     "[...]" ends up trailing the reversed pattern, matching a subdomain
//     prefix. In path text it is written last, where it already is.
//   - "[" opens an optional group, recursively parsed with the same
//     grammar up to its matching "]"; a pattern containing k groups
//     expands to up to 2^k concrete patterns, the variant omitting a group
//     always ordered before the variant including it.
//
// Two consecutive separators collapse at the very front of a pattern
// (an accidental leading "."  or "/" is silently absorbed) but are
// preserved as an empty Literal segment anywhere else, mirroring the
// runtime tokenizer's treatment of empty interior path segments.
//
// # Compiling
//
//	table, err := compiler.Compile([]compiler.Host{
//	    {
//	        Pattern: "ninenines.eu",
//	        Paths: []compiler.Path{
//	            {Pattern: "/", Handler: indexHandler},
//	            {Pattern: "/users/:id", Handler: getUser},
//	        },
//	    },
//	})
//
// Compile never succeeds partially: a malformed pattern anywhere in the
// input aborts the whole call with a *CompileError identifying the
// offending construct. Use MustCompile at program startup when a bad
// route table should fail fast.
package compiler
