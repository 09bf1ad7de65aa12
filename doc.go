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

// Package dispatch implements the core of an HTTP request router: given a
// host and a path, it selects a handler by walking a precompiled table of
// host/path patterns, extracts named bindings, applies per-route value
// constraints, and reports a precise failure classification.
//
// # Scope
//
// dispatch is deliberately narrow. It never reads or writes net/http
// requests or responses (net/http is imported only for the status-code
// constants HTTPStatus returns), never performs network I/O, and holds no mutable shared state once a Table has
// been built by the sibling dispatch/compiler package. Everything outside
// host/path matching — request/response plumbing, middleware chaining,
// query-string parsing, trailing-slash redirection — is left to the
// caller.
//
// # Constructor pattern
//
//   - compiler.Compile returns (*Table, error) because compilation parses
//     untrusted text and can fail; there is no MustCompile-by-default path
//     since malformed routes are a startup-time programming error the
//     caller should see immediately (use compiler.MustCompile when a panic
//     on bad input is acceptable, e.g. in init()).
//   - Execute reports a routing miss as one of three sentinel error values,
//     ErrHostNotFound, ErrPathNotFound, and ErrPathBadRequest, returned
//     unwrapped and classified for the caller to map to HTTP status codes
//     with HTTPStatus.
//
// # Quick start
//
//	table, err := compiler.Compile([]compiler.Host{
//		{
//			Any: true,
//			Paths: []compiler.Path{
//				{Pattern: "/users/:id", Handler: getUser},
//			},
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	m, err := dispatch.Execute(table, dispatch.Request{Host: "example.com", Path: "/users/42"})
//	if err != nil {
//		http.Error(w, err.Error(), dispatch.HTTPStatus(err))
//		return
//	}
//	m.Handler.(http.HandlerFunc)(w, r)
package dispatch
