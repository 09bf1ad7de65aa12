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

// Package bench holds comparison benchmarks between dispatch and
// general-purpose Go HTTP routers. It is isolated in its own module (its own
// go.mod) so gin and echo never pollute the dependency graph of the core
// dispatch/dispatch-compiler packages.
//
// Run with:
//
//	cd bench && go test -bench=.
package bench

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/labstack/echo/v4"

	"hostway.dev/dispatch"
	"hostway.dev/dispatch/compiler"
)

type bindingsKey struct{}

// setupDispatch returns an http.Handler wrapping a compiled dispatch.Table
// with the same routes every other framework registers. Unlike the others,
// dispatch.Execute never writes a response itself — the adaptor here is the
// thinnest possible bridge so the benchmark isolates table lookup cost
// rather than response-writing cost.
func setupDispatch() http.Handler {
	table := compiler.MustCompile([]compiler.Host{
		{
			Any: true,
			Paths: []compiler.Path{
				{Pattern: "/", Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					io.WriteString(w, "Hello") //nolint:errcheck // ignored in benchmark
				})},
				{Pattern: "/users/:id", Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					bindings := r.Context().Value(bindingsKey{}).([]dispatch.Binding)
					io.WriteString(w, "User: ")                            //nolint:errcheck // ignored in benchmark
					io.WriteString(w, bindings[0].Value.(string))          //nolint:errcheck // ignored in benchmark
				})},
			},
		},
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, err := dispatch.Execute(table, dispatch.Request{Host: r.Host, Path: r.URL.Path})
		if err != nil {
			w.WriteHeader(dispatch.HTTPStatus(err))
			return
		}
		h := m.Handler.(http.HandlerFunc)
		if len(m.Bindings) > 0 {
			r = r.WithContext(context.WithValue(r.Context(), bindingsKey{}, m.Bindings))
		}
		h(w, r)
	})
}

// setupStdMux returns an http.Handler for net/http's own pattern-based mux.
func setupStdMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "Hello") //nolint:errcheck // ignored in benchmark
	})
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "User: ")          //nolint:errcheck // ignored in benchmark
		io.WriteString(w, r.PathValue("id")) //nolint:errcheck // ignored in benchmark
	})
	return mux
}

// setupGin returns an http.Handler for Gin in ReleaseMode.
func setupGin() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		io.WriteString(c.Writer, "Hello") //nolint:errcheck // ignored in benchmark
	})
	r.GET("/users/:id", func(c *gin.Context) {
		io.WriteString(c.Writer, "User: ")      //nolint:errcheck // ignored in benchmark
		io.WriteString(c.Writer, c.Param("id")) //nolint:errcheck // ignored in benchmark
	})
	return r
}

// setupEcho returns an http.Handler for Echo.
func setupEcho() http.Handler {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		io.WriteString(c.Response(), "Hello") //nolint:errcheck // ignored in benchmark
		return nil
	})
	e.GET("/users/:id", func(c echo.Context) error {
		io.WriteString(c.Response(), "User: ")      //nolint:errcheck // ignored in benchmark
		io.WriteString(c.Response(), c.Param("id")) //nolint:errcheck // ignored in benchmark
		return nil
	})
	return e
}

// runBench runs the benchmark loop: reset recorder, call ServeHTTP. Shared
// by every framework benchmark, mirroring the teacher's own bench harness.
func runBench(b *testing.B, h http.Handler, w *httptest.ResponseRecorder, req *http.Request) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Body.Reset()
		w.Code = 0
		h.ServeHTTP(w, req)
	}
}

func BenchmarkStatic(b *testing.B) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	b.Run("Dispatch", func(b *testing.B) { runBench(b, setupDispatch(), w, req) })
	b.Run("StdMux", func(b *testing.B) { runBench(b, setupStdMux(), w, req) })
	b.Run("Gin", func(b *testing.B) { runBench(b, setupGin(), w, req) })
	b.Run("Echo", func(b *testing.B) { runBench(b, setupEcho(), w, req) })
}

func BenchmarkOneParam(b *testing.B) {
	req := httptest.NewRequest(http.MethodGet, "/users/123", nil)
	w := httptest.NewRecorder()

	b.Run("Dispatch", func(b *testing.B) { runBench(b, setupDispatch(), w, req) })
	b.Run("StdMux", func(b *testing.B) { runBench(b, setupStdMux(), w, req) })
	b.Run("Gin", func(b *testing.B) { runBench(b, setupGin(), w, req) })
	b.Run("Echo", func(b *testing.B) { runBench(b, setupEcho(), w, req) })
}
