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
	"errors"
	"net/http"
)

// Static sentinel errors for the three run-time classifications a match
// attempt can produce (see §7 of the routing specification). Compare with
// errors.Is; all three are returned by value from Execute, never wrapped.
var (
	// ErrHostNotFound means no host rule in the table accepted the request
	// host. A malformed host (e.g. an empty interior label) degrades to
	// this classification rather than a distinct bad-request error.
	ErrHostNotFound = errors.New("dispatch: host not found")

	// ErrPathNotFound means a host rule accepted the host but no path rule
	// under it accepted the request path.
	ErrPathNotFound = errors.New("dispatch: path not found")

	// ErrPathBadRequest means the path lacked a leading '/' or contained
	// an invalid percent-escape, and so could not be tokenized at all.
	ErrPathBadRequest = errors.New("dispatch: path bad request")
)

// HTTPStatus maps a classified error returned by Execute to the HTTP status
// code the specification assigns it. It returns http.StatusOK for a nil
// error. This is a pure mapping helper, not HTTP plumbing: it performs no
// I/O and the caller remains responsible for writing the response.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrHostNotFound), errors.Is(err, ErrPathBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrPathNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
