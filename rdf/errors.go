// Copyright 2015-2017 Piprate Limited
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

package rdf

import "fmt"

// ErrorCode identifies the kind of failure a CanonError carries.
type ErrorCode string

const (
	// SyntaxError means an input line did not match the N-Quads grammar.
	SyntaxError ErrorCode = "syntax error"
	// UnsupportedAlgorithm means the caller asked for a canonicalization
	// algorithm other than the one this library implements.
	UnsupportedAlgorithm ErrorCode = "unsupported algorithm"
	// IOError wraps a failure reading input.
	IOError ErrorCode = "io error"
)

// CanonError is the error type surfaced by the nquads and canon packages.
type CanonError struct {
	Code    ErrorCode
	Details interface{}
}

// NewCanonError creates a new CanonError.
func NewCanonError(code ErrorCode, details interface{}) *CanonError {
	return &CanonError{Code: code, Details: details}
}

func (e *CanonError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%v: %v", e.Code, e.Details)
	}
	return string(e.Code)
}
