// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package history

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("block not found")
)

// TransportError is returned when a remote call could not complete.
type TransportError struct {
	Endpoint Endpoint
	Method   string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not call %s on %s: %s", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnresolvedRedirectError is returned when an archive answers a lookup with
// yet another redirect. Archive is the endpoint that was redirected to by the
// primary, Target the endpoint it pointed to in turn.
type UnresolvedRedirectError struct {
	Archive Endpoint
	Target  Endpoint
}

func (e *UnresolvedRedirectError) Error() string {
	return fmt.Sprintf("unresolved redirect from archive %s to %s", e.Archive, e.Target)
}

// DecodeError is returned when a retrieved block payload can not be decoded.
type DecodeError struct {
	Height Height
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode block %d: %s", e.Height, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
