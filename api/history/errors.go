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

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/optakt/ledger-history/models/history"
)

// Code returns the gRPC status code matching the given resolution error.
func Code(err error) codes.Code {
	var transportErr *history.TransportError
	var redirectErr *history.UnresolvedRedirectError
	var decodeErr *history.DecodeError
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, history.ErrNotFound):
		return codes.NotFound
	case errors.As(err, &redirectErr):
		return codes.FailedPrecondition
	case errors.As(err, &decodeErr):
		return codes.DataLoss
	case errors.As(err, &transportErr):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

func statusError(err error) error {
	return status.Error(Code(err), err.Error())
}
