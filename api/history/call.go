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
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	"github.com/optakt/ledger-history/models/history"
)

// Metadata keys describing the caller of an invocation.
const (
	KeyCaller  = "x-caller"
	KeyOffered = "x-cycles-offered"
)

type callHeaders struct {
	Caller  string `validate:"required"`
	Offered string `validate:"omitempty,numeric"`
}

// CallFromContext builds the explicit call context of an invocation from the
// incoming gRPC metadata. The caller defaults to the peer address when it is
// not given explicitly, and nothing is offered when no amount is given.
func CallFromContext(ctx context.Context, validate *validator.Validate) (history.Call, error) {

	headers := callHeaders{}
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		headers.Caller = first(md.Get(KeyCaller))
		headers.Offered = first(md.Get(KeyOffered))
	}
	if headers.Caller == "" {
		p, ok := peer.FromContext(ctx)
		if ok && p.Addr != nil {
			headers.Caller = p.Addr.String()
		}
	}

	return ParseCall(headers.Caller, headers.Offered, validate)
}

// ParseCall validates the raw caller and offered amount of an invocation and
// returns its call context.
func ParseCall(caller string, offered string, validate *validator.Validate) (history.Call, error) {

	headers := callHeaders{
		Caller:  caller,
		Offered: offered,
	}
	err := validate.Struct(headers)
	if err != nil {
		return history.Call{}, fmt.Errorf("invalid call context: %w", err)
	}

	call := history.Call{
		Caller: headers.Caller,
	}
	if headers.Offered != "" {
		call.Offered, err = strconv.ParseUint(headers.Offered, 10, 64)
		if err != nil {
			return history.Call{}, fmt.Errorf("invalid offered amount: %w", err)
		}
	}

	return call, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
