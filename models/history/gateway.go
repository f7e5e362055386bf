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
)

// Method names of the ledger contracts.
const (
	MethodBlock        = "block_pb"
	MethodArchiveBlock = "get_block_pb"
	MethodTipOfChain   = "tip_of_chain_pb"
)

// Gateway represents something that performs typed round trips to remote
// ledger endpoints. Errors returned by a gateway are always transport errors;
// a missing block is reported as an empty Lookup.
type Gateway interface {
	Block(ctx context.Context, endpoint Endpoint, method string, height Height) (Lookup, error)
	Tip(ctx context.Context, endpoint Endpoint, method string) (*TipOfChain, error)
}
