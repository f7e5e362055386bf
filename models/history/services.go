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

// Resolver represents something that resolves blocks by height.
type Resolver interface {
	Block(ctx context.Context, height Height) (*Block, error)
}

// Tracker represents something that reports the tip of the chain.
type Tracker interface {
	Tip(ctx context.Context) (*TipOfChain, error)
}

// Wallet represents something that accepts resource donations and reports the
// held resource balance.
type Wallet interface {
	Receive(call Call) Amount
	Balance() Amount
}
