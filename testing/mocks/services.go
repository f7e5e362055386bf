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

package mocks

import (
	"context"
	"testing"

	"github.com/optakt/ledger-history/models/history"
)

type Resolver struct {
	BlockFunc func(ctx context.Context, height history.Height) (*history.Block, error)
}

func BaselineResolver(t *testing.T) *Resolver {
	t.Helper()

	r := Resolver{
		BlockFunc: func(context.Context, history.Height) (*history.Block, error) {
			return GenericBlock, nil
		},
	}

	return &r
}

func (r *Resolver) Block(ctx context.Context, height history.Height) (*history.Block, error) {
	return r.BlockFunc(ctx, height)
}

type Tracker struct {
	TipFunc func(ctx context.Context) (*history.TipOfChain, error)
}

func BaselineTracker(t *testing.T) *Tracker {
	t.Helper()

	tr := Tracker{
		TipFunc: func(context.Context) (*history.TipOfChain, error) {
			tip := history.TipOfChain{
				Certification: GenericCertification,
				TipIndex:      GenericHeight,
			}
			return &tip, nil
		},
	}

	return &tr
}

func (tr *Tracker) Tip(ctx context.Context) (*history.TipOfChain, error) {
	return tr.TipFunc(ctx)
}

type Wallet struct {
	ReceiveFunc func(call history.Call) history.Amount
	BalanceFunc func() history.Amount
}

func BaselineWallet(t *testing.T) *Wallet {
	t.Helper()

	w := Wallet{
		ReceiveFunc: func(call history.Call) history.Amount {
			return call.Offered
		},
		BalanceFunc: func() history.Amount {
			return GenericHeight
		},
	}

	return &w
}

func (w *Wallet) Receive(call history.Call) history.Amount {
	return w.ReceiveFunc(call)
}

func (w *Wallet) Balance() history.Amount {
	return w.BalanceFunc()
}
