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

package wallet

import (
	"math"

	"go.uber.org/atomic"

	"github.com/optakt/ledger-history/models/history"
)

// Reserve is the resource balance held by the process. It is owned by the
// host and shared by reference with every component that needs to read or
// credit it.
type Reserve struct {
	held *atomic.Uint64
}

// NewReserve returns a reserve holding the given initial balance.
func NewReserve(initial history.Amount) *Reserve {
	r := Reserve{
		held: atomic.NewUint64(initial),
	}
	return &r
}

// Available returns the amount the caller offered with the current call.
func (r *Reserve) Available(call history.Call) history.Amount {
	return call.Offered
}

// Accept moves up to amount units of what the caller offered into the held
// balance and returns how much was accepted. The held balance saturates at
// the largest representable amount; whatever does not fit is not accepted.
func (r *Reserve) Accept(call history.Call, amount history.Amount) history.Amount {
	if amount > call.Offered {
		amount = call.Offered
	}
	for {
		held := r.held.Load()
		accepted := amount
		if accepted > math.MaxUint64-held {
			accepted = math.MaxUint64 - held
		}
		if r.held.CAS(held, held+accepted) {
			return accepted
		}
	}
}

// Balance returns the currently held balance.
func (r *Reserve) Balance() history.Amount {
	return r.held.Load()
}
