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
	"github.com/rs/zerolog"

	"github.com/optakt/ledger-history/models/history"
)

// Wallet accepts resource donations into the reserve and reports its balance.
type Wallet struct {
	log     zerolog.Logger
	reserve *Reserve
}

// New returns a wallet operating on the given reserve.
func New(log zerolog.Logger, reserve *Reserve) *Wallet {

	w := Wallet{
		log:     log.With().Str("component", "wallet").Logger(),
		reserve: reserve,
	}

	return &w
}

// Receive accepts everything the caller offered with the call, and returns
// the accepted amount.
func (w *Wallet) Receive(call history.Call) history.Amount {
	available := w.reserve.Available(call)
	accepted := w.reserve.Accept(call, available)

	w.log.Info().
		Str("caller", call.Caller).
		Uint64("offered", call.Offered).
		Uint64("accepted", accepted).
		Msg("donation received")

	return accepted
}

// Balance returns the balance currently held in the reserve.
func (w *Wallet) Balance() history.Amount {
	return w.reserve.Balance()
}
