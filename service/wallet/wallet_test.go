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

package wallet_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/wallet"
	"github.com/optakt/ledger-history/testing/mocks"
)

func TestWallet_Receive(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		reserve := wallet.NewReserve(500)
		w := wallet.New(mocks.NoopLogger, reserve)

		accepted := w.Receive(history.Call{Caller: "alice", Offered: 1000})

		assert.Equal(t, uint64(1000), accepted)
		assert.Equal(t, uint64(1500), w.Balance())
		assert.Equal(t, uint64(1500), reserve.Balance())
	})

	t.Run("nothing offered", func(t *testing.T) {
		t.Parallel()

		w := wallet.New(mocks.NoopLogger, wallet.NewReserve(500))

		accepted := w.Receive(history.Call{Caller: "alice"})

		assert.Zero(t, accepted)
		assert.Equal(t, uint64(500), w.Balance())
	})

	t.Run("saturates held balance", func(t *testing.T) {
		t.Parallel()

		w := wallet.New(mocks.NoopLogger, wallet.NewReserve(math.MaxUint64-10))

		accepted := w.Receive(history.Call{Caller: "alice", Offered: 1000})

		assert.Equal(t, uint64(10), accepted)
		assert.Equal(t, uint64(math.MaxUint64), w.Balance())
	})

	t.Run("concurrent donations", func(t *testing.T) {
		t.Parallel()

		w := wallet.New(mocks.NoopLogger, wallet.NewReserve(0))

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.Receive(history.Call{Caller: "bob", Offered: 10})
			}()
		}
		wg.Wait()

		assert.Equal(t, uint64(1000), w.Balance())
	})
}

func TestWallet_Balance(t *testing.T) {
	reserve := wallet.NewReserve(mocks.GenericHeight)
	w := wallet.New(mocks.NoopLogger, reserve)

	assert.Equal(t, mocks.GenericHeight, w.Balance())
	assert.Equal(t, mocks.GenericHeight, w.Balance())
}

func TestReserve_Accept(t *testing.T) {
	reserve := wallet.NewReserve(0)
	call := history.Call{Caller: "carol", Offered: 100}

	accepted := reserve.Accept(call, 250)

	assert.Equal(t, uint64(100), accepted)
	assert.Equal(t, uint64(100), reserve.Available(call))
	assert.Equal(t, uint64(100), reserve.Balance())
}
