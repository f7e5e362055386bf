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
	"github.com/optakt/ledger-history/models/history"
)

// BlockRequest asks for the block at a given height.
type BlockRequest struct {
	Height uint64 `cbor:"1,keyasint"`
}

// BlockResponse carries the resolved block along with its height.
type BlockResponse struct {
	Height uint64        `cbor:"1,keyasint"`
	Block  history.Block `cbor:"2,keyasint"`
}

// TipOfChainRequest asks for the tip of the chain.
type TipOfChainRequest struct{}

// TipOfChainResponse carries the tip of the chain exactly as the primary
// reported it.
type TipOfChainResponse struct {
	Certification []byte `cbor:"1,keyasint,omitempty"`
	TipIndex      uint64 `cbor:"2,keyasint"`
}

// WalletReceiveRequest donates cycles; the offered amount and the caller are
// given as call metadata.
type WalletReceiveRequest struct{}

// WalletReceiveResponse carries the amount of cycles accepted.
type WalletReceiveResponse struct {
	Accepted uint64 `cbor:"1,keyasint"`
}

// GetCyclesRequest asks for the cycles held by the service.
type GetCyclesRequest struct{}

// GetCyclesResponse carries the cycles held by the service.
type GetCyclesResponse struct {
	Balance uint64 `cbor:"1,keyasint"`
}

// InterfaceRequest asks for the interface description of the service.
type InterfaceRequest struct{}

// InterfaceResponse carries the interface description text.
type InterfaceResponse struct {
	Text string `cbor:"1,keyasint"`
}
