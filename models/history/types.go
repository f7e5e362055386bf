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
	"time"
)

// Height identifies the position of a block in the ledger.
type Height = uint64

// Amount is a quantity of the resource backing execution, such as cycles.
type Amount = uint64

// Endpoint is the address of a remote ledger or archive endpoint.
type Endpoint string

// EncodedBlock is the binary transport encoding of a single block.
type EncodedBlock []byte

// Operation is the ledger operation carried by a transaction. It is passed
// through untouched by the proxy.
type Operation struct {
	Kind   string `cbor:"1,keyasint" json:"kind"`
	From   []byte `cbor:"2,keyasint,omitempty" json:"from,omitempty"`
	To     []byte `cbor:"3,keyasint,omitempty" json:"to,omitempty"`
	Amount uint64 `cbor:"4,keyasint" json:"amount"`
	Fee    uint64 `cbor:"5,keyasint" json:"fee"`
}

// Transaction is the single transaction recorded in a block.
type Transaction struct {
	Operation Operation `cbor:"1,keyasint" json:"operation"`
	Memo      uint64    `cbor:"2,keyasint" json:"memo"`
	CreatedAt time.Time `cbor:"3,keyasint" json:"created_at"`
}

// Block is the decoded content of a ledger block.
type Block struct {
	ParentHash  []byte      `cbor:"1,keyasint,omitempty" json:"parent_hash,omitempty"`
	Transaction Transaction `cbor:"2,keyasint" json:"transaction"`
	Timestamp   time.Time   `cbor:"3,keyasint" json:"timestamp"`
}

// TipOfChain is the latest height committed by the primary ledger, together
// with an optional certification that callers can verify on their own.
type TipOfChain struct {
	Certification []byte `json:"certification,omitempty"`
	TipIndex      Height `json:"tip_index"`
}

// Lookup is the classified response of a single block lookup. Exactly one of
// the fields is set when the block exists; both are empty when it does not.
type Lookup struct {
	Block    EncodedBlock
	Redirect Endpoint
}

// Found returns whether the lookup yielded either a block or a redirect.
func (l Lookup) Found() bool {
	return len(l.Block) > 0 || l.Redirect != ""
}

// Call is the context of a single invocation of the proxy, as seen by the
// host that executes it.
type Call struct {
	Caller  string
	Offered Amount
}
