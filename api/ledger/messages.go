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

package ledger

// BlockArg is the request of a block lookup on a ledger or archive endpoint.
type BlockArg struct {
	Height uint64 `cbor:"1,keyasint"`
}

// BlockRes is the response of a block lookup. When the block exists, exactly
// one of the two fields is set; when it does not, both are empty.
type BlockRes struct {
	Block    []byte `cbor:"1,keyasint,omitempty"`
	Redirect string `cbor:"2,keyasint,omitempty"`
}

// TipOfChainRequest is the empty request of a tip query.
type TipOfChainRequest struct{}

// TipOfChainRes is the response of a tip query.
type TipOfChainRes struct {
	Certification []byte `cbor:"1,keyasint,omitempty"`
	TipIndex      uint64 `cbor:"2,keyasint"`
}
