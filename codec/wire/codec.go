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

// Package wire provides the gRPC codec used on every connection of the ledger
// history proxy. Messages are plain Go structs encoded as canonical CBOR, so no
// protobuf code generation is required.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"google.golang.org/grpc/encoding"
)

// Name is the name under which the codec is registered with gRPC, and the
// content-subtype used on the wire.
const Name = "cbor"

// Codec implements the gRPC `encoding.Codec` interface with CBOR.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCodec creates a new CBOR gRPC codec.
func NewCodec() *Codec {

	// We should never fail here if the options are valid, so use panic to keep
	// the function signature for the codec clean.
	options := cbor.CanonicalEncOptions()
	options.Time = cbor.TimeRFC3339Nano
	enc, err := options.EncMode()
	if err != nil {
		panic(err)
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}

	c := Codec{
		enc: enc,
		dec: dec,
	}

	return &c
}

func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	data, err := c.enc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not encode message: %w", err)
	}
	return data, nil
}

func (c *Codec) Unmarshal(data []byte, v interface{}) error {
	err := c.dec.Unmarshal(data, v)
	if err != nil {
		return fmt.Errorf("could not decode message: %w", err)
	}
	return nil
}

func (c *Codec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(NewCodec())
}
