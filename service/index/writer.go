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

package index

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/storage"
)

// Writer writes blocks and chain metadata into a fixture ledger database.
type Writer struct {
	db    *badger.DB
	lib   *storage.Library
	codec history.Codec
}

func NewWriter(db *badger.DB, lib *storage.Library, codec history.Codec) *Writer {

	w := Writer{
		db:    db,
		lib:   lib,
		codec: codec,
	}

	return &w
}

func (w *Writer) First(height uint64) error {
	return w.db.Update(w.lib.SaveFirst(height))
}

func (w *Writer) Last(height uint64) error {
	return w.db.Update(w.lib.SaveLast(height))
}

func (w *Writer) Certification(certification []byte) error {
	return w.db.Update(w.lib.SaveCertification(certification))
}

// Redirect makes the ledger answer lookups for heights below the given one
// with a redirect to the given archive endpoint.
func (w *Writer) Redirect(below uint64, target history.Endpoint) error {
	redirect := storage.Redirect{
		Below:  below,
		Target: string(target),
	}
	return w.db.Update(w.lib.SaveRedirect(redirect))
}

// Block encodes the given block and stores it at the given height. The last
// height is moved along with it when the block extends the chain.
func (w *Writer) Block(height uint64, block *history.Block) (history.EncodedBlock, error) {

	data, err := w.codec.Marshal(block)
	if err != nil {
		return nil, fmt.Errorf("could not encode block: %w", err)
	}
	encoded := history.EncodedBlock(data)

	err = w.db.Update(func(tx *badger.Txn) error {
		var last uint64
		err := w.lib.RetrieveLast(&last)(tx)
		if err != nil && !isNotFound(err) {
			return fmt.Errorf("could not retrieve last height: %w", err)
		}
		ops := []func(*badger.Txn) error{w.lib.SaveBlock(height, encoded)}
		if isNotFound(err) || height > last {
			ops = append(ops, w.lib.SaveLast(height))
		}
		return storage.Combine(ops...)(tx)
	})
	if err != nil {
		return nil, fmt.Errorf("could not index block: %w", err)
	}

	return encoded, nil
}
