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

package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/ledger-history/models/history"
)

// Redirect describes the range of heights a fixture ledger no longer holds,
// and the archive endpoint that holds them instead.
type Redirect struct {
	Below  uint64 `cbor:"1,keyasint"`
	Target string `cbor:"2,keyasint"`
}

func (l *Library) SaveFirst(height uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixFirst), height)
}

func (l *Library) SaveLast(height uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixLast), height)
}

// SaveBlock stores an already encoded block as is.
func (l *Library) SaveBlock(height uint64, block history.EncodedBlock) func(*badger.Txn) error {
	key := EncodeKey(PrefixBlock, height)
	return func(tx *badger.Txn) error {
		err := tx.Set(key, block)
		if err != nil {
			return fmt.Errorf("could not set block (key: %x): %w", key, err)
		}
		return nil
	}
}

func (l *Library) SaveCertification(certification []byte) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixCertification), certification)
}

func (l *Library) SaveRedirect(redirect Redirect) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixRedirect), redirect)
}

func (l *Library) RetrieveFirst(height *uint64) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixFirst), height)
}

func (l *Library) RetrieveLast(height *uint64) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixLast), height)
}

func (l *Library) RetrieveBlock(height uint64, block *history.EncodedBlock) func(*badger.Txn) error {
	return l.retrieveRaw(EncodeKey(PrefixBlock, height), (*[]byte)(block))
}

func (l *Library) RetrieveCertification(certification *[]byte) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixCertification), certification)
}

func (l *Library) RetrieveRedirect(redirect *Redirect) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixRedirect), redirect)
}
