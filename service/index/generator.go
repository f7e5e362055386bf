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
	"encoding/binary"
	"fmt"
	"time"

	"github.com/OneOfOne/xxhash"

	"github.com/optakt/ledger-history/models/history"
)

// Genesis is the timestamp of the first generated block.
var Genesis = time.Date(2021, 5, 10, 0, 0, 0, 0, time.UTC)

// Generate writes a chain of count synthetic blocks starting at the given
// height. Each block links to the previous one through the checksum of its
// encoding, so that gaps and substitutions are easy to spot when reading the
// chain back through the proxy.
func Generate(writer *Writer, first uint64, count uint64) error {

	var parent []byte
	for height := first; height < first+count; height++ {
		block := history.Block{
			ParentHash: parent,
			Transaction: history.Transaction{
				Operation: history.Operation{
					Kind:   "mint",
					To:     []byte(fmt.Sprintf("account-%d", height%16)),
					Amount: 1000 * (height + 1),
				},
				Memo:      height,
				CreatedAt: Genesis.Add(time.Duration(height) * time.Second),
			},
			Timestamp: Genesis.Add(time.Duration(height)*time.Second + time.Millisecond),
		}

		encoded, err := writer.Block(height, &block)
		if err != nil {
			return fmt.Errorf("could not write block (height: %d): %w", height, err)
		}

		parent = make([]byte, 8)
		binary.BigEndian.PutUint64(parent, xxhash.Checksum64(encoded))
	}

	return nil
}
