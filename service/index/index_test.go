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

package index_test

import (
	"encoding/binary"
	"testing"

	"github.com/OneOfOne/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/ledger-history/codec/zbor"
	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/index"
	"github.com/optakt/ledger-history/service/storage"
	"github.com/optakt/ledger-history/testing/helpers"
	"github.com/optakt/ledger-history/testing/mocks"
)

func TestWriter_Block(t *testing.T) {
	db := helpers.InMemoryDB(t)
	defer db.Close()
	codec := zbor.NewCodec()
	lib := storage.New(codec)
	writer := index.NewWriter(db, lib, codec)

	encoded, err := writer.Block(mocks.GenericHeight, mocks.GenericBlock)
	require.NoError(t, err)

	var got history.EncodedBlock
	require.NoError(t, db.View(lib.RetrieveBlock(mocks.GenericHeight, &got)))
	assert.Equal(t, encoded, got)

	var last uint64
	require.NoError(t, db.View(lib.RetrieveLast(&last)))
	assert.Equal(t, mocks.GenericHeight, last)

	// Writing an older block does not move the last height back.
	_, err = writer.Block(mocks.GenericHeight-1, mocks.GenericBlock)
	require.NoError(t, err)
	require.NoError(t, db.View(lib.RetrieveLast(&last)))
	assert.Equal(t, mocks.GenericHeight, last)
}

func TestGenerate(t *testing.T) {
	db := helpers.InMemoryDB(t)
	defer db.Close()
	codec := zbor.NewCodec()
	lib := storage.New(codec)
	writer := index.NewWriter(db, lib, codec)

	err := index.Generate(writer, 10, 5)
	require.NoError(t, err)

	var last uint64
	require.NoError(t, db.View(lib.RetrieveLast(&last)))
	assert.Equal(t, uint64(14), last)

	var previous history.EncodedBlock
	require.NoError(t, db.View(lib.RetrieveBlock(10, &previous)))

	for height := uint64(11); height <= 14; height++ {
		var encoded history.EncodedBlock
		require.NoError(t, db.View(lib.RetrieveBlock(height, &encoded)))

		var block history.Block
		require.NoError(t, codec.Unmarshal(encoded, &block))

		want := make([]byte, 8)
		binary.BigEndian.PutUint64(want, xxhash.Checksum64(previous))
		assert.Equal(t, want, block.ParentHash)
		assert.Equal(t, height, block.Transaction.Memo)

		previous = encoded
	}
}
