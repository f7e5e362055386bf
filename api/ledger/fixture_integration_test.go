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

//go:build integration
// +build integration

package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/ledger-history/api/ledger"
	"github.com/optakt/ledger-history/codec/zbor"
	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/index"
	"github.com/optakt/ledger-history/service/resolver"
	"github.com/optakt/ledger-history/service/storage"
	"github.com/optakt/ledger-history/service/tracker"
	"github.com/optakt/ledger-history/testing/helpers"
	"github.com/optakt/ledger-history/testing/mocks"
)

// The archive holds heights 5 to 9 and points anything older to a shard that
// is never reached. The primary holds heights 10 to 14 and redirects anything
// older to the archive.
func TestIntegrationFixture(t *testing.T) {
	codec := zbor.NewCodec()
	lib := storage.New(codec)
	unreachable := history.Endpoint("127.0.0.1:1")

	archiveDB := helpers.InMemoryDB(t)
	defer archiveDB.Close()
	seed(t, archiveDB, lib, codec, 5, 5, 5, unreachable)
	archive := startLedger(t, ledger.NewServer(mocks.NoopLogger, archiveDB, lib))

	primaryDB := helpers.InMemoryDB(t)
	defer primaryDB.Close()
	seed(t, primaryDB, lib, codec, 10, 5, 10, archive)
	primary := startLedger(t, ledger.NewServer(mocks.NoopLogger, primaryDB, lib))

	gateway := ledger.NewGateway(mocks.NoopLogger)
	defer gateway.Close()

	resolve := resolver.New(mocks.NoopLogger, gateway, codec, primary)
	track := tracker.NewTip(mocks.NoopLogger, gateway, primary)

	t.Run("block held by primary", func(t *testing.T) {
		block, err := resolve.Block(context.Background(), 12)

		require.NoError(t, err)
		assert.Equal(t, uint64(12), block.Transaction.Memo)
	})

	t.Run("block held by archive", func(t *testing.T) {
		block, err := resolve.Block(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, uint64(7), block.Transaction.Memo)
	})

	t.Run("archive redirects again", func(t *testing.T) {
		_, err := resolve.Block(context.Background(), 3)

		var unresolved *history.UnresolvedRedirectError
		require.True(t, errors.As(err, &unresolved))
		assert.Equal(t, archive, unresolved.Archive)
		assert.Equal(t, unreachable, unresolved.Target)
	})

	t.Run("block beyond tip", func(t *testing.T) {
		_, err := resolve.Block(context.Background(), 20)

		assert.ErrorIs(t, err, history.ErrNotFound)
	})

	t.Run("tip of chain", func(t *testing.T) {
		tip, err := track.Tip(context.Background())

		require.NoError(t, err)
		assert.Equal(t, uint64(14), tip.TipIndex)
		assert.Equal(t, mocks.GenericCertification, tip.Certification)
	})
}

func seed(t *testing.T, db *badger.DB, lib *storage.Library, codec history.Codec, first uint64, count uint64, below uint64, target history.Endpoint) {
	t.Helper()

	writer := index.NewWriter(db, lib, codec)
	require.NoError(t, writer.First(first))
	require.NoError(t, index.Generate(writer, first, count))
	require.NoError(t, writer.Certification(mocks.GenericCertification))
	require.NoError(t, writer.Redirect(below, target))
}
