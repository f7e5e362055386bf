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

package storage_test

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/ledger-history/codec/zbor"
	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/storage"
	"github.com/optakt/ledger-history/testing/helpers"
	"github.com/optakt/ledger-history/testing/mocks"
)

func TestLibrary(t *testing.T) {
	t.Run("first", func(t *testing.T) {
		t.Parallel()

		db, lib := setupLibrary(t)

		err := db.Update(lib.SaveFirst(mocks.GenericHeight))
		assert.NoError(t, err)

		var got uint64
		err = db.View(lib.RetrieveFirst(&got))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericHeight, got)
	})

	t.Run("last", func(t *testing.T) {
		t.Parallel()

		db, lib := setupLibrary(t)

		err := db.Update(lib.SaveLast(mocks.GenericHeight))
		assert.NoError(t, err)

		var got uint64
		err = db.View(lib.RetrieveLast(&got))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericHeight, got)
	})

	t.Run("block", func(t *testing.T) {
		t.Parallel()

		db, lib := setupLibrary(t)

		err := db.Update(lib.SaveBlock(mocks.GenericHeight, mocks.GenericBytes))
		assert.NoError(t, err)

		var got history.EncodedBlock
		err = db.View(lib.RetrieveBlock(mocks.GenericHeight, &got))

		require.NoError(t, err)
		assert.Equal(t, history.EncodedBlock(mocks.GenericBytes), got)
	})

	t.Run("missing block", func(t *testing.T) {
		t.Parallel()

		db, lib := setupLibrary(t)

		var got history.EncodedBlock
		err := db.View(lib.RetrieveBlock(mocks.GenericHeight, &got))

		assert.ErrorIs(t, err, badger.ErrKeyNotFound)
	})

	t.Run("certification", func(t *testing.T) {
		t.Parallel()

		db, lib := setupLibrary(t)

		err := db.Update(lib.SaveCertification(mocks.GenericCertification))
		assert.NoError(t, err)

		var got []byte
		err = db.View(lib.RetrieveCertification(&got))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericCertification, got)
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()

		db, lib := setupLibrary(t)

		redirect := storage.Redirect{Below: mocks.GenericHeight, Target: string(mocks.GenericArchive)}
		err := db.Update(lib.SaveRedirect(redirect))
		assert.NoError(t, err)

		var got storage.Redirect
		err = db.View(lib.RetrieveRedirect(&got))

		require.NoError(t, err)
		assert.Equal(t, redirect, got)
	})
}

func setupLibrary(t *testing.T) (*badger.DB, *storage.Library) {
	t.Helper()

	db := helpers.InMemoryDB(t)
	t.Cleanup(func() {
		db.Close()
	})

	return db, storage.New(zbor.NewCodec())
}
