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

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/storage"
)

// Server is a fixture implementation of the ledger contract, serving blocks
// from a badger database. Heights below the configured redirect range are
// answered with a redirect to the configured archive instead, which lets the
// same server act as a primary ledger or as an archive shard.
type Server struct {
	log zerolog.Logger
	db  *badger.DB
	lib *storage.Library
}

// NewServer creates a new fixture ledger server on top of the given database.
func NewServer(log zerolog.Logger, db *badger.DB, lib *storage.Library) *Server {

	s := Server{
		log: log.With().Str("component", "ledger_server").Logger(),
		db:  db,
		lib: lib,
	}

	return &s
}

// Block implements the `block_pb` method of the primary ledger.
func (s *Server) Block(_ context.Context, req *BlockArg) (*BlockRes, error) {
	return s.lookup(req.Height)
}

// ArchiveBlock implements the `get_block_pb` method of archive shards.
func (s *Server) ArchiveBlock(_ context.Context, req *BlockArg) (*BlockRes, error) {
	return s.lookup(req.Height)
}

// TipOfChain implements the `tip_of_chain_pb` method of the primary ledger.
func (s *Server) TipOfChain(_ context.Context, _ *TipOfChainRequest) (*TipOfChainRes, error) {

	var last uint64
	var certification []byte
	err := s.db.View(func(tx *badger.Txn) error {
		err := s.lib.RetrieveLast(&last)(tx)
		if err != nil {
			return fmt.Errorf("could not retrieve last height: %w", err)
		}
		err = s.lib.RetrieveCertification(&certification)(tx)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not retrieve certification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	res := TipOfChainRes{
		Certification: certification,
		TipIndex:      last,
	}

	return &res, nil
}

func (s *Server) lookup(height uint64) (*BlockRes, error) {

	var res BlockRes
	err := s.db.View(func(tx *badger.Txn) error {
		var redirect storage.Redirect
		err := s.lib.RetrieveRedirect(&redirect)(tx)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not retrieve redirect: %w", err)
		}
		if err == nil && height < redirect.Below {
			res.Redirect = redirect.Target
			return nil
		}

		// Heights below the first one held by this ledger are never stored.
		var first uint64
		err = s.lib.RetrieveFirst(&first)(tx)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not retrieve first height: %w", err)
		}
		if err == nil && height < first {
			return nil
		}

		var block history.EncodedBlock
		err = s.lib.RetrieveBlock(height, &block)(tx)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not retrieve block: %w", err)
		}
		res.Block = block

		return nil
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	s.log.Debug().
		Uint64("height", height).
		Bool("found", len(res.Block) > 0).
		Str("redirect", res.Redirect).
		Msg("block lookup served")

	return &res, nil
}
