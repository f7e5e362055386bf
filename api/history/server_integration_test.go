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

package history_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	api "github.com/optakt/ledger-history/api/history"
	"github.com/optakt/ledger-history/api/ledger"
	"github.com/optakt/ledger-history/codec/zbor"
	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/resolver"
	"github.com/optakt/ledger-history/service/tracker"
	"github.com/optakt/ledger-history/service/wallet"
	"github.com/optakt/ledger-history/testing/mocks"
)

func TestIntegrationServer(t *testing.T) {
	codec := zbor.NewCodec()
	encoded, err := codec.Marshal(mocks.GenericBlock)
	require.NoError(t, err)

	// The archive holds every block below the generic height, the primary
	// holds the generic height and redirects everything below it.
	archive := mocks.BaselineLedgerServer(t)
	archive.ArchiveBlockFunc = func(_ context.Context, req *ledger.BlockArg) (*ledger.BlockRes, error) {
		if req.Height == 0 {
			return &ledger.BlockRes{Redirect: "127.0.0.1:1"}, nil
		}
		return &ledger.BlockRes{Block: encoded}, nil
	}
	archiveAddr := serve(t, func(s *grpc.Server) { ledger.RegisterLedgerServer(s, archive) })

	primary := mocks.BaselineLedgerServer(t)
	primary.BlockFunc = func(_ context.Context, req *ledger.BlockArg) (*ledger.BlockRes, error) {
		switch {
		case req.Height < mocks.GenericHeight:
			return &ledger.BlockRes{Redirect: archiveAddr}, nil
		case req.Height == mocks.GenericHeight:
			return &ledger.BlockRes{Block: encoded}, nil
		default:
			return &ledger.BlockRes{}, nil
		}
	}
	primary.TipOfChainFunc = func(context.Context, *ledger.TipOfChainRequest) (*ledger.TipOfChainRes, error) {
		return &ledger.TipOfChainRes{Certification: mocks.GenericCertification, TipIndex: 42}, nil
	}
	primaryAddr := history.Endpoint(serve(t, func(s *grpc.Server) { ledger.RegisterLedgerServer(s, primary) }))

	gateway := ledger.NewGateway(mocks.NoopLogger)
	t.Cleanup(func() { _ = gateway.Close() })

	reserve := wallet.NewReserve(0)
	server := api.NewServer(
		mocks.NoopLogger,
		resolver.New(mocks.NoopLogger, gateway, codec, primaryAddr),
		tracker.NewTip(mocks.NoopLogger, gateway, primaryAddr),
		wallet.New(mocks.NoopLogger, reserve),
	)
	proxyAddr := serve(t, func(s *grpc.Server) { api.RegisterAPIServer(s, server) })

	conn, err := grpc.Dial(proxyAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := api.NewClient(conn)

	ctx := context.Background()

	t.Run("block from primary", func(t *testing.T) {
		got, err := client.Block(ctx, mocks.GenericHeight)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericBlock.Transaction.Memo, got.Transaction.Memo)
		assert.Equal(t, mocks.GenericBlock.ParentHash, got.ParentHash)
	})

	t.Run("block from archive", func(t *testing.T) {
		got, err := client.Block(ctx, mocks.GenericHeight-1)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericBlock.Transaction.Operation, got.Transaction.Operation)
	})

	t.Run("unresolved redirect", func(t *testing.T) {
		_, err := client.Block(ctx, 0)

		assert.Equal(t, codes.FailedPrecondition, code(err))
	})

	t.Run("block not found", func(t *testing.T) {
		_, err := client.Block(ctx, mocks.GenericHeight+1)

		assert.Equal(t, codes.NotFound, code(err))
	})

	t.Run("tip of chain", func(t *testing.T) {
		got, err := client.Tip(ctx)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericCertification, got.Certification)
		assert.Equal(t, uint64(42), got.TipIndex)
	})

	t.Run("donation and balance", func(t *testing.T) {
		accepted, err := client.Donate(ctx, "alice", 1000)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), accepted)

		balance, err := client.Balance(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), balance)
	})

	t.Run("interface", func(t *testing.T) {
		got, err := client.Interface(ctx)

		require.NoError(t, err)
		assert.Equal(t, api.Description, got)
	})
}

func serve(t *testing.T, register func(*grpc.Server)) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	gsvr := grpc.NewServer()
	register(gsvr)
	go func() {
		_ = gsvr.Serve(listener)
	}()
	t.Cleanup(gsvr.Stop)

	return listener.Addr().String()
}

// code returns the status code of an error wrapped by the client.
func code(err error) codes.Code {
	var grpcErr interface{ GRPCStatus() *status.Status }
	if errors.As(err, &grpcErr) {
		return grpcErr.GRPCStatus().Code()
	}
	return status.Code(err)
}
