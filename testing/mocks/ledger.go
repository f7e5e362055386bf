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

package mocks

import (
	"context"
	"testing"

	"github.com/optakt/ledger-history/api/ledger"
)

type LedgerServer struct {
	BlockFunc        func(ctx context.Context, req *ledger.BlockArg) (*ledger.BlockRes, error)
	ArchiveBlockFunc func(ctx context.Context, req *ledger.BlockArg) (*ledger.BlockRes, error)
	TipOfChainFunc   func(ctx context.Context, req *ledger.TipOfChainRequest) (*ledger.TipOfChainRes, error)
}

func BaselineLedgerServer(t *testing.T) *LedgerServer {
	t.Helper()

	s := LedgerServer{
		BlockFunc: func(context.Context, *ledger.BlockArg) (*ledger.BlockRes, error) {
			return &ledger.BlockRes{Block: GenericBytes}, nil
		},
		ArchiveBlockFunc: func(context.Context, *ledger.BlockArg) (*ledger.BlockRes, error) {
			return &ledger.BlockRes{Block: GenericBytes}, nil
		},
		TipOfChainFunc: func(context.Context, *ledger.TipOfChainRequest) (*ledger.TipOfChainRes, error) {
			return &ledger.TipOfChainRes{Certification: GenericCertification, TipIndex: GenericHeight}, nil
		},
	}

	return &s
}

func (s *LedgerServer) Block(ctx context.Context, req *ledger.BlockArg) (*ledger.BlockRes, error) {
	return s.BlockFunc(ctx, req)
}

func (s *LedgerServer) ArchiveBlock(ctx context.Context, req *ledger.BlockArg) (*ledger.BlockRes, error) {
	return s.ArchiveBlockFunc(ctx, req)
}

func (s *LedgerServer) TipOfChain(ctx context.Context, req *ledger.TipOfChainRequest) (*ledger.TipOfChainRes, error) {
	return s.TipOfChainFunc(ctx, req)
}
