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

package history

import (
	"context"
	_ "embed"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/trace"
)

// Description is the self-describing interface text of the service.
//
//go:embed interface.txt
var Description string

// Server implements the ledger history API. It delegates block resolution,
// tip tracking and resource accounting to its backends, and only translates
// between the wire and the domain.
type Server struct {
	log      zerolog.Logger
	resolver history.Resolver
	tracker  history.Tracker
	wallet   history.Wallet
	cfg      Config
	validate *validator.Validate
}

// NewServer creates a new server on top of the given backends.
func NewServer(log zerolog.Logger, resolver history.Resolver, tracker history.Tracker, wallet history.Wallet, options ...Option) *Server {
	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	s := Server{
		log:      log.With().Str("component", "history_api").Logger(),
		resolver: resolver,
		tracker:  tracker,
		wallet:   wallet,
		cfg:      cfg,
		validate: validator.New(),
	}

	return &s
}

// Block implements the `Block` method of the ledger history API.
func (s *Server) Block(ctx context.Context, req *BlockRequest) (*BlockResponse, error) {

	block, err := s.resolver.Block(ctx, req.Height)
	if err != nil {
		s.log.Debug().Uint64("height", req.Height).Err(err).Msg("could not resolve block")
		return nil, statusError(err)
	}

	res := BlockResponse{
		Height: req.Height,
		Block:  *block,
	}

	return &res, nil
}

// TipOfChain implements the `TipOfChain` method of the ledger history API.
func (s *Server) TipOfChain(ctx context.Context, _ *TipOfChainRequest) (*TipOfChainResponse, error) {

	tip, err := s.tracker.Tip(ctx)
	if err != nil {
		return nil, statusError(err)
	}

	res := TipOfChainResponse{
		Certification: tip.Certification,
		TipIndex:      tip.TipIndex,
	}

	return &res, nil
}

// WalletReceive implements the `WalletReceive` method of the ledger history
// API. The offered amount is taken from the call metadata.
func (s *Server) WalletReceive(ctx context.Context, _ *WalletReceiveRequest) (*WalletReceiveResponse, error) {
	_, span := s.cfg.tracer.StartSpanFromContext(ctx, trace.WalletReceive)
	defer span.End()

	call, err := CallFromContext(ctx, s.validate)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad request: %s", err)
	}

	res := WalletReceiveResponse{
		Accepted: s.wallet.Receive(call),
	}

	return &res, nil
}

// GetCycles implements the `GetCycles` method of the ledger history API.
func (s *Server) GetCycles(ctx context.Context, _ *GetCyclesRequest) (*GetCyclesResponse, error) {
	_, span := s.cfg.tracer.StartSpanFromContext(ctx, trace.GetCycles)
	defer span.End()

	res := GetCyclesResponse{
		Balance: s.wallet.Balance(),
	}

	return &res, nil
}

// Interface implements the `Interface` method of the ledger history API.
func (s *Server) Interface(ctx context.Context, _ *InterfaceRequest) (*InterfaceResponse, error) {
	_, span := s.cfg.tracer.StartSpanFromContext(ctx, trace.Interface)
	defer span.End()

	res := InterfaceResponse{
		Text: Description,
	}

	return &res, nil
}
