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
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/optakt/ledger-history/codec/wire"
	"github.com/optakt/ledger-history/models/history"
)

// Gateway implements the `history.Gateway` interface on top of gRPC. It holds
// one client connection per endpoint, created on first use, so that archive
// shards named in redirects can be reached without prior configuration.
type Gateway struct {
	log   zerolog.Logger
	cfg   Config
	codec *wire.Codec
	mutex *sync.Mutex // guards the connection map
	conns map[history.Endpoint]*grpc.ClientConn
}

// NewGateway creates a new gRPC gateway.
func NewGateway(log zerolog.Logger, options ...Option) *Gateway {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	g := Gateway{
		log:   log.With().Str("component", "ledger_gateway").Logger(),
		cfg:   cfg,
		codec: wire.NewCodec(),
		mutex: &sync.Mutex{},
		conns: make(map[history.Endpoint]*grpc.ClientConn),
	}

	return &g
}

// Block looks up the block at the given height using the given method of the
// given endpoint.
func (g *Gateway) Block(ctx context.Context, endpoint history.Endpoint, method string, height history.Height) (history.Lookup, error) {

	conn, err := g.connection(endpoint)
	if err != nil {
		return history.Lookup{}, err
	}

	ctx, cancel := g.bound(ctx)
	defer cancel()

	req := BlockArg{
		Height: height,
	}
	var res BlockRes
	err = conn.Invoke(ctx, fullMethod(method), &req, &res, grpc.ForceCodec(g.codec))
	if err != nil {
		return history.Lookup{}, fmt.Errorf("could not invoke %s: %w", method, err)
	}

	lookup := history.Lookup{
		Block:    res.Block,
		Redirect: history.Endpoint(res.Redirect),
	}

	return lookup, nil
}

// Tip retrieves the tip of the chain using the given method of the given
// endpoint.
func (g *Gateway) Tip(ctx context.Context, endpoint history.Endpoint, method string) (*history.TipOfChain, error) {

	conn, err := g.connection(endpoint)
	if err != nil {
		return nil, err
	}

	ctx, cancel := g.bound(ctx)
	defer cancel()

	req := TipOfChainRequest{}
	var res TipOfChainRes
	err = conn.Invoke(ctx, fullMethod(method), &req, &res, grpc.ForceCodec(g.codec))
	if err != nil {
		return nil, fmt.Errorf("could not invoke %s: %w", method, err)
	}

	tip := history.TipOfChain{
		Certification: res.Certification,
		TipIndex:      res.TipIndex,
	}

	return &tip, nil
}

// Close closes the connections to all endpoints that were reached so far.
func (g *Gateway) Close() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	var errs *multierror.Error
	for endpoint, conn := range g.conns {
		err := conn.Close()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("could not close connection to %s: %w", endpoint, err))
		}
		delete(g.conns, endpoint)
	}

	return errs.ErrorOrNil()
}

func (g *Gateway) connection(endpoint history.Endpoint) (*grpc.ClientConn, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	conn, ok := g.conns[endpoint]
	if ok {
		return conn, nil
	}

	// Dialing does not block; connection failures surface on the first call.
	conn, err := grpc.Dial(string(endpoint), g.cfg.DialOptions...)
	if err != nil {
		return nil, fmt.Errorf("could not dial %s: %w", endpoint, err)
	}
	g.conns[endpoint] = conn

	g.log.Debug().Str("endpoint", string(endpoint)).Msg("connection to endpoint created")

	return conn, nil
}

func (g *Gateway) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.cfg.Timeout == 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.cfg.Timeout)
}
