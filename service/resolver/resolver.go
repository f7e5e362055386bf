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

package resolver

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/trace"
)

// Kind is the kind of endpoint a lookup is addressed to.
type Kind uint8

// Supported endpoint kinds.
const (
	Primary Kind = iota + 1
	Archive
)

func (k Kind) String() string {
	switch k {
	case Primary:
		return "primary"
	case Archive:
		return "archive"
	default:
		return "unknown"
	}
}

// hop describes how a lookup against a given kind of endpoint is made, and
// whether a redirect in its response may be followed.
type hop struct {
	method string
	span   trace.SpanName
	follow bool
}

var hops = map[Kind]hop{
	Primary: {method: history.MethodBlock, span: trace.LookupPrimary, follow: true},
	Archive: {method: history.MethodArchiveBlock, span: trace.LookupArchive, follow: false},
}

// Resolver resolves blocks by height against the primary ledger, following
// a single redirect to an archive shard when the primary no longer holds the
// requested block.
type Resolver struct {
	log     zerolog.Logger
	gateway history.Gateway
	codec   history.Codec
	primary history.Endpoint
	cfg     Config
}

// New creates a new resolver that looks blocks up on the given primary
// endpoint through the given gateway.
func New(log zerolog.Logger, gateway history.Gateway, codec history.Codec, primary history.Endpoint, options ...Option) *Resolver {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	r := Resolver{
		log:     log.With().Str("component", "block_resolver").Logger(),
		gateway: gateway,
		codec:   codec,
		primary: primary,
		cfg:     cfg,
	}

	return &r
}

// Block returns the decoded block at the given height. It makes at most two
// remote calls: one to the primary, and one to the archive it redirects to.
func (r *Resolver) Block(ctx context.Context, height history.Height) (*history.Block, error) {
	ctx, span := r.cfg.tracer.StartSpanFromContext(ctx, trace.ResolveBlock)
	defer span.End()

	kind := Primary
	endpoint := r.primary
	for {
		lookup, err := r.lookup(ctx, kind, endpoint, height)
		if err != nil {
			return nil, err
		}

		if len(lookup.Block) > 0 {
			return r.decode(height, lookup.Block)
		}

		if !hops[kind].follow {
			return nil, &history.UnresolvedRedirectError{Archive: endpoint, Target: lookup.Redirect}
		}

		r.log.Debug().
			Uint64("height", height).
			Str("primary", string(endpoint)).
			Str("archive", string(lookup.Redirect)).
			Msg("following redirect to archive")

		kind = Archive
		endpoint = lookup.Redirect
	}
}

// lookup issues a single block lookup and classifies its outcome. The returned
// lookup always holds either a block or a redirect.
func (r *Resolver) lookup(ctx context.Context, kind Kind, endpoint history.Endpoint, height history.Height) (history.Lookup, error) {
	hop := hops[kind]

	ctx, span := r.cfg.tracer.StartSpanFromContext(ctx, hop.span)
	defer span.End()

	lookup, err := r.gateway.Block(ctx, endpoint, hop.method, height)
	if err != nil {
		return history.Lookup{}, &history.TransportError{Endpoint: endpoint, Method: hop.method, Err: err}
	}
	if !lookup.Found() {
		return history.Lookup{}, fmt.Errorf("could not find block %d on %s endpoint %s: %w", height, kind, endpoint, history.ErrNotFound)
	}

	return lookup, nil
}

func (r *Resolver) decode(height history.Height, encoded history.EncodedBlock) (*history.Block, error) {
	var block history.Block
	err := r.codec.Unmarshal(encoded, &block)
	if err != nil {
		return nil, &history.DecodeError{Height: height, Err: err}
	}
	return &block, nil
}
