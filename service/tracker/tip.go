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

package tracker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/trace"
)

// Tip tracks the tip of the chain as reported by the primary ledger. It holds
// no state of its own; every call is a round trip to the primary.
type Tip struct {
	log     zerolog.Logger
	gateway history.Gateway
	primary history.Endpoint
	cfg     Config
}

// NewTip returns a new tip tracker querying the given primary endpoint.
func NewTip(log zerolog.Logger, gateway history.Gateway, primary history.Endpoint, options ...Option) *Tip {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	t := Tip{
		log:     log.With().Str("component", "tip_tracker").Logger(),
		gateway: gateway,
		primary: primary,
		cfg:     cfg,
	}

	return &t
}

// Tip returns the latest height committed by the primary, along with its
// certification, exactly as the primary reported them.
func (t *Tip) Tip(ctx context.Context) (*history.TipOfChain, error) {
	ctx, span := t.cfg.tracer.StartSpanFromContext(ctx, trace.TipOfChain)
	defer span.End()

	res, err := t.gateway.Tip(ctx, t.primary, history.MethodTipOfChain)
	if err != nil {
		err = &history.TransportError{Endpoint: t.primary, Method: history.MethodTipOfChain, Err: err}
		return nil, fmt.Errorf("failed to get tip of chain: %w", err)
	}

	tip := history.TipOfChain{
		Certification: res.Certification,
		TipIndex:      res.TipIndex,
	}

	t.log.Debug().Uint64("tip", tip.TipIndex).Bool("certified", tip.Certification != nil).Msg("tip of chain retrieved")

	return &tip, nil
}
