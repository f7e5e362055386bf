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

	"github.com/optakt/ledger-history/models/history"
)

type Gateway struct {
	BlockFunc func(ctx context.Context, endpoint history.Endpoint, method string, height history.Height) (history.Lookup, error)
	TipFunc   func(ctx context.Context, endpoint history.Endpoint, method string) (*history.TipOfChain, error)
}

func BaselineGateway(t *testing.T) *Gateway {
	t.Helper()

	g := Gateway{
		BlockFunc: func(context.Context, history.Endpoint, string, history.Height) (history.Lookup, error) {
			return history.Lookup{Block: GenericBytes}, nil
		},
		TipFunc: func(context.Context, history.Endpoint, string) (*history.TipOfChain, error) {
			tip := history.TipOfChain{
				Certification: GenericCertification,
				TipIndex:      GenericHeight,
			}
			return &tip, nil
		},
	}

	return &g
}

func (g *Gateway) Block(ctx context.Context, endpoint history.Endpoint, method string, height history.Height) (history.Lookup, error) {
	return g.BlockFunc(ctx, endpoint, method, height)
}

func (g *Gateway) Tip(ctx context.Context, endpoint history.Endpoint, method string) (*history.TipOfChain, error) {
	return g.TipFunc(ctx, endpoint, method)
}
