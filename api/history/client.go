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
	"fmt"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/optakt/ledger-history/codec/wire"
	"github.com/optakt/ledger-history/models/history"
)

// Client is a client for the ledger history API.
type Client struct {
	conn  grpc.ClientConnInterface
	codec *wire.Codec
}

// NewClient creates a new client using the given connection.
func NewClient(conn grpc.ClientConnInterface) *Client {

	c := Client{
		conn:  conn,
		codec: wire.NewCodec(),
	}

	return &c
}

// Block returns the block at the given height.
func (c *Client) Block(ctx context.Context, height history.Height) (*history.Block, error) {

	req := BlockRequest{
		Height: height,
	}
	var res BlockResponse
	err := c.invoke(ctx, "Block", &req, &res)
	if err != nil {
		return nil, fmt.Errorf("could not get block: %w", err)
	}

	return &res.Block, nil
}

// Tip returns the tip of the chain.
func (c *Client) Tip(ctx context.Context) (*history.TipOfChain, error) {

	req := TipOfChainRequest{}
	var res TipOfChainResponse
	err := c.invoke(ctx, "TipOfChain", &req, &res)
	if err != nil {
		return nil, fmt.Errorf("could not get tip of chain: %w", err)
	}

	tip := history.TipOfChain{
		Certification: res.Certification,
		TipIndex:      res.TipIndex,
	}

	return &tip, nil
}

// Donate offers the given amount of cycles to the service, and returns how
// many were accepted.
func (c *Client) Donate(ctx context.Context, caller string, offered history.Amount) (history.Amount, error) {

	ctx = metadata.AppendToOutgoingContext(ctx,
		KeyOffered, strconv.FormatUint(offered, 10),
	)
	if caller != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, KeyCaller, caller)
	}

	req := WalletReceiveRequest{}
	var res WalletReceiveResponse
	err := c.invoke(ctx, "WalletReceive", &req, &res)
	if err != nil {
		return 0, fmt.Errorf("could not donate cycles: %w", err)
	}

	return res.Accepted, nil
}

// Balance returns the cycles held by the service.
func (c *Client) Balance(ctx context.Context) (history.Amount, error) {

	req := GetCyclesRequest{}
	var res GetCyclesResponse
	err := c.invoke(ctx, "GetCycles", &req, &res)
	if err != nil {
		return 0, fmt.Errorf("could not get cycles: %w", err)
	}

	return res.Balance, nil
}

// Interface returns the interface description of the service.
func (c *Client) Interface(ctx context.Context) (string, error) {

	req := InterfaceRequest{}
	var res InterfaceResponse
	err := c.invoke(ctx, "Interface", &req, &res)
	if err != nil {
		return "", fmt.Errorf("could not get interface: %w", err)
	}

	return res.Text, nil
}

func (c *Client) invoke(ctx context.Context, method string, req interface{}, res interface{}) error {
	return c.conn.Invoke(ctx, fullMethod(method), req, res, grpc.ForceCodec(c.codec))
}
