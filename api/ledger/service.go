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

	"google.golang.org/grpc"

	"github.com/optakt/ledger-history/models/history"
)

const serviceName = "ledger.v1.Ledger"

// LedgerServer is the server side of the ledger contract. A primary ledger
// implements `Block`; archive shards implement `ArchiveBlock`.
type LedgerServer interface {
	Block(context.Context, *BlockArg) (*BlockRes, error)
	ArchiveBlock(context.Context, *BlockArg) (*BlockRes, error)
	TipOfChain(context.Context, *TipOfChainRequest) (*TipOfChainRes, error)
}

// RegisterLedgerServer registers the given implementation of the ledger
// contract on a gRPC server.
func RegisterLedgerServer(s *grpc.Server, srv LedgerServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handlerBlock(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(BlockArg)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).Block(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod(history.MethodBlock),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).Block(ctx, req.(*BlockArg))
	}
	return interceptor(ctx, req, info, handler)
}

func handlerArchiveBlock(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(BlockArg)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).ArchiveBlock(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod(history.MethodArchiveBlock),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).ArchiveBlock(ctx, req.(*BlockArg))
	}
	return interceptor(ctx, req, info, handler)
}

func handlerTipOfChain(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(TipOfChainRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).TipOfChain(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod(history.MethodTipOfChain),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).TipOfChain(ctx, req.(*TipOfChainRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// fullMethod builds the full gRPC method path for a ledger method.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: history.MethodBlock, Handler: handlerBlock},
		{MethodName: history.MethodArchiveBlock, Handler: handlerArchiveBlock},
		{MethodName: history.MethodTipOfChain, Handler: handlerTipOfChain},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.cbor",
}
