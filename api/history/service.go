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

	"google.golang.org/grpc"
)

const serviceName = "ledger_history.v1.LedgerHistory"

// APIServer is the server API for the ledger history service.
type APIServer interface {
	Block(context.Context, *BlockRequest) (*BlockResponse, error)
	TipOfChain(context.Context, *TipOfChainRequest) (*TipOfChainResponse, error)
	WalletReceive(context.Context, *WalletReceiveRequest) (*WalletReceiveResponse, error)
	GetCycles(context.Context, *GetCyclesRequest) (*GetCyclesResponse, error)
	Interface(context.Context, *InterfaceRequest) (*InterfaceResponse, error)
}

// RegisterAPIServer registers the ledger history API on a gRPC server.
func RegisterAPIServer(s *grpc.Server, srv APIServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handlerBlock(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(BlockRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(APIServer).Block(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod("Block"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(APIServer).Block(ctx, req.(*BlockRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func handlerTipOfChain(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(TipOfChainRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(APIServer).TipOfChain(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod("TipOfChain"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(APIServer).TipOfChain(ctx, req.(*TipOfChainRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func handlerWalletReceive(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(WalletReceiveRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(APIServer).WalletReceive(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod("WalletReceive"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(APIServer).WalletReceive(ctx, req.(*WalletReceiveRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func handlerGetCycles(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetCyclesRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(APIServer).GetCycles(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod("GetCycles"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(APIServer).GetCycles(ctx, req.(*GetCyclesRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func handlerInterface(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(InterfaceRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(APIServer).Interface(ctx, req)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod("Interface"),
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(APIServer).Interface(ctx, req.(*InterfaceRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*APIServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Block", Handler: handlerBlock},
		{MethodName: "TipOfChain", Handler: handlerTipOfChain},
		{MethodName: "WalletReceive", Handler: handlerWalletReceive},
		{MethodName: "GetCycles", Handler: handlerGetCycles},
		{MethodName: "Interface", Handler: handlerInterface},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger_history/v1/api.cbor",
}
