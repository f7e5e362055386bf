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
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DefaultConfig is the default configuration of the gateway. Calls are not
// bounded in time unless a timeout is given.
var DefaultConfig = Config{
	Timeout: 0,
	DialOptions: []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	},
}

// Config contains the optional parameters of the gateway.
type Config struct {
	Timeout     time.Duration
	DialOptions []grpc.DialOption
}

// Option is an option that can be given to the gateway to configure optional
// parameters on initialization.
type Option func(*Config)

// WithTimeout bounds the duration of every single remote call.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.Timeout = timeout
	}
}

// WithDialOptions replaces the options used when connecting to an endpoint.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(cfg *Config) {
		cfg.DialOptions = opts
	}
}
