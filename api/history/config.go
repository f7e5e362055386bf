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
	"github.com/optakt/ledger-history/service/trace"
)

// DefaultConfig is the default configuration of the API server.
var DefaultConfig = Config{
	tracer: trace.NewNoopTracer(),
}

// Config contains the optional parameters of the API server.
type Config struct {
	tracer trace.Tracer
}

// Option is an option that can be given to the API server to configure
// optional parameters on initialization.
type Option func(*Config)

// WithTracer sets the tracer used to record a span for each API call.
func WithTracer(tracer trace.Tracer) Option {
	return func(cfg *Config) {
		cfg.tracer = tracer
	}
}
