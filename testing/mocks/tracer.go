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

	"go.opentelemetry.io/otel/trace"

	historyTrace "github.com/optakt/ledger-history/service/trace"
)

type Tracer struct {
	ReadyFunc                func() <-chan struct{}
	DoneFunc                 func() <-chan struct{}
	StartSpanFromContextFunc func(ctx context.Context, operationName historyTrace.SpanName, opts ...trace.SpanStartOption) (context.Context, trace.Span)
}

// BaselineTracer returns a tracer that hands out no-op spans.
func BaselineTracer(t *testing.T) *Tracer {
	t.Helper()

	closed := make(chan struct{})
	close(closed)

	tr := Tracer{
		ReadyFunc: func() <-chan struct{} {
			return closed
		},
		DoneFunc: func() <-chan struct{} {
			return closed
		},
		StartSpanFromContextFunc: func(ctx context.Context, _ historyTrace.SpanName, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, historyTrace.NoopSpan
		},
	}

	return &tr
}

func (t *Tracer) Ready() <-chan struct{} {
	return t.ReadyFunc()
}

func (t *Tracer) Done() <-chan struct{} {
	return t.DoneFunc()
}

func (t *Tracer) StartSpanFromContext(ctx context.Context, operationName historyTrace.SpanName, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.StartSpanFromContextFunc(ctx, operationName, opts...)
}
