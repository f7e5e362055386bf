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

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/ledger-history/models/history"
)

// Codec wraps a codec and records the compressed and decompressed size of
// every payload it unmarshals.
type Codec struct {
	history.Codec
	compressed   *prometheus.HistogramVec
	decompressed *prometheus.HistogramVec
}

func NewCodec(codec history.Codec, reg prometheus.Registerer) *Codec {
	factory := promauto.With(reg)

	buckets := prometheus.ExponentialBuckets(64, 4, 8)
	compressedOpts := prometheus.HistogramOpts{
		Name:      "payload_compressed_bytes",
		Namespace: namespaceHistory,
		Help:      "size of payloads received from ledger endpoints",
		Buckets:   buckets,
	}
	decompressedOpts := prometheus.HistogramOpts{
		Name:      "payload_decompressed_bytes",
		Namespace: namespaceHistory,
		Help:      "size of payloads received from ledger endpoints after decompression",
		Buckets:   buckets,
	}

	c := Codec{
		Codec:        codec,
		compressed:   factory.NewHistogramVec(compressedOpts, []string{"type"}),
		decompressed: factory.NewHistogramVec(decompressedOpts, []string{"type"}),
	}

	return &c
}

func (c *Codec) Unmarshal(compressed []byte, value interface{}) error {
	data, err := c.Decompress(compressed)
	if err != nil {
		return fmt.Errorf("could not decompress data: %w", err)
	}
	err = c.Decode(data, value)
	if err != nil {
		return fmt.Errorf("could not decode value: %w", err)
	}
	name := "unknown"
	switch value.(type) {
	case *history.Block:
		name = "block"
	case *history.TipOfChain:
		name = "tip"
	}
	c.compressed.WithLabelValues(name).Observe(float64(len(compressed)))
	c.decompressed.WithLabelValues(name).Observe(float64(len(data)))
	return nil
}
