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
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/optakt/ledger-history/models/history"
)

// Global variables that can be used for testing. They are non-nil valid values
// for the types commonly needed to test the proxy components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericHeight = uint64(42)

	GenericBytes = []byte(`test`)

	GenericPrimary = history.Endpoint("127.0.0.1:8001")
	GenericArchive = history.Endpoint("127.0.0.1:8002")

	GenericCertification = []byte{0xca, 0xfe, 0xba, 0xbe}

	GenericBlock = &history.Block{
		ParentHash: []byte{0x01, 0x02, 0x03, 0x04},
		Transaction: history.Transaction{
			Operation: history.Operation{
				Kind:   "transfer",
				From:   []byte(`alice`),
				To:     []byte(`bob`),
				Amount: 1000,
				Fee:    10,
			},
			Memo:      7,
			CreatedAt: time.Date(1972, 11, 12, 13, 14, 15, 0, time.UTC),
		},
		Timestamp: time.Date(1972, 11, 12, 13, 14, 16, 0, time.UTC),
	}
)
