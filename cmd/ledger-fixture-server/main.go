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

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"

	grpczerolog "github.com/grpc-ecosystem/go-grpc-middleware/providers/zerolog/v2"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/tags"

	"github.com/optakt/ledger-history/api/ledger"
	"github.com/optakt/ledger-history/codec/zbor"
	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/index"
	"github.com/optakt/ledger-history/service/metrics"
	"github.com/optakt/ledger-history/service/storage"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagAddress  string
		flagArchive  string
		flagBelow    uint64
		flagData     string
		flagFirst    uint64
		flagGenerate uint64
		flagLevel    string
		flagMetrics  string
	)

	pflag.StringVarP(&flagAddress, "address", "a", "127.0.0.1:5006", "bind address for serving the ledger API")
	pflag.StringVar(&flagArchive, "archive", "", "archive endpoint to redirect lookups below the first height to")
	pflag.Uint64Var(&flagBelow, "below", 0, "height below which lookups are redirected (defaults to the first height)")
	pflag.StringVarP(&flagData, "data", "d", "ledger", "path to database directory for the fixture ledger")
	pflag.Uint64VarP(&flagFirst, "first", "f", 0, "height of the first block held by this ledger")
	pflag.Uint64VarP(&flagGenerate, "generate", "g", 0, "number of synthetic blocks to generate on startup")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "bind address for serving prometheus metrics (disabled if empty)")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// Open the fixture database.
	db, err := badger.Open(storage.DefaultOptions(flagData))
	if err != nil {
		log.Error().Str("data", flagData).Err(err).Msg("could not open ledger DB")
		return failure
	}
	defer db.Close()

	codec := zbor.NewCodec()
	lib := storage.New(codec)

	// Seed the database when asked to.
	writer := index.NewWriter(db, lib, codec)
	if flagGenerate > 0 {
		err = writer.First(flagFirst)
		if err != nil {
			log.Error().Err(err).Msg("could not write first height")
			return failure
		}
		err = index.Generate(writer, flagFirst, flagGenerate)
		if err != nil {
			log.Error().Err(err).Msg("could not generate blocks")
			return failure
		}
		log.Info().Uint64("first", flagFirst).Uint64("count", flagGenerate).Msg("synthetic blocks generated")
	}
	if flagArchive != "" {
		below := flagBelow
		if below == 0 {
			below = flagFirst
		}
		err = writer.Redirect(below, history.Endpoint(flagArchive))
		if err != nil {
			log.Error().Err(err).Msg("could not write redirect")
			return failure
		}
		log.Info().Uint64("below", below).Str("archive", flagArchive).Msg("archive redirect configured")
	}

	var msvr *metrics.Server
	if flagMetrics != "" {
		err = metrics.RegisterBadgerMetrics()
		if err != nil {
			log.Error().Err(err).Msg("could not register badger metrics")
			return failure
		}
		msvr = metrics.NewServer(log, flagMetrics)
	}

	// GRPC API initialization.
	opts := []logging.Option{
		logging.WithLevels(logging.DefaultServerCodeToLevel),
	}
	gsvr := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			tags.UnaryServerInterceptor(),
			logging.UnaryServerInterceptor(grpczerolog.InterceptorLogger(log), opts...),
		),
	)
	server := ledger.NewServer(log, db, lib)
	ledger.RegisterLedgerServer(gsvr, server)

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	listener, err := net.Listen("tcp", flagAddress)
	if err != nil {
		log.Error().Str("address", flagAddress).Err(err).Msg("could not create listener")
		return failure
	}
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Str("address", flagAddress).Msg("Ledger Fixture Server starting")
		err := gsvr.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("Ledger Fixture Server failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("Ledger Fixture Server stopped")
	}()
	if msvr != nil {
		go func() {
			err := msvr.Start()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn().Err(err).Msg("metrics server failed")
			}
		}()
	}

	select {
	case <-sig:
		log.Info().Msg("Ledger Fixture Server stopping")
	case <-done:
		log.Info().Msg("Ledger Fixture Server done")
	case <-failed:
		log.Warn().Msg("Ledger Fixture Server aborted")
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	gsvr.GracefulStop()

	if msvr != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = msvr.Stop(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not shut down metrics server")
			return failure
		}
	}

	return success
}
