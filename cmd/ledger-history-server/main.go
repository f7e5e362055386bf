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

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc"

	grpczerolog "github.com/grpc-ecosystem/go-grpc-middleware/providers/zerolog/v2"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/tags"

	api "github.com/optakt/ledger-history/api/history"
	"github.com/optakt/ledger-history/api/ledger"
	"github.com/optakt/ledger-history/api/rest"
	"github.com/optakt/ledger-history/codec/zbor"
	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/service/metrics"
	"github.com/optakt/ledger-history/service/resolver"
	"github.com/optakt/ledger-history/service/trace"
	"github.com/optakt/ledger-history/service/tracker"
	"github.com/optakt/ledger-history/service/wallet"
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
		flagAddress string
		flagREST    string
		flagMetrics string
		flagLedger  string
		flagTimeout time.Duration
		flagLevel   string
		flagTracing bool
		flagBalance uint64
	)

	pflag.StringVarP(&flagAddress, "address", "a", "127.0.0.1:5005", "bind address for serving the gRPC API")
	pflag.StringVarP(&flagREST, "rest", "r", "", "bind address for serving the REST API (disabled if empty)")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "bind address for serving prometheus metrics (disabled if empty)")
	pflag.StringVarP(&flagLedger, "ledger", "e", "127.0.0.1:5006", "address of the primary ledger endpoint")
	pflag.DurationVar(&flagTimeout, "timeout", 10*time.Second, "timeout for each remote call to a ledger endpoint (0 for none)")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.BoolVarP(&flagTracing, "tracing", "t", false, "enable tracing for this instance")
	pflag.Uint64Var(&flagBalance, "balance", 0, "initial resource balance of the proxy")

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

	// Tracing is optional; without it, spans go nowhere.
	var tracer trace.Tracer = trace.NewNoopTracer()
	if flagTracing {
		tracer, err = metrics.NewTracer(log, "ledger-history", attribute.String("ledger.primary", flagLedger))
		if err != nil {
			log.Error().Err(err).Msg("could not initialize tracer")
			return failure
		}
	}

	// Backend initialization. All remote calls go through a single gateway,
	// instrumented so that every hop shows up in the metrics.
	gateway := ledger.NewGateway(log, ledger.WithTimeout(flagTimeout))
	defer func() {
		err := gateway.Close()
		if err != nil {
			log.Error().Err(err).Msg("could not close ledger connections")
		}
	}()
	instrumented := metrics.NewGateway(gateway, prometheus.DefaultRegisterer)
	primary := history.Endpoint(flagLedger)

	codec := metrics.NewCodec(zbor.NewCodec(), prometheus.DefaultRegisterer)
	resolve := resolver.New(log, instrumented, codec, primary, resolver.WithTracer(tracer))
	track := tracker.NewTip(log, instrumented, primary, tracker.WithTracer(tracer))
	reserve := wallet.NewReserve(flagBalance)
	accountant := wallet.New(log, reserve)

	// GRPC API initialization.
	opts := []logging.Option{
		logging.WithLevels(logging.DefaultServerCodeToLevel),
	}
	gsvr := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			tags.UnaryServerInterceptor(),
			logging.UnaryServerInterceptor(grpczerolog.InterceptorLogger(log), opts...),
		),
		grpc.ChainStreamInterceptor(
			tags.StreamServerInterceptor(),
			logging.StreamServerInterceptor(grpczerolog.InterceptorLogger(log), opts...),
		),
	)
	server := api.NewServer(log, resolve, track, accountant, api.WithTracer(tracer))
	api.RegisterAPIServer(gsvr, server)

	// REST API initialization.
	var esvr *echo.Echo
	if flagREST != "" {
		elog := lecho.From(log)
		esvr = echo.New()
		esvr.HideBanner = true
		esvr.HidePort = true
		esvr.Logger = elog
		esvr.Use(lecho.Middleware(lecho.Config{Logger: elog}))
		ctrl := rest.NewController(resolve, track, accountant)
		ctrl.Register(esvr)
	}

	var msvr *metrics.Server
	if flagMetrics != "" {
		msvr = metrics.NewServer(log, flagMetrics)
	}

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
		log.Info().Str("address", flagAddress).Str("ledger", flagLedger).Msg("Ledger History Server starting")
		err := gsvr.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("Ledger History Server failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("Ledger History Server stopped")
	}()
	if esvr != nil {
		go func() {
			log.Info().Str("address", flagREST).Msg("REST API starting")
			err := esvr.Start(flagREST)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn().Err(err).Msg("REST API failed")
			}
			log.Info().Msg("REST API stopped")
		}()
	}
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
		log.Info().Msg("Ledger History Server stopping")
	case <-done:
		log.Info().Msg("Ledger History Server done")
	case <-failed:
		log.Warn().Msg("Ledger History Server aborted")
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// The following code starts a shut down with a certain timeout and makes
	// sure that the main executing components are shutting down within the
	// allocated shutdown time. Otherwise, we will force the shutdown and log
	// an error. We then wait for shutdown on each component to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gsvr.GracefulStop()

	if esvr != nil {
		err = esvr.Shutdown(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not shut down REST API")
			return failure
		}
	}
	if msvr != nil {
		err = msvr.Stop(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not shut down metrics server")
			return failure
		}
	}

	<-tracer.Done()

	return success
}
