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
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	api "github.com/optakt/ledger-history/api/history"
)

const (
	success = 0
	failure = 1
)

const usage = `usage: ledger-history-client [flags] <block|tip|donate|cycles|interface>`

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagAPI     string
		flagCaller  string
		flagHeight  uint64
		flagLevel   string
		flagOffered uint64
		flagTimeout time.Duration
	)

	pflag.StringVarP(&flagAPI, "api", "a", "127.0.0.1:5005", "host for GRPC API server")
	pflag.StringVarP(&flagCaller, "caller", "c", "", "caller identity to donate under (defaults to the connection address)")
	pflag.Uint64VarP(&flagHeight, "height", "h", 0, "block height to look up")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.Uint64VarP(&flagOffered, "offered", "o", 0, "amount of cycles to offer with a donation")
	pflag.DurationVarP(&flagTimeout, "timeout", "t", 30*time.Second, "timeout for the request")

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

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		pflag.PrintDefaults()
		return failure
	}
	command := pflag.Arg(0)

	// Initialize the API client.
	conn, err := grpc.Dial(flagAPI, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Error().Str("api", flagAPI).Err(err).Msg("could not dial API host")
		return failure
	}
	defer conn.Close()
	client := api.NewClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()
	go func() {
		<-sig
		log.Warn().Msg("aborting request")
		cancel()
	}()

	var result interface{}
	switch command {
	case "block":
		result, err = client.Block(ctx, flagHeight)
	case "tip":
		result, err = client.Tip(ctx)
	case "donate":
		var accepted uint64
		accepted, err = client.Donate(ctx, flagCaller, flagOffered)
		result = map[string]uint64{"accepted": accepted}
	case "cycles":
		var balance uint64
		balance, err = client.Balance(ctx)
		result = map[string]uint64{"balance": balance}
	case "interface":
		var text string
		text, err = client.Interface(ctx)
		if err == nil {
			fmt.Print(text)
			return success
		}
	default:
		log.Error().Str("command", command).Msg("unknown command")
		fmt.Fprintln(os.Stderr, usage)
		return failure
	}
	if err != nil {
		log.Error().Str("command", command).Err(err).Msg("could not execute request")
		return failure
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("could not encode result")
		return failure
	}
	fmt.Println(string(output))

	return success
}
