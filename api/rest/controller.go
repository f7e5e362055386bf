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

package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	api "github.com/optakt/ledger-history/api/history"
	"github.com/optakt/ledger-history/models/history"
)

// Header names describing the caller of a donation.
const (
	HeaderCaller  = "X-Caller"
	HeaderOffered = "X-Cycles-Offered"
)

// Controller exposes the ledger history operations over HTTP.
type Controller struct {
	resolver history.Resolver
	tracker  history.Tracker
	wallet   history.Wallet
	validate *validator.Validate
}

func NewController(resolver history.Resolver, tracker history.Tracker, wallet history.Wallet) *Controller {
	c := &Controller{
		resolver: resolver,
		tracker:  tracker,
		wallet:   wallet,
		validate: validator.New(),
	}
	return c
}

// Register adds the routes of the controller to the given server.
func (c *Controller) Register(server *echo.Echo) {
	server.GET("/block/:height", c.GetBlock)
	server.GET("/tip", c.GetTip)
	server.POST("/wallet/receive", c.PostWalletReceive)
	server.GET("/cycles", c.GetCycles)
	server.GET("/interface", c.GetInterface)
}

func (c *Controller) GetBlock(ctx echo.Context) error {

	height, err := strconv.ParseUint(ctx.Param("height"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	block, err := c.resolver.Block(ctx.Request().Context(), height)
	if err != nil {
		return echo.NewHTTPError(statusCode(err), err.Error())
	}

	res := BlockResponse{
		Height: height,
		Block:  block,
	}

	return ctx.JSON(http.StatusOK, res)
}

func (c *Controller) GetTip(ctx echo.Context) error {

	tip, err := c.tracker.Tip(ctx.Request().Context())
	if err != nil {
		return echo.NewHTTPError(statusCode(err), err.Error())
	}

	return ctx.JSON(http.StatusOK, tip)
}

func (c *Controller) PostWalletReceive(ctx echo.Context) error {

	caller := ctx.Request().Header.Get(HeaderCaller)
	if caller == "" {
		caller = ctx.RealIP()
	}
	call, err := api.ParseCall(caller, ctx.Request().Header.Get(HeaderOffered), c.validate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := WalletReceiveResponse{
		Accepted: c.wallet.Receive(call),
	}

	return ctx.JSON(http.StatusOK, res)
}

func (c *Controller) GetCycles(ctx echo.Context) error {

	res := CyclesResponse{
		Balance: c.wallet.Balance(),
	}

	return ctx.JSON(http.StatusOK, res)
}

func (c *Controller) GetInterface(ctx echo.Context) error {
	return ctx.String(http.StatusOK, api.Description)
}

func statusCode(err error) int {
	var transportErr *history.TransportError
	var redirectErr *history.UnresolvedRedirectError
	switch {
	case errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &redirectErr):
		return http.StatusConflict
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
