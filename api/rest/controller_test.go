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

package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/optakt/ledger-history/api/history"
	"github.com/optakt/ledger-history/api/rest"
	"github.com/optakt/ledger-history/models/history"
	"github.com/optakt/ledger-history/testing/mocks"
)

func TestController_GetBlock(t *testing.T) {
	tests := []struct {
		desc   string
		height string

		resolverErr error

		wantStatus  int
		wantMessage []string
		wantErr     assert.ErrorAssertionFunc
	}{
		{
			desc:       "nominal case",
			height:     "42",
			wantStatus: http.StatusOK,
			wantErr:    assert.NoError,
		},
		{
			desc:        "invalid height",
			height:      "notanumber",
			wantStatus:  http.StatusBadRequest,
			wantMessage: []string{"notanumber"},
			wantErr:     assert.Error,
		},
		{
			desc:        "block not found",
			height:      "42",
			resolverErr: fmt.Errorf("could not find block: %w", history.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: []string{history.ErrNotFound.Error()},
			wantErr:     assert.Error,
		},
		{
			desc:        "unresolved redirect",
			height:      "42",
			resolverErr: &history.UnresolvedRedirectError{Archive: mocks.GenericArchive, Target: mocks.GenericPrimary},
			wantStatus:  http.StatusConflict,
			wantMessage: []string{string(mocks.GenericArchive), string(mocks.GenericPrimary)},
			wantErr:     assert.Error,
		},
		{
			desc:        "transport failure",
			height:      "42",
			resolverErr: &history.TransportError{Endpoint: mocks.GenericPrimary, Method: history.MethodBlock, Err: mocks.GenericError},
			wantStatus:  http.StatusBadGateway,
			wantMessage: []string{string(mocks.GenericPrimary), history.MethodBlock, mocks.GenericError.Error()},
			wantErr:     assert.Error,
		},
		{
			desc:        "corrupted block",
			height:      "42",
			resolverErr: &history.DecodeError{Height: mocks.GenericHeight, Err: mocks.GenericError},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: []string{"42", mocks.GenericError.Error()},
			wantErr:     assert.Error,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/block/"+test.height, nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)
			ctx.SetPath("/block/:height")
			ctx.SetParamNames("height")
			ctx.SetParamValues(test.height)

			resolver := mocks.BaselineResolver(t)
			resolver.BlockFunc = func(_ context.Context, height history.Height) (*history.Block, error) {
				assert.Equal(t, mocks.GenericHeight, height)
				if test.resolverErr != nil {
					return nil, test.resolverErr
				}
				return mocks.GenericBlock, nil
			}
			c := rest.NewController(resolver, mocks.BaselineTracker(t), mocks.BaselineWallet(t))

			err := c.GetBlock(ctx)
			test.wantErr(t, err)

			if test.wantStatus != http.StatusOK {
				httpErr, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, test.wantStatus, httpErr.Code)
				message, ok := httpErr.Message.(string)
				require.True(t, ok)
				for _, want := range test.wantMessage {
					assert.Contains(t, message, want)
				}
				return
			}

			assert.Equal(t, http.StatusOK, rec.Code)
			b, err := io.ReadAll(rec.Result().Body)
			require.NoError(t, err)
			var got rest.BlockResponse
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, mocks.GenericHeight, got.Height)
			assert.Equal(t, mocks.GenericBlock.Transaction.Operation, got.Block.Transaction.Operation)
		})
	}
}

func TestController_GetTip(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tip", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	c := rest.NewController(mocks.BaselineResolver(t), mocks.BaselineTracker(t), mocks.BaselineWallet(t))

	err := c.GetTip(ctx)
	require.NoError(t, err)

	var got history.TipOfChain
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, mocks.GenericCertification, got.Certification)
	assert.Equal(t, mocks.GenericHeight, got.TipIndex)
}

func TestController_PostWalletReceive(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/wallet/receive", nil)
		req.Header.Set(rest.HeaderCaller, "alice")
		req.Header.Set(rest.HeaderOffered, "1000")
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		wallet := mocks.BaselineWallet(t)
		wallet.ReceiveFunc = func(call history.Call) history.Amount {
			assert.Equal(t, history.Call{Caller: "alice", Offered: 1000}, call)
			return call.Offered
		}
		c := rest.NewController(mocks.BaselineResolver(t), mocks.BaselineTracker(t), wallet)

		err := c.PostWalletReceive(ctx)
		require.NoError(t, err)

		var got rest.WalletReceiveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, uint64(1000), got.Accepted)
	})

	t.Run("handles invalid amount", func(t *testing.T) {
		t.Parallel()

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/wallet/receive", nil)
		req.Header.Set(rest.HeaderCaller, "alice")
		req.Header.Set(rest.HeaderOffered, "plenty")
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		c := rest.NewController(mocks.BaselineResolver(t), mocks.BaselineTracker(t), mocks.BaselineWallet(t))

		err := c.PostWalletReceive(ctx)

		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestController_GetCycles(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cycles", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	c := rest.NewController(mocks.BaselineResolver(t), mocks.BaselineTracker(t), mocks.BaselineWallet(t))

	err := c.GetCycles(ctx)
	require.NoError(t, err)

	var got rest.CyclesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, mocks.GenericHeight, got.Balance)
}

func TestController_GetInterface(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/interface", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	c := rest.NewController(mocks.BaselineResolver(t), mocks.BaselineTracker(t), mocks.BaselineWallet(t))

	err := c.GetInterface(ctx)
	require.NoError(t, err)

	assert.Equal(t, api.Description, rec.Body.String())
}

func TestController_Register(t *testing.T) {
	e := echo.New()
	c := rest.NewController(mocks.BaselineResolver(t), mocks.BaselineTracker(t), mocks.BaselineWallet(t))
	c.Register(e)

	req := httptest.NewRequest(http.MethodGet, "/block/42", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestController_ErrorBody(t *testing.T) {
	tests := []struct {
		desc        string
		err         error
		wantStatus  int
		wantMessage []string
	}{
		{
			desc:        "transport failure",
			err:         &history.TransportError{Endpoint: mocks.GenericPrimary, Method: history.MethodBlock, Err: mocks.GenericError},
			wantStatus:  http.StatusBadGateway,
			wantMessage: []string{string(mocks.GenericPrimary), mocks.GenericError.Error()},
		},
		{
			desc:        "block not found",
			err:         fmt.Errorf("could not find block 3 on primary endpoint %s: %w", mocks.GenericPrimary, history.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: []string{string(mocks.GenericPrimary), history.ErrNotFound.Error()},
		},
		{
			desc:        "corrupted block",
			err:         &history.DecodeError{Height: 3, Err: mocks.GenericError},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: []string{mocks.GenericError.Error()},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			resolver := mocks.BaselineResolver(t)
			resolver.BlockFunc = func(context.Context, history.Height) (*history.Block, error) {
				return nil, test.err
			}

			e := echo.New()
			c := rest.NewController(resolver, mocks.BaselineTracker(t), mocks.BaselineWallet(t))
			c.Register(e)

			req := httptest.NewRequest(http.MethodGet, "/block/3", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, test.wantStatus, rec.Code)

			var got struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			for _, want := range test.wantMessage {
				assert.Contains(t, got.Message, want)
			}
		})
	}
}
