package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapjar/pkg/bridge"
	"swapjar/pkg/jar"
	"swapjar/pkg/types"
)

type fakeMonitor struct {
	result *types.SwapStatusResult
	err    error
}

func (f *fakeMonitor) Status(ctx context.Context, swapID string) (*types.SwapStatusResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestServer(t *testing.T, monitor StatusMonitor) *Server {
	t.Helper()

	jars, err := jar.NewStorage(filepath.Join(t.TempDir(), "jars.json"))
	require.NoError(t, err)

	// Orchestrator with no ledger: simulation mode
	orchestrator := bridge.NewOrchestrator(decimal.NewFromFloat(0.02), nil, nil)
	if monitor == nil {
		monitor = &fakeMonitor{result: &types.SwapStatusResult{Status: types.SwapInitiated, Events: []types.SwapEvent{}}}
	}

	return New(orchestrator, monitor, nil, jars, "testnet")
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestBridgeHandlerSimulatedScenario(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, "POST", "/api/bridge", types.PayoutRequest{
		EthereumTxHash:   "0xabc",
		SourceChain:      1,
		Amount:           "100",
		StellarRecipient: "G" + strings.Repeat("A", 55),
		TargetAsset:      types.AssetXLM,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp bridgeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, types.BridgeSimulated, resp.Status)
	assert.Equal(t, "98", resp.StellarDelivery.EstimatedAmount)
	assert.Empty(t, resp.StellarDelivery.ActualAmount)
	assert.Equal(t, "XLM", resp.StellarDelivery.Asset)
	assert.Equal(t, "0xabc", resp.Tracking.EthereumTx)
	assert.Equal(t, resp.BridgeID, resp.Tracking.BridgeID)
	assert.NotEmpty(t, resp.Message)
}

func TestBridgeHandlerMissingFields(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, "POST", "/api/bridge", map[string]interface{}{
		"amount": "100",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.Success)
	assert.ElementsMatch(t, []string{"ethereumTxHash", "sourceChain", "stellarRecipient"}, resp.MissingFields)
}

func TestBridgeHandlerBadBody(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest("POST", "/api/bridge", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwapStatusHandler(t *testing.T) {
	now := time.Now()
	monitor := &fakeMonitor{result: &types.SwapStatusResult{
		SwapID: "swap-42",
		Status: types.SwapRedeemed,
		Events: []types.SwapEvent{
			{ID: "1", Hash: "h1", Memo: "REDEEM: swap-42", CreatedAt: now},
			{ID: "2", Hash: "h2", Memo: "SWAP: swap-42", CreatedAt: now.Add(-time.Hour)},
		},
		LatestEvent: &types.SwapEvent{ID: "1", Hash: "h1", Memo: "REDEEM: swap-42", CreatedAt: now},
	}}
	srv := newTestServer(t, monitor)

	rec := doJSON(t, srv, "GET", "/api/swap/swap-42/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "swap-42", resp.SwapID)
	assert.Equal(t, types.SwapRedeemed, resp.Status)
	require.Len(t, resp.Events, 2)
	require.NotNil(t, resp.LatestEvent)
	assert.Equal(t, "REDEEM: swap-42", resp.LatestEvent.Memo)
}

func TestSwapStatusHandlerLedgerFailure(t *testing.T) {
	monitor := &fakeMonitor{err: &bridge.LedgerUnavailableError{Err: assert.AnError}}
	srv := newTestServer(t, monitor)

	rec := doJSON(t, srv, "GET", "/api/swap/swap-42/status", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTokensHandlerWithoutQuoteAPI(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, "GET", "/api/tokens", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChainsHandler(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, "GET", "/api/chains", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Chains  []struct {
			Name string `json:"name"`
		} `json:"chains"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Chains)
}

func TestJarLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, "POST", "/api/jars", map[string]interface{}{
		"slug":           "coffee-fund",
		"name":           "Coffee Fund",
		"stellarAddress": "G" + strings.Repeat("A", 55),
		"preferredAsset": "USDC",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Success bool     `json:"success"`
		Jar     *jar.Jar `json:"jar"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Jar)

	// Fetch by slug
	rec = doJSON(t, srv, "GET", "/api/jars/coffee-fund", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Fetch by ID
	rec = doJSON(t, srv, "GET", "/api/jars/"+created.Jar.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Unknown jar
	rec = doJSON(t, srv, "GET", "/api/jars/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Invalid jar
	rec = doJSON(t, srv, "POST", "/api/jars", map[string]interface{}{
		"slug": "bad jar",
		"name": "Bad",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "testnet", resp["network"])
	assert.Equal(t, true, resp["simulation"])
}
