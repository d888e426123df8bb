package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"swapjar/pkg/bridge"
	"swapjar/pkg/chains"
	"swapjar/pkg/jar"
	"swapjar/pkg/quote"
	"swapjar/pkg/types"
)

// stellarDelivery describes what arrives (or would arrive) on Stellar.
type stellarDelivery struct {
	Recipient       string `json:"recipient"`
	Asset           string `json:"asset"`
	ActualAmount    string `json:"actualAmount,omitempty"`
	EstimatedAmount string `json:"estimatedAmount,omitempty"`
	StellarTxHash   string `json:"stellarTxHash,omitempty"`
}

type tracking struct {
	EthereumTx string             `json:"ethereumTx"`
	BridgeID   string             `json:"bridgeId"`
	Status     types.BridgeStatus `json:"status"`
}

type bridgeResponse struct {
	Success         bool               `json:"success"`
	BridgeID        string             `json:"bridgeId"`
	Status          types.BridgeStatus `json:"status"`
	Message         string             `json:"message"`
	StellarTx       string             `json:"stellarTx,omitempty"`
	StellarDelivery stellarDelivery    `json:"stellarDelivery"`
	Tracking        tracking           `json:"tracking"`
}

type statusResponse struct {
	Success     bool              `json:"success"`
	SwapID      string            `json:"swapId"`
	Status      types.SwapStatus  `json:"status"`
	Events      []types.SwapEvent `json:"events"`
	LatestEvent *types.SwapEvent  `json:"latestEvent,omitempty"`
}

// BridgeHandler accepts a payout request and answers with a tracking
// record. Only validation errors produce a non-200 response; transfer
// failures come back as a simulated record with the reason in the message.
func (s *Server) BridgeHandler(w http.ResponseWriter, r *http.Request) {
	var req types.PayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := s.bridge.Initiate(r.Context(), req)
	if err != nil {
		var vErr *bridge.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error(), vErr.Fields...)
			return
		}
		log.Printf("[server] bridge initiation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "bridge initiation failed")
		return
	}

	asset := req.TargetAsset
	if asset == "" {
		asset = types.AssetXLM
	}

	resp := bridgeResponse{
		Success:  true,
		BridgeID: record.BridgeID,
		Status:   record.Status,
		StellarDelivery: stellarDelivery{
			Recipient: req.StellarRecipient,
			Asset:     string(asset),
		},
		Tracking: tracking{
			EthereumTx: req.EthereumTxHash,
			BridgeID:   record.BridgeID,
			Status:     record.Status,
		},
	}

	switch record.Status {
	case types.BridgeCompleted:
		resp.Message = fmt.Sprintf("Delivered %s %s to %s", record.NetAmount, asset, req.StellarRecipient)
		resp.StellarTx = record.StellarTxHash
		resp.StellarDelivery.ActualAmount = record.NetAmount
		resp.StellarDelivery.StellarTxHash = record.StellarTxHash
	default:
		resp.Message = record.Note
		resp.StellarDelivery.EstimatedAmount = record.NetAmount
	}

	writeJSON(w, http.StatusOK, resp)
}

// SwapStatusHandler reports the memo-derived lifecycle status for a swap.
func (s *Server) SwapStatusHandler(w http.ResponseWriter, r *http.Request) {
	swapID := mux.Vars(r)["swapId"]

	result, err := s.monitor.Status(r.Context(), swapID)
	if err != nil {
		var vErr *bridge.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error(), vErr.Fields...)
			return
		}
		log.Printf("[server] status query for %s failed: %v", swapID, err)
		writeError(w, http.StatusBadGateway, "ledger query failed")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Success:     true,
		SwapID:      result.SwapID,
		Status:      result.Status,
		Events:      result.Events,
		LatestEvent: result.LatestEvent,
	})
}

// TokensHandler proxies the aggregator's supported-token list.
func (s *Server) TokensHandler(w http.ResponseWriter, r *http.Request) {
	if s.quotes == nil {
		writeError(w, http.StatusServiceUnavailable, "quote API not configured")
		return
	}

	tokens, err := s.quotes.SupportedTokens(r.Context())
	if err != nil {
		log.Printf("[server] token listing failed: %v", err)
		writeError(w, http.StatusBadGateway, "failed to fetch supported tokens")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tokens":  tokens,
	})
}

// QuoteHandler proxies a swap quote for a tip, validating the payer's
// refund address against the source chain's grammar first.
func (s *Server) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	if s.quotes == nil {
		writeError(w, http.StatusServiceUnavailable, "quote API not configured")
		return
	}

	var req quote.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.RefundAddr != "" && req.SourceChain != "" {
		if chain, ok := chains.ByName(req.SourceChain); ok {
			if err := chains.ValidateAddress(chain, req.RefundAddr); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
	}

	resp, err := s.quotes.GetQuote(r.Context(), &req)
	if err != nil {
		log.Printf("[server] quote failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"quote":   resp,
	})
}

// ChainsHandler lists the source chains tips can arrive from.
func (s *Server) ChainsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"chains":  chains.Supported(),
	})
}

// createJarRequest is the inbound body for jar creation.
type createJarRequest struct {
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	StellarAddress string            `json:"stellarAddress"`
	PreferredAsset types.TargetAsset `json:"preferredAsset"`
}

// CreateJarHandler publishes a new tip jar.
func (s *Server) CreateJarHandler(w http.ResponseWriter, r *http.Request) {
	var req createJarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	j := jar.NewJar(req.Slug, req.Name, req.StellarAddress, req.PreferredAsset)
	if err := s.jars.Create(j); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"jar":     j,
	})
}

// GetJarHandler fetches a jar by ID or public slug.
func (s *Server) GetJarHandler(w http.ResponseWriter, r *http.Request) {
	idOrSlug := mux.Vars(r)["idOrSlug"]

	j, err := s.jars.Get(idOrSlug)
	if err != nil {
		j, err = s.jars.GetBySlug(idOrSlug)
	}
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"jar":     j,
	})
}

// ListJarsHandler lists published jars.
func (s *Server) ListJarsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"jars":    s.jars.List(),
		"count":   s.jars.Count(),
	})
}

// HealthHandler reports liveness and whether payouts are simulated.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"status":     "ok",
		"network":    s.network,
		"simulation": s.bridge.SimulationMode(),
	})
}
