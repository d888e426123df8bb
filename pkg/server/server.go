package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"swapjar/pkg/jar"
	"swapjar/pkg/quote"
	"swapjar/pkg/types"
)

// Bridger initiates payouts. Satisfied by bridge.Orchestrator.
type Bridger interface {
	Initiate(ctx context.Context, req types.PayoutRequest) (*types.BridgeRecord, error)
	SimulationMode() bool
}

// StatusMonitor derives swap lifecycle status. Satisfied by bridge.Monitor.
type StatusMonitor interface {
	Status(ctx context.Context, swapID string) (*types.SwapStatusResult, error)
}

// Server is the SwapJar HTTP API.
type Server struct {
	router  *mux.Router
	bridge  Bridger
	monitor StatusMonitor
	quotes  *quote.Client // nil when the aggregation API is not configured
	jars    *jar.Storage
	network string
}

// New wires the API routes. quotes may be nil; the quote endpoints then
// answer 503.
func New(bridge Bridger, monitor StatusMonitor, quotes *quote.Client, jars *jar.Storage, network string) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		bridge:  bridge,
		monitor: monitor,
		quotes:  quotes,
		jars:    jars,
		network: network,
	}

	r := s.router
	r.HandleFunc("/api/bridge", s.BridgeHandler).Methods("POST")
	r.HandleFunc("/api/swap/{swapId}/status", s.SwapStatusHandler).Methods("GET")
	r.HandleFunc("/api/tokens", s.TokensHandler).Methods("GET")
	r.HandleFunc("/api/quote", s.QuoteHandler).Methods("POST")
	r.HandleFunc("/api/chains", s.ChainsHandler).Methods("GET")
	r.HandleFunc("/api/jars", s.CreateJarHandler).Methods("POST")
	r.HandleFunc("/api/jars", s.ListJarsHandler).Methods("GET")
	r.HandleFunc("/api/jars/{idOrSlug}", s.GetJarHandler).Methods("GET")
	r.HandleFunc("/api/health", s.HealthHandler).Methods("GET")

	return s
}

// Router exposes the configured handler for an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}
