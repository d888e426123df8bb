package cmd

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"swapjar/config"
	"swapjar/pkg/bridge"
	"swapjar/pkg/ethereum"
	"swapjar/pkg/jar"
	"swapjar/pkg/quote"
	"swapjar/pkg/server"
	"swapjar/pkg/stellar"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the SwapJar API server",
	Long: `Start the HTTP API that accepts payout requests, answers swap status
queries, and proxies the quote aggregation API.

Without SWAPJAR_BRIDGE_SECRET the server runs in simulation mode: every
payout is answered with a non-executed preview.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Stellar client: needs either the secret (payouts) or just the
	// account address (status monitoring).
	var stellarClient *stellar.Client
	if cfg.BridgeSecret != "" || cfg.BridgeAccount != "" {
		stellarClient, err = stellar.NewClient(cfg)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
	}

	var payLedger bridge.Ledger
	var monLedger bridge.Ledger
	if stellarClient != nil {
		monLedger = stellarClient
		if stellarClient.CanPay() {
			payLedger = stellarClient
		}
	}

	var verifier bridge.TipVerifier
	if cfg.EthereumRPC != "" {
		v, err := ethereum.NewVerifier(cfg.EthereumRPC)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		defer v.Close()
		verifier = v
	}

	var quotes *quote.Client
	if cfg.QuoteJWT != "" {
		quotes = quote.NewClient(cfg.QuoteJWT, cfg.QuoteBaseURL)
	}

	jars, err := jar.NewStorage(cfg.JarStoragePath)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	orchestrator := bridge.NewOrchestrator(cfg.FeeFraction, payLedger, verifier)
	monitor := bridge.NewMonitor(monLedger, cfg.ScanLimit)
	srv := server.New(orchestrator, monitor, quotes, jars, cfg.Network)

	if orchestrator.SimulationMode() {
		log.Printf("no bridge credentials configured, payouts run in simulation mode")
	}

	log.Printf("SwapJar API running on :%s (network=%s)", cfg.Port, cfg.Network)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, srv.Router()))
}
