package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Network selects which Stellar network the bridge operates against.
const (
	NetworkTestnet = "testnet"
	NetworkPublic  = "public"
)

// Config holds the application configuration. It is loaded once at process
// start and injected into the components that need it; nothing reads it
// ad hoc mid-operation.
type Config struct {
	// HTTP API
	Port string

	// Stellar
	Network        string
	HorizonURL     string
	BridgeSecret   string // operating account secret seed; empty enables simulation mode
	BridgeAccount  string // operating account address, for status queries without the secret
	USDCIssuer     string
	FeeFraction    decimal.Decimal
	HorizonTimeout time.Duration
	ScanLimit      int // how many recent transactions a status query scans

	// Quote aggregation API
	QuoteJWT     string
	QuoteBaseURL string

	// Optional source-chain verification
	EthereumRPC string

	// Tip-jar registry
	JarStoragePath string
}

// Load reads configuration from environment variables and an optional
// config file.
func Load() (*Config, error) {
	viper.SetConfigName(".swapjar")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("port", "8080")
	viper.SetDefault("network", NetworkTestnet)
	viper.SetDefault("horizon_url", "https://horizon-testnet.stellar.org")
	viper.SetDefault("usdc_issuer", "GBBD47IF6LWK7P7MDEVSCWR7DPUWV3NY3DTQEVFL4NAT4AQH3ZLLFLA5")
	viper.SetDefault("fee_fraction", "0.02")
	viper.SetDefault("horizon_timeout", "15s")
	viper.SetDefault("scan_limit", 50)
	viper.SetDefault("quote_base_url", "https://1click.chaindefuser.com")

	// Read from environment variables
	viper.SetEnvPrefix("SWAPJAR")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	fee, err := decimal.NewFromString(viper.GetString("fee_fraction"))
	if err != nil {
		return nil, fmt.Errorf("invalid fee fraction: %w", err)
	}
	if fee.IsNegative() || fee.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("fee fraction must be in [0, 1), got %s", fee)
	}

	cfg := &Config{
		Port:           viper.GetString("port"),
		Network:        viper.GetString("network"),
		HorizonURL:     viper.GetString("horizon_url"),
		BridgeSecret:   viper.GetString("bridge_secret"),
		BridgeAccount:  viper.GetString("bridge_account"),
		USDCIssuer:     viper.GetString("usdc_issuer"),
		FeeFraction:    fee,
		HorizonTimeout: viper.GetDuration("horizon_timeout"),
		ScanLimit:      viper.GetInt("scan_limit"),
		QuoteJWT:       viper.GetString("quote_jwt"),
		QuoteBaseURL:   viper.GetString("quote_base_url"),
		EthereumRPC:    viper.GetString("ethereum_rpc"),
		JarStoragePath: viper.GetString("jar_storage_path"),
	}

	if cfg.Network != NetworkTestnet && cfg.Network != NetworkPublic {
		return nil, fmt.Errorf("network must be %q or %q, got %q", NetworkTestnet, NetworkPublic, cfg.Network)
	}

	return cfg, nil
}

// SimulationMode reports whether the bridge runs without operating-account
// credentials, answering every payout with a non-executed preview.
func (c *Config) SimulationMode() bool {
	return c.BridgeSecret == ""
}
