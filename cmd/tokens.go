package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swapjar/config"
	"swapjar/pkg/quote"
)

var (
	filterChain  string
	filterSymbol string
)

var tokensCmd = &cobra.Command{
	Use:     "list-tokens",
	Aliases: []string{"tokens", "ls"},
	Short:   "List all tokens payers can tip with",
	Long: `List all tokens supported by the quote aggregation API.

You can filter tokens by blockchain or symbol.

Examples:
  swapjar list-tokens
  swapjar list-tokens --chain solana
  swapjar list-tokens --symbol USDC`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterChain, "chain", "", "Filter by blockchain")
	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by token symbol")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if cfg.QuoteJWT == "" {
		printError(fmt.Errorf("quote API not configured, set SWAPJAR_QUOTE_JWT"))
		os.Exit(1)
	}

	quotes := quote.NewClient(cfg.QuoteJWT, cfg.QuoteBaseURL)

	// Get tokens with spinner
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching supported tokens..."
		s.Start()
	}

	tokens, err := quotes.SupportedTokens(context.Background())
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Apply filters
	filtered := tokens
	if filterChain != "" {
		var temp []oneclick.TokenResponse
		for _, token := range filtered {
			if strings.EqualFold(token.GetBlockchain(), filterChain) {
				temp = append(temp, token)
			}
		}
		filtered = temp
	}

	if filterSymbol != "" {
		var temp []oneclick.TokenResponse
		for _, token := range filtered {
			if strings.Contains(strings.ToUpper(token.GetSymbol()), strings.ToUpper(filterSymbol)) {
				temp = append(temp, token)
			}
		}
		filtered = temp
	}

	// Output
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(filtered, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayTokens(filtered)
	}
}

func displayTokens(tokens []oneclick.TokenResponse) {
	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	color.Green("                            SUPPORTED TOKENS")
	fmt.Println(strings.Repeat("=", 90))

	// Group tokens by blockchain
	tokensByChain := make(map[string][]oneclick.TokenResponse)
	for _, token := range tokens {
		chain := token.GetBlockchain()
		tokensByChain[chain] = append(tokensByChain[chain], token)
	}

	// Sort chains alphabetically
	chainNames := make([]string, 0, len(tokensByChain))
	for chain := range tokensByChain {
		chainNames = append(chainNames, chain)
	}
	sort.Strings(chainNames)

	// Display tokens grouped by chain
	for _, chain := range chainNames {
		color.Cyan("\n%s", strings.ToUpper(chain))
		fmt.Println(strings.Repeat("-", 90))

		for _, token := range tokensByChain[chain] {
			symbol := token.GetSymbol()
			decimals := token.GetDecimals()
			address := token.GetContractAddress()

			// Truncate address if too long
			if len(address) > 40 {
				address = address[:37] + "..."
			}

			fmt.Printf("  %-10s  %2.0f decimals  %s\n",
				color.YellowString(symbol),
				decimals,
				color.HiBlackString(address))
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	fmt.Printf("\nTotal: %d tokens across %d blockchains\n\n", len(tokens), len(chainNames))
}
