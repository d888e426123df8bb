package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swapjar",
	Short: "Tip-jar bridge that converts cross-chain tips into Stellar payouts",
	Long: `swapjar runs the SwapJar API: recipients publish a tip-collection link,
payers send any supported token on any supported chain, and the bridge
delivers the recipient's preferred asset (XLM or USDC) on Stellar.

Examples:
  swapjar serve
  swapjar status <swap-id>
  swapjar list-tokens --chain ethereum`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
