package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swapjar/config"
	"swapjar/pkg/bridge"
	"swapjar/pkg/stellar"
	"swapjar/pkg/types"
)

var (
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status <swap-id>",
	Short: "Check the status of a swap",
	Long: `Derive a swap's lifecycle status from the bridge account's transaction
memos on Stellar.

Examples:
  swapjar status 1755930000-a1b2c3d4
  swapjar status 1755930000-a1b2c3d4 --watch
  swapjar status 1755930000-a1b2c3d4 --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates continuously")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	swapID := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Create the ledger client and monitor
	ledger, err := stellar.NewClient(cfg)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	monitor := bridge.NewMonitor(ledger, cfg.ScanLimit)

	if watchStatus {
		watchSwapStatus(monitor, swapID, jsonOutput)
	} else {
		checkSwapStatus(monitor, swapID, jsonOutput)
	}
}

func checkSwapStatus(monitor *bridge.Monitor, swapID string, jsonOutput bool) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking swap status..."
		s.Start()
	}

	result, err := monitor.Status(context.Background(), swapID)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayStatus(result)
	}
}

func watchSwapStatus(monitor *bridge.Monitor, swapID string, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	fmt.Printf("\nWatching swap status (ID: %s)\n", color.CyanString(swapID))
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	// Check immediately first
	checkAndDisplayStatus(monitor, swapID)

	// Then check periodically
	for range ticker.C {
		checkAndDisplayStatus(monitor, swapID)
	}
}

func checkAndDisplayStatus(monitor *bridge.Monitor, swapID string) {
	result, err := monitor.Status(context.Background(), swapID)
	if err != nil {
		color.Red("Error: %v", err)
		return
	}

	displayStatus(result)
}

func displayStatus(result *types.SwapStatusResult) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        SWAP STATUS")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Swap ID: %s\n", color.CyanString(result.SwapID))
	fmt.Printf("  Status:  %s\n", getColoredStatus(result.Status))

	if result.LatestEvent != nil {
		fmt.Printf("  Latest:  %s\n", color.HiBlackString(result.LatestEvent.Hash))
		fmt.Printf("  Seen:    %s\n", result.LatestEvent.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if len(result.Events) > 0 {
		fmt.Printf("\n  Matching events (newest first):\n")
		for _, ev := range result.Events {
			fmt.Printf("    %s  %s\n",
				ev.CreatedAt.Format("2006-01-02 15:04:05"),
				color.YellowString(ev.Memo))
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func getColoredStatus(status types.SwapStatus) string {
	switch status {
	case types.SwapRedeemed:
		return color.GreenString(string(status))
	case types.SwapLocked:
		return color.YellowString(string(status))
	case types.SwapRefunded:
		return color.RedString(string(status))
	default:
		return color.CyanString(string(status))
	}
}
