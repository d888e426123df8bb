package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"swapjar/cmd"
)

func main() {
	// .env is optional; server deployments configure via the environment
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
