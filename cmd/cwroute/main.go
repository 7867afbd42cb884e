package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Flags fall back to the same environment keys as the server.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
