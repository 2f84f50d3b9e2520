// Package main provides the voice agent CLI and HTTP API server entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "voice_agent",
	Short: "Social voice agent",
	Long:  "Voice agent analyzes a social account's posting voice and generates on-voice content proposals, virality scores, and profile health reports via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
