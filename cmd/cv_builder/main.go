// Package main provides the entry point for the CV Builder CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_builder",
	Short: "CV Builder CLI and API server",
	Long:  "CV Builder authors sectioned CVs against HTML templates, persists them to a document store, and exports them as PDF, with optional AI-assisted content generation.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
