package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "modeldiff",
	Short: "Structural diff tool for model files and configuration",
	Long: `Modeldiff compares structured documents (JSON/YAML) with model-aware
classification of tensor statistics and training metadata, and renders the
differences as text, JSON or YAML.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
