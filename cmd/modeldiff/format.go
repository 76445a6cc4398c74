package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/modeldiff/modeldiff/pkg/bridge"
	"github.com/spf13/cobra"
)

var formatName string

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Render previously captured wire records",
	Long: `Read a JSON array of wire records from a file (or stdin when no file
is given) and render it in the chosen output format.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVarP(&formatName, "format", "f", "text", "Output format (text, json, yaml)")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error

	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	var records []bridge.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing records: %w", err)
	}

	output, err := bridge.Default().FormatOutput(records, formatName)
	if err != nil {
		return err
	}
	printOutput(cmd, output)
	return nil
}
