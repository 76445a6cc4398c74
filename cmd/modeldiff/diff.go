package main

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/modeldiff/modeldiff/pkg/bridge"
	"github.com/modeldiff/modeldiff/pkg/diff"
	"github.com/spf13/cobra"
)

var (
	diffFormat     string
	diffEpsilon    float64
	diffIgnoreKeys string
	diffPathFilter string
	diffArrayIDKey string
	diffRecords    bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Compare two JSON or YAML files or directories",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "text", "Output format (text, json, yaml)")
	diffCmd.Flags().Float64Var(&diffEpsilon, "epsilon", 0, "Tolerance for numeric comparison")
	diffCmd.Flags().StringVar(&diffIgnoreKeys, "ignore-keys", "", "Regex for keys to ignore")
	diffCmd.Flags().StringVar(&diffPathFilter, "path-filter", "", "Only report differences in paths containing this string")
	diffCmd.Flags().StringVar(&diffArrayIDKey, "array-id-key", "", "Key used to align array elements")
	diffCmd.Flags().BoolVar(&diffRecords, "records", false, "Print wire records as JSON instead of formatted output")

	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	// The wire record path goes through the bridge; it only carries the
	// decodable subset of variants, which is exactly what hosts consuming
	// records can handle.
	if diffRecords {
		records, err := bridge.Default().DiffPaths(args[0], args[1], bridgeOptions(cmd))
		if err != nil {
			return err
		}
		output, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling records: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	opts, format, err := engineOptions(cmd)
	if err != nil {
		return err
	}

	engine := diff.New()
	results, err := engine.DiffPaths(args[0], args[1], opts)
	if err != nil {
		return err
	}

	output, err := engine.Format(results, format)
	if err != nil {
		return err
	}
	printOutput(cmd, output)
	return nil
}

func bridgeOptions(cmd *cobra.Command) *bridge.Options {
	opts := &bridge.Options{}
	if cmd.Flags().Changed("epsilon") {
		opts.Epsilon = &diffEpsilon
	}
	if diffIgnoreKeys != "" {
		opts.IgnoreKeysRegex = &diffIgnoreKeys
	}
	if diffPathFilter != "" {
		opts.PathFilter = &diffPathFilter
	}
	if diffArrayIDKey != "" {
		opts.ArrayIDKey = &diffArrayIDKey
	}
	return opts
}

func engineOptions(cmd *cobra.Command) (*diff.Options, diff.OutputFormat, error) {
	format, err := diff.ParseFormat(diffFormat)
	if err != nil {
		return nil, format, err
	}

	opts := &diff.Options{Format: &format}
	if cmd.Flags().Changed("epsilon") {
		opts.Epsilon = &diffEpsilon
	}
	if diffIgnoreKeys != "" {
		pattern, err := regexp.Compile(diffIgnoreKeys)
		if err != nil {
			return nil, format, fmt.Errorf("invalid regex: %w", err)
		}
		opts.IgnoreKeys = pattern
	}
	if diffPathFilter != "" {
		opts.PathFilter = &diffPathFilter
	}
	if diffArrayIDKey != "" {
		opts.ArrayIDKey = &diffArrayIDKey
	}
	return opts, format, nil
}

func printOutput(cmd *cobra.Command, output string) {
	fmt.Fprint(cmd.OutOrStdout(), output)
	if output != "" && output[len(output)-1] != '\n' {
		fmt.Fprintln(cmd.OutOrStdout())
	}
}
