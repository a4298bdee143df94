package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ynishi/eguicha/internal/script"
)

var flagScript string

var reportCmd = &cobra.Command{
	Use:   "report <path>",
	Short: "Run a Risor report script over analysis results",
	Long:  "Analyzes the target and executes the given Risor script with the results bound as the 'analysis' global. If the script evaluates to a string it is written to stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagScript, "script", "", "Risor report script to execute (required)")
	reportCmd.MarkFlagRequired("script")
}

func runReport(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := analyzeTarget(cmd, e, args[0])
	if err != nil {
		return err
	}

	rt := script.NewRuntime(filepath.Dir(flagScript))
	return rt.RunReport(cmd.Context(), filepath.Base(flagScript), res, os.Stdout)
}
