package main

import (
	"os"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Extract UI causality flows from a file or directory",
	Long:  "Parses the given Rust file (or every .rs file under the given directory) and prints the extracted UI elements, actions, mutations, and causality flows.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var flagFlowsOnly bool

func init() {
	analyzeCmd.Flags().BoolVar(&flagFlowsOnly, "flows-only", false, "print only causality flows, not the flat inventories")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := analyzeTarget(cmd, e, args[0])
	if err != nil {
		return err
	}

	if flagFormat == "json" {
		if flagFlowsOnly {
			return writeJSON(os.Stdout, res.AllFlows())
		}
		return writeJSON(os.Stdout, res)
	}

	formatAnalysisText(os.Stdout, res, flagFlowsOnly)
	return nil
}
