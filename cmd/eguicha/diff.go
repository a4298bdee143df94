package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ynishi/eguicha"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-run> <new-run>",
	Short: "Diff the flows of two snapshot runs",
	Long:  "Compares two persisted runs and reports which causality flows were added and which were removed. Useful for catching unintended UI behavior changes across refactors.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&flagDB, "db", "eguicha.db", "snapshot database path")
}

func runDiff(cmd *cobra.Command, args []string) error {
	e, err := eguicha.New(eguicha.WithSnapshotDB(flagDB))
	if err != nil {
		return err
	}
	defer e.Close()

	diff, err := e.Store().DiffRuns(args[0], args[1])
	if err != nil {
		return err
	}

	if flagFormat == "json" {
		return writeJSON(os.Stdout, diff)
	}
	formatDiffText(os.Stdout, diff)
	return nil
}
