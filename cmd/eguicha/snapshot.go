package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ynishi/eguicha"
)

var flagDB string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <path>",
	Short: "Analyze and persist a run to the snapshot database",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted snapshot runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	snapshotCmd.Flags().StringVar(&flagDB, "db", "eguicha.db", "snapshot database path")
	runsCmd.Flags().StringVar(&flagDB, "db", "eguicha.db", "snapshot database path")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	e, err := newEngine(eguicha.WithSnapshotDB(flagDB))
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := analyzeTarget(cmd, e, args[0])
	if err != nil {
		return err
	}

	runID, err := e.Snapshot(args[0], res)
	if err != nil {
		return err
	}

	if flagFormat == "json" {
		return writeJSON(os.Stdout, map[string]any{
			"run_id": runID,
			"files":  len(res.Files),
			"flows":  len(res.AllFlows()),
		})
	}
	fmt.Printf("Saved run %s (%d file(s), %d flow(s))\n", runID, len(res.Files), len(res.AllFlows()))
	return nil
}

func runRuns(cmd *cobra.Command, args []string) error {
	e, err := eguicha.New(eguicha.WithSnapshotDB(flagDB))
	if err != nil {
		return err
	}
	defer e.Close()

	runs, err := e.Store().Runs()
	if err != nil {
		return err
	}
	if flagFormat == "json" {
		return writeJSON(os.Stdout, runs)
	}
	formatRunsText(os.Stdout, runs)
	return nil
}
