package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ynishi/eguicha"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatAnalysisText prints per-file flow tables plus a summary line.
func formatAnalysisText(w io.Writer, res *eguicha.ProjectAnalysis, flowsOnly bool) {
	flows := res.AllFlows()
	formatFlowsText(w, flows)

	if !flowsOnly {
		fmt.Fprintf(w, "\n%d file(s), %d element(s), %d action(s), %d mutation(s), %d flow(s)\n",
			len(res.Files), len(res.AllElements()), len(res.AllActions()),
			len(res.AllMutations()), len(flows))
	}
}

// formatFlowsText formats flows as aligned columns.
func formatFlowsText(w io.Writer, flows []eguicha.UiFlow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCONTEXT\tELEMENT\tLABEL\tACTION\tMUTATIONS")
	for _, f := range flows {
		label := ""
		if f.UiElement.Label != nil {
			label = *f.UiElement.Label
		}
		var muts []string
		for _, m := range f.StateMutations {
			muts = append(muts, m.Target+" ("+m.MutationType+")")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			f.UiElement.FilePath, f.Context, f.UiElement.ElementType,
			label, f.Action.ActionType, strings.Join(muts, ", "))
	}
	tw.Flush()
}

// formatRunsText formats snapshot runs as aligned columns.
func formatRunsText(w io.Writer, runs []eguicha.Run) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tROOT\tFILES")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Root, r.FileCount)
	}
	tw.Flush()
}

// formatDiffText formats a run diff as added/removed flow lists.
func formatDiffText(w io.Writer, diff *eguicha.RunDiff) {
	fmt.Fprintf(w, "Comparing %s -> %s\n", diff.OldRun, diff.NewRun)
	fmt.Fprintf(w, "Added: %d, Removed: %d\n", len(diff.Added), len(diff.Removed))

	printRecords := func(header string, records []eguicha.FlowRecord) {
		if len(records) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s\n", header)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tCONTEXT\tELEMENT\tLABEL\tACTION\tMUTATIONS")
		for _, f := range records {
			label := ""
			if f.Label != nil {
				label = *f.Label
			}
			var muts []string
			for _, m := range f.Mutations {
				muts = append(muts, m.Target+" ("+m.MutationType+")")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				f.Path, f.Context, f.ElementType, label, f.ActionType,
				strings.Join(muts, ", "))
		}
		tw.Flush()
	}

	printRecords("Added flows:", diff.Added)
	printRecords("Removed flows:", diff.Removed)
}
