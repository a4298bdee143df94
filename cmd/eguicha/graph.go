package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ynishi/eguicha/internal/report"
)

var flagView string

var graphCmd = &cobra.Command{
	Use:   "graph <path>",
	Short: "Render analysis results as a Mermaid flowchart",
	Long: `Renders a Mermaid flowchart on stdout. Views:

  flows    precise element -> action -> mutation graph (single file)
  file     flat inventory graph with context-based connections (single file)
  summary  layer summary across all analyzed files`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&flagView, "view", "flows", "graph view: flows|file|summary")
}

func runGraph(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := analyzeTarget(cmd, e, args[0])
	if err != nil {
		return err
	}

	switch flagView {
	case "summary":
		fmt.Fprintln(os.Stdout, report.SummaryChart(res))
	case "flows", "file":
		if len(res.Files) != 1 {
			return fmt.Errorf("view %q needs a single file, got %d (use --view summary for directories)", flagView, len(res.Files))
		}
		if flagView == "flows" {
			fmt.Fprintln(os.Stdout, report.FlowChart(res.Files[0]))
		} else {
			fmt.Fprintln(os.Stdout, report.FileChart(res.Files[0]))
		}
	default:
		return fmt.Errorf("invalid view %q (want flows, file, or summary)", flagView)
	}
	return nil
}
