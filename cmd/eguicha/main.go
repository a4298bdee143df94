package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ynishi/eguicha"
)

var (
	flagFormat string
	flagVocab  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "eguicha",
	Short:         "Static UI-causality analysis for egui code",
	Long:          "eguicha parses egui source with tree-sitter and extracts which UI element, on which action, causes which state mutations — without running the program.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagVocab, "vocab", "", "YAML vocabulary file overriding the egui defaults")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(reportCmd)
}

func validateFormat(format string) error {
	switch format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("invalid format %q (want json or text)", format)
	}
}

// newEngine builds an Engine honoring the --vocab flag plus any extra
// options from the caller.
func newEngine(opts ...eguicha.Option) (*eguicha.Engine, error) {
	if flagVocab != "" {
		v, err := eguicha.LoadVocabulary(flagVocab)
		if err != nil {
			return nil, err
		}
		opts = append(opts, eguicha.WithVocabulary(v))
	}
	return eguicha.New(opts...)
}

// analyzeTarget analyzes a file or directory path.
func analyzeTarget(cmd *cobra.Command, e *eguicha.Engine, target string) (*eguicha.ProjectAnalysis, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return e.AnalyzeDirectory(cmd.Context(), target)
	}
	fa, err := e.AnalyzeFile(cmd.Context(), target)
	if err != nil {
		return nil, err
	}
	return &eguicha.ProjectAnalysis{Files: []*eguicha.FileAnalysis{fa}}, nil
}
