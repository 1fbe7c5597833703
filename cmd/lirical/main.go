// Command lirical is the CLI driver for the LIRICAL-go scoring engine,
// the external driver the scoring core is invoked from. It wires the
// load-time collaborators
// (ontology, corpus, gene index, background index) into the pure
// scoring core of internal/evaluator and renders the ranked result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "lirical",
	Short: "Rank candidate Mendelian diseases from phenotype and (optional) genomic evidence",
	Long: `lirical combines observed HPO phenotype terms with optional predicted-
pathogenic variant burden to produce a posterior-ranked list of candidate
Mendelian diseases for a single patient.`,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	SilenceUsage:      true,
}

func init() {
	rootCmd.AddCommand(phenotypeCmd)
	rootCmd.AddCommand(prioritizeCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lirical:", err)
		os.Exit(1)
	}
}
