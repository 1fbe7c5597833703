package main

import (
	"github.com/spf13/cobra"
)

var prioritizeFlags commonFlags

var prioritizeCmd = &cobra.Command{
	Use:   "prioritize",
	Short: "Rank candidate diseases from phenotype and genotype evidence",
	Long: `Full mode: phenotype LR summed with a genotype LR derived
from a VCF's predicted-pathogenic variant burden, when a VCF is available
either via --vcf or the phenopacket's vcf_path.`,
	RunE: runPrioritize,
}

func init() {
	registerCommonFlags(prioritizeCmd, &prioritizeFlags)
}

func runPrioritize(cmd *cobra.Command, args []string) error {
	return run(&prioritizeFlags, true)
}
