package corpus

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/lirical-go/lirical/internal/domain"
)

// BackgroundGeneRate is the gene -> background pathogenic-allele rate
// table implementing domain.BackgroundGeneRate, the λ_bg operand of the
// genotype likelihood ratio's Poisson model. It is
// loaded separately from the disease corpus because the rate table's
// provenance (e.g. gnomAD allele-frequency aggregation) is independent
// of which diseases a gene happens to be linked to.
type BackgroundGeneRate struct {
	rate map[string]float64
}

// NewBackgroundGeneRate wraps a precomputed gene -> rate map.
func NewBackgroundGeneRate(rate map[string]float64) *BackgroundGeneRate {
	return &BackgroundGeneRate{rate: rate}
}

// Rate returns the background pathogenic-allele rate for a gene and
// whether the gene has a table entry at all; internal/genolr decides
// what a missing entry means for the Poisson likelihood ratio.
func (b *BackgroundGeneRate) Rate(geneID string) (float64, bool) {
	r, ok := b.rate[geneID]
	return r, ok
}

// LoadBackgroundGeneRate parses a tab-delimited geneID\trate stream.
func LoadBackgroundGeneRate(r io.Reader) (*BackgroundGeneRate, error) {
	rates := make(map[string]float64)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			return nil, domain.NewParseError("gene_background_rate", errLine(0, "expected geneID\\trate"))
		}
		geneID := strings.TrimSpace(cols[0])
		rate, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
		if err != nil {
			return nil, domain.NewParseError("gene_background_rate", err)
		}
		rates[geneID] = rate
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewParseError("gene_background_rate", err)
	}
	return NewBackgroundGeneRate(rates), nil
}
