package corpus

import (
	"bufio"
	"io"
	"strings"

	"github.com/lirical-go/lirical/internal/domain"
)

// LoadGeneToDisease parses a tab-delimited gene-to-disease association
// stream (the shape of Exomiser's Homo_sapiens_gene2disease-style
// mapping: gene id, gene symbol, disease id, one association per line)
// and attaches the gene ids to the matching disease records in place.
// Records for a disease id absent from the corpus are ignored — the
// disease-annotation file is the source of truth for which diseases
// exist; an unknown disease id here is skipped without an error or a
// log entry.
func LoadGeneToDisease(r io.Reader, records []*domain.DiseaseRecord) (map[string]string, error) {
	byID := make(map[string]*domain.DiseaseRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	symbols := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			return nil, domain.NewParseError("gene2disease", errLine(0, "expected geneID\\tsymbol\\tdiseaseID"))
		}
		geneID := strings.TrimSpace(cols[0])
		symbol := strings.TrimSpace(cols[1])
		diseaseID := strings.TrimSpace(cols[2])

		symbols[geneID] = symbol

		rec, ok := byID[diseaseID]
		if !ok {
			continue
		}
		if !containsString(rec.GeneIDs, geneID) {
			rec.GeneIDs = append(rec.GeneIDs, geneID)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewParseError("gene2disease", err)
	}
	return symbols, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
