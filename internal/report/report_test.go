package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/domain"
)

func sampleScores() []domain.DiseaseScore {
	return []domain.DiseaseScore{
		{DiseaseID: "OMIM:100", DiseaseName: "Alpha syndrome", Posterior: 0.7, LogLR: 2.1},
		{DiseaseID: "OMIM:200", DiseaseName: "Beta syndrome", Posterior: 0.3, LogLR: 1.0},
	}
}

func TestHTMLRendererProducesValidStructure(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	meta := domain.RunMetadata{SampleName: "patient_001", AnalysisDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	out, err := r.Render(sampleScores(), meta)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "patient_001")
	assert.Contains(t, html, "Alpha syndrome")
	assert.Contains(t, html, "OMIM:100")
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
}

func TestHTMLRendererEscapesUntrustedFields(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	scores := []domain.DiseaseScore{
		{DiseaseID: "OMIM:1", DiseaseName: "<script>alert(1)</script>", Posterior: 1.0},
	}
	out, err := r.Render(scores, domain.RunMetadata{SampleName: "p"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestTSVRendererRowsMatchInputOrder(t *testing.T) {
	tsv := NewTSVRenderer()
	meta := domain.RunMetadata{SampleName: "patient_001", AnalysisDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	out, err := tsv.Render(sampleScores(), meta)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 5) // 2 metadata rows + header + 2 disease rows
	assert.Contains(t, lines[3], "OMIM:100")
	assert.Contains(t, lines[4], "OMIM:200")
}

func TestTopN(t *testing.T) {
	scores := sampleScores()
	assert.Len(t, TopN(scores, 1), 1)
	assert.Len(t, TopN(scores, 10), 2)
	assert.Equal(t, "OMIM:100", TopN(scores, 1)[0].DiseaseID)
}
