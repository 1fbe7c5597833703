// Package report renders a ranked evaluation into html or tsv output,
// following the structure of original_source's LiricalTemplate.java: a
// metadata header and a ranked disease table. The TSV rows carry the
// number of term and gene contributions per disease; neither format
// lists the individual contributions. Report rendering is an external collaborator,
// out of scope for the scoring core; it consumes
// []domain.DiseaseScore and never computes an LR.
package report

import (
	"bytes"
	"encoding/csv"
	"html/template"
	"sort"
	"strconv"

	"github.com/lirical-go/lirical/internal/domain"
)

// HTMLRenderer implements domain.ReportRenderer, rendering the ranked
// list as a single self-contained HTML page with html/template
// (auto-escaping every field derived from patient or corpus data).
type HTMLRenderer struct {
	tmpl *template.Template
}

var htmlFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// NewHTMLRenderer parses the embedded report template once.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	t, err := template.New("report").Funcs(htmlFuncs).Parse(htmlTemplateSource)
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: t}, nil
}

type htmlView struct {
	Meta   map[string]string
	Scores []domain.DiseaseScore
}

// Render implements domain.ReportRenderer for HTML output.
func (h *HTMLRenderer) Render(scores []domain.DiseaseScore, meta domain.RunMetadata) ([]byte, error) {
	var buf bytes.Buffer
	view := htmlView{Meta: meta.AsMap(), Scores: scores}
	if err := h.tmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ domain.ReportRenderer = (*HTMLRenderer)(nil)

const htmlTemplateSource = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>LIRICAL-go report: {{.Meta.sample_name}}</title></head>
<body>
<h1>LIRICAL-go analysis: {{.Meta.sample_name}}</h1>
<table>
{{range $k, $v := .Meta}}<tr><th>{{$k}}</th><td>{{$v}}</td></tr>
{{end}}
</table>
<h2>Ranked candidate diseases</h2>
<table border="1">
<tr><th>Rank</th><th>Disease</th><th>Posterior</th><th>log LR</th></tr>
{{range $i, $s := .Scores}}<tr><td>{{inc $i}}</td><td>{{$s.DiseaseName}} ({{$s.DiseaseID}})</td><td>{{$s.Posterior}}</td><td>{{$s.LogLR}}</td></tr>
{{end}}
</table>
</body>
</html>
`

// TSVRenderer implements domain.ReportRenderer, rendering the ranked
// list as a tab-separated table via encoding/csv (comma set to tab),
// matching the source's TsvTemplate sibling.
type TSVRenderer struct{}

// NewTSVRenderer builds a TSVRenderer.
func NewTSVRenderer() *TSVRenderer { return &TSVRenderer{} }

// Render implements domain.ReportRenderer for TSV output. Rows are
// sorted the same way the evaluator already sorted scores (posterior
// descending, disease id ascending), preserved from the input order.
func (t *TSVRenderer) Render(scores []domain.DiseaseScore, meta domain.RunMetadata) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'

	if err := w.Write([]string{"#analysis_date", meta.AnalysisDate.Format("2006-01-02")}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"#sample_name", meta.SampleName}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"rank", "disease_id", "disease_name", "posterior", "log_lr", "n_terms", "n_genes"}); err != nil {
		return nil, err
	}

	for i, s := range scores {
		row := []string{
			strconv.Itoa(i + 1),
			s.DiseaseID,
			s.DiseaseName,
			strconv.FormatFloat(s.Posterior, 'g', -1, 64),
			strconv.FormatFloat(s.LogLR, 'g', -1, 64),
			strconv.Itoa(len(s.TermLRs)),
			strconv.Itoa(len(s.GeneLRs)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ domain.ReportRenderer = (*TSVRenderer)(nil)

// TopN returns the first n scores, or all of them when there are fewer
// than n, without mutating the input slice. Neither renderer nor the
// CLI calls it; it is exported for callers that want a "top
// differential diagnoses" summary.
func TopN(scores []domain.DiseaseScore, n int) []domain.DiseaseScore {
	if n <= 0 || n > len(scores) {
		n = len(scores)
	}
	out := make([]domain.DiseaseScore, n)
	copy(out, scores[:n])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Posterior > out[j].Posterior })
	return out
}
