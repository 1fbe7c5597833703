package corpus

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/ontology"
)

// Column layout of the tab-delimited disease-annotation file, the shape
// of the Java test fixture small_phenoannot.tab (disease id is column
// 2, HPO id is column 5, 1-based):
//
//	0  DB               e.g. "OMIM"
//	1  DiseaseID         e.g. "154700"
//	2  DiseaseName
//	3  Qualifier         "NOT" to mark a negated/excluded annotation, else empty
//	4  HPO_ID
//	5  Reference
//	6  Evidence
//	7  Onset
//	8  Frequency         "50%", "1/4", an HPO frequency term id, or empty (defaults to 1.0)
//	9  Sex
//	10 Modifier
//	11 Aspect            "P" phenotypic abnormality, "I" inheritance, "C" clinical course
//	12 CreatedBy
const (
	colDB        = 0
	colDiseaseID = 1
	colName      = 2
	colQualifier = 3
	colHPOID     = 4
	colFrequency = 8
	colAspect    = 11
)

// inheritance modes recognized from the HPO "Mode of inheritance" branch.
var inheritanceTerms = map[domain.TermId]domain.ModeOfInheritance{
	"HP:0000006": domain.InheritanceDominant,
	"HP:0000007": domain.InheritanceRecessive,
	"HP:0001417": domain.InheritanceXLinked,
	"HP:0001419": domain.InheritanceXLinked,
	"HP:0001423": domain.InheritanceXLinked,
}

// LoadAnnotations parses the tab-delimited disease-annotation stream
// into disease records, returning them in file order. Disease ids
// appearing on multiple lines are merged into one record. This is the
// "Disease corpus" external collaborator — a parse failure here is a
// *domain.ParseError, surfaced before any scoring runs, never a
// scoring-core concern.
func LoadAnnotations(r io.Reader) ([]*domain.DiseaseRecord, error) {
	byID := make(map[string]*domain.DiseaseRecord)
	var order []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) <= colHPOID {
			return nil, domain.NewParseError("annotation", errLine(lineNo, "too few columns"))
		}

		diseaseID := cols[colDB] + ":" + cols[colDiseaseID]
		hpoID := domain.TermId(strings.TrimSpace(cols[colHPOID]))
		if err := ontology.ValidateTermIDFormat(hpoID); err != nil {
			return nil, domain.NewParseError("annotation", err)
		}

		rec, ok := byID[diseaseID]
		if !ok {
			rec = &domain.DiseaseRecord{ID: diseaseID}
			if len(cols) > colName {
				rec.Name = strings.TrimSpace(cols[colName])
			}
			byID[diseaseID] = rec
			order = append(order, diseaseID)
		}

		qualifier := ""
		if len(cols) > colQualifier {
			qualifier = strings.TrimSpace(cols[colQualifier])
		}
		if strings.EqualFold(qualifier, "NOT") {
			// A NOT-qualified annotation records an observation the
			// disease explicitly does not have; it is not a foreground
			// frequency entry for the background index.
			continue
		}

		aspect := ""
		if len(cols) > colAspect {
			aspect = strings.TrimSpace(cols[colAspect])
		}
		if aspect == "I" {
			if moi, ok := inheritanceTerms[hpoID]; ok {
				rec.InheritanceModes = append(rec.InheritanceModes, moi)
			}
			continue
		}

		freq := 1.0
		if len(cols) > colFrequency {
			if parsed, ok := parseFrequency(strings.TrimSpace(cols[colFrequency])); ok {
				freq = parsed
			}
		}
		rec.Annotations = append(rec.Annotations, domain.TermAnnotation{Term: hpoID, Frequency: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewParseError("annotation", err)
	}

	out := make([]*domain.DiseaseRecord, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out, nil
}

// parseFrequency interprets a raw frequency field as a probability in
// [0,1]. Recognizes a plain percentage ("50%"), a ratio ("1/4"), or a
// decimal ("0.5"); an HPO frequency-term id or an empty field signals
// "use the default of 1.0" to the caller.
func parseFrequency(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	if strings.HasSuffix(raw, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return 0, false
		}
		return v / 100.0, true
	}
	if strings.Contains(raw, "/") {
		parts := strings.SplitN(raw, "/", 2)
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return num / den, true
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, true
	}
	return 0, false
}

type lineError struct {
	line    int
	message string
}

func (e *lineError) Error() string {
	return "line " + strconv.Itoa(e.line) + ": " + e.message
}

func errLine(line int, message string) error {
	return &lineError{line: line, message: message}
}
