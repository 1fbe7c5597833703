package ontology

import (
	"bufio"
	"io"
	"strings"

	"github.com/lirical-go/lirical/internal/domain"
)

// LoadOBO parses a minimal OBO-subset stream (the "[Term]" stanzas with
// id/name/is_a/alt_id tags HPO's hp.obo uses) into an *Ontology. This is
// the "Ontology" external collaborator — the core never
// parses ontology files itself, it only consumes the built graph. No
// OBO-parsing library appears in the example corpus, so this is a
// deliberate standard-library implementation (justified in DESIGN.md).
func LoadOBO(r io.Reader, root domain.TermId) (*Ontology, error) {
	b := NewBuilder(root)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var curID domain.TermId
	var curName string
	var inTerm bool

	flush := func() {
		if curID != "" {
			b.AddTerm(curID, curName)
		}
		curID = ""
		curName = ""
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "[Term]":
			flush()
			inTerm = true
		case strings.HasPrefix(line, "["):
			flush()
			inTerm = false
		case !inTerm:
			continue
		case strings.HasPrefix(line, "id:"):
			curID = domain.TermId(strings.TrimSpace(strings.TrimPrefix(line, "id:")))
		case strings.HasPrefix(line, "name:"):
			curName = strings.TrimSpace(strings.TrimPrefix(line, "name:"))
		case strings.HasPrefix(line, "is_a:"):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "is_a:"))
			parent := rest
			if idx := strings.Index(rest, "!"); idx >= 0 {
				parent = strings.TrimSpace(rest[:idx])
			}
			if curID != "" && parent != "" {
				b.AddIsA(curID, domain.TermId(parent))
			}
		case strings.HasPrefix(line, "alt_id:"):
			alt := strings.TrimSpace(strings.TrimPrefix(line, "alt_id:"))
			if curID != "" && alt != "" {
				b.AddAlias(domain.TermId(alt), curID)
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, domain.NewParseError("ontology", err)
	}
	return b.Build()
}
