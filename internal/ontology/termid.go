package ontology

import (
	"fmt"
	"regexp"

	"github.com/lirical-go/lirical/internal/domain"
)

// termIDPattern matches a prefixed ontology identifier, e.g. "HP:0001250".
var termIDPattern = regexp.MustCompile(`^[A-Za-z]+:[0-9]{1,10}$`)

// ValidateTermIDFormat checks that t has the "PREFIX:digits" shape
// ontology identifiers are expected to have, independent of whether it
// is actually registered in any loaded ontology. The annotation loader
// calls this on every HPO id it reads so a malformed annotation file
// fails with a clear ParseError instead of silently becoming an
// unreachable term; the OBO loader does not call it.
func ValidateTermIDFormat(t domain.TermId) error {
	if !termIDPattern.MatchString(string(t)) {
		return fmt.Errorf("malformed term id %q: expected PREFIX:digits", t)
	}
	return nil
}
