package background

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lirical-go/lirical/internal/domain"
)

// cachePayload is the gob-serialized shape of a built Index, plus the
// checksum that ties it to the corpus+ontology it was built from.
type cachePayload struct {
	Checksum string
	Values   map[domain.TermId]float64
}

// Checksum fingerprints the inputs that determine a background index:
// every term under the ontology root with its ancestor set, plus every
// disease's annotated terms and frequencies. Construction is otherwise
// deterministic in their content, so this is sufficient to detect that
// the corpus or ontology changed without re-running the full
// propagation.
func Checksum(ont domain.Ontology, diseases []*domain.DiseaseRecord) string {
	ids := make([]string, 0, len(diseases))
	for _, d := range diseases {
		for _, a := range d.Annotations {
			ids = append(ids, fmt.Sprintf("ann %s %s %g", d.ID, a.Term, a.Frequency))
		}
	}
	if descendants, err := ont.Descendants(ont.Root()); err == nil {
		for t := range descendants {
			anc, _ := ont.Ancestors(t, false)
			names := make([]string, 0, len(anc))
			for a := range anc {
				names = append(names, string(a))
			}
			sort.Strings(names)
			ids = append(ids, fmt.Sprintf("term %s %v", t, names))
		}
	}
	sort.Strings(ids)

	h := sha256.New()
	fmt.Fprintf(h, "root=%s\n", ont.Root())
	for _, id := range ids {
		fmt.Fprintf(h, "%s\n", id)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SaveCache gob-encodes idx to filePath alongside the checksum that
// must match on load, following the SaveGob pattern of encoding an
// interface{} payload directly to a created file with directories made
// on demand.
func SaveCache(filePath, checksum string, idx *Index) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(filePath) // #nosec G304 -- filePath is operator-controlled configuration, not user input
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	payload := cachePayload{Checksum: checksum, Values: idx.values}
	if err := gob.NewEncoder(file).Encode(payload); err != nil {
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	return nil
}

// LoadCache decodes a previously saved Index, returning (nil, false,
// nil) on a cache miss — file absent or checksum stale — rather than an
// error, since a miss just means "rebuild," not a failure.
func LoadCache(filePath, wantChecksum string) (*Index, bool, error) {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is operator-controlled configuration, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	var payload cachePayload
	if err := gob.NewDecoder(file).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	if payload.Checksum != wantChecksum {
		return nil, false, nil
	}
	return &Index{values: payload.Values, floor: domain.FPFloor}, true, nil
}
