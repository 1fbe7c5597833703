package background

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirical-go/lirical/internal/domain"
	"github.com/lirical-go/lirical/internal/ontology"
)

func TestSaveLoadCacheRoundTrip(t *testing.T) {
	o, err := ontology.LoadOBO(strings.NewReader(flatOBO), domain.PhenotypicAbnormalityRoot)
	require.NoError(t, err)

	diseases := []*domain.DiseaseRecord{
		diseaseWithTerm("OMIM:1", "HP:0200127", 1.0),
	}
	idx, err := Build(o, diseases)
	require.NoError(t, err)

	checksum := Checksum(o, diseases)
	path := filepath.Join(t.TempDir(), "background.gob")
	require.NoError(t, SaveCache(path, checksum, idx))

	loaded, ok, err := LoadCache(path, checksum)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, idx.Lookup("HP:0200127"), loaded.Lookup("HP:0200127"))
}

func TestLoadCacheMissOnChecksumMismatch(t *testing.T) {
	o, err := ontology.LoadOBO(strings.NewReader(flatOBO), domain.PhenotypicAbnormalityRoot)
	require.NoError(t, err)
	diseases := []*domain.DiseaseRecord{diseaseWithTerm("OMIM:1", "HP:0200127", 1.0)}
	idx, err := Build(o, diseases)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "background.gob")
	require.NoError(t, SaveCache(path, "checksum-a", idx))

	_, ok, err := LoadCache(path, "checksum-b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoadCacheMissOnAbsentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.gob")
	_, ok, err := LoadCache(path, "anything")
	require.NoError(t, err)
	require.False(t, ok)
}
