package genotype

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVCF = `##fileformat=VCFv4.2
##FILTER=<ID=PASS,Description="All filters passed">
##contig=<ID=1,length=249250621>
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	patient_001
1	100	.	A	G	50	PASS	.	GT	0/1
1	200	.	C	T	50	FAIL	.	GT	0/1
1	300	.	G	A	50	PASS	.	GT	1/1
2	400	.	T	C	50	PASS	.	GT	0/1
`

func writeTestVCF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.vcf")
	require.NoError(t, os.WriteFile(path, []byte(testVCF), 0o600))
	return path
}

func geneLookupChr1(chrom string, pos int64) (string, bool) {
	if chrom == "1" {
		return "GENE1", true
	}
	return "", false
}

func pathogenicAll(chrom string, pos int64, ref, alt string) (float64, float64, bool) {
	return 0.9, 0.0001, true
}

func TestExtractRetainsPassVariantsAssignedToAGene(t *testing.T) {
	path := writeTestVCF(t)
	e := NewVCFGenotypeExtractor(pathogenicAll, geneLookupChr1, true, nil)

	genotypes, meta, err := e.Extract(context.Background(), path)
	require.NoError(t, err)

	require.Contains(t, genotypes, "GENE1")
	assert.Len(t, genotypes["GENE1"].Variants, 2) // pos 100 and 300, not the FAILed 200
	assert.Equal(t, 2, meta.RetainedVariants)
	assert.Equal(t, 2, meta.FilteredVariants) // pos 200 (FAIL) and pos 400 (no gene)
	assert.Equal(t, 1, meta.GenesWithVariants)
	assert.Equal(t, "patient_001", meta.SampleName)
}

func TestExtractDiscardsVariantsWithNoPathogenicityAnnotation(t *testing.T) {
	path := writeTestVCF(t)
	noAnnotation := func(chrom string, pos int64, ref, alt string) (float64, float64, bool) {
		return 0, 0, false
	}
	e := NewVCFGenotypeExtractor(noAnnotation, geneLookupChr1, true, nil)

	genotypes, meta, err := e.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Empty(t, genotypes)
	assert.Equal(t, 0, meta.RetainedVariants)
}

func TestExtractWithFilterEnforcementDisabledKeepsFailedFilter(t *testing.T) {
	path := writeTestVCF(t)
	e := NewVCFGenotypeExtractor(pathogenicAll, geneLookupChr1, false, nil)

	genotypes, _, err := e.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Len(t, genotypes["GENE1"].Variants, 3) // all three chr1 records now retained
}

func TestExtractReturnsParseErrorForMissingFile(t *testing.T) {
	e := NewVCFGenotypeExtractor(pathogenicAll, geneLookupChr1, true, nil)
	_, _, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.vcf"))
	assert.Error(t, err)
}

func TestExtractRespectsCanceledContext(t *testing.T) {
	path := writeTestVCF(t)
	e := NewVCFGenotypeExtractor(pathogenicAll, geneLookupChr1, true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := e.Extract(ctx, path)
	assert.Error(t, err)
}
