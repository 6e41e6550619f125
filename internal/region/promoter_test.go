package region

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoechen0717/V4C/internal/v4cerr"
)

const promoterFixture = "chr17\t45894000\t45896000\tMAPT\n" +
	"chr17\t45620000\t45622000\tCRHR1\n" +
	"chr17\t45950000\t45952000\tMAPT\n" +
	"chr8\t127735000\t127737000\tMYC\n"

func writePromoterTable(t *testing.T, build string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, build+"_promoters.bed")
	require.NoError(t, os.WriteFile(path, []byte(promoterFixture), 0644))
	return dir
}

func TestOpenPromoterTable_UnknownBuild(t *testing.T) {
	_, err := OpenPromoterTable(t.TempDir(), "mm39")
	require.Error(t, err)

	var inputErr *v4cerr.InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestOpenPromoterTable_MissingFile(t *testing.T) {
	_, err := OpenPromoterTable(t.TempDir(), "hg38")
	require.Error(t, err)

	var inputErr *v4cerr.InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestPromoterTable_ByGene(t *testing.T) {
	dir := writePromoterTable(t, "hg38")
	table, err := OpenPromoterTable(dir, "hg38")
	require.NoError(t, err)

	mapt := table.ByGene("MAPT")
	require.Len(t, mapt, 2)
	assert.Equal(t, "chr17", mapt[0].Chrom)

	assert.Len(t, table.ByGene("MYC"), 1)
	assert.Empty(t, table.ByGene("GATA6"), "unknown symbol yields zero promoters, not an error")
	assert.Empty(t, table.ByGene("mapt"), "symbol match is exact")
}

func TestPromoterTable_Overlapping(t *testing.T) {
	dir := writePromoterTable(t, "hg38")
	table, err := OpenPromoterTable(dir, "hg38")
	require.NoError(t, err)

	hits := table.Overlapping("chr17", 45878152, 46000000)
	require.Len(t, hits, 2)
	assert.Equal(t, "MAPT", hits[0].Gene)
	assert.Equal(t, "MAPT", hits[1].Gene)
	assert.Less(t, hits[0].Start, hits[1].Start, "results in ascending start order")

	// Overlap is inclusive at both boundaries.
	assert.Len(t, table.Overlapping("chr17", 45896000, 45896000), 1)
	assert.Len(t, table.Overlapping("chr17", 45893000, 45894000), 1)
	assert.Empty(t, table.Overlapping("chr17", 45896001, 45949999))

	assert.Empty(t, table.Overlapping("chr1", 0, 1e9), "unknown chromosome")
}

func TestPromoterTable_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hg38_promoters.bed")
	require.NoError(t, os.WriteFile(path, []byte("chr17\t100\n"), 0644))

	_, err := OpenPromoterTable(dir, "hg38")
	require.Error(t, err)

	var fileErr *v4cerr.FileError
	assert.True(t, errors.As(err, &fileErr))
}

func TestIntervalIndex_MatchesLinearScan(t *testing.T) {
	promoters := []Promoter{
		{Chrom: "chr1", Start: 1000, End: 5000, Gene: "A"},
		{Chrom: "chr1", Start: 2000, End: 3000, Gene: "B"},
		{Chrom: "chr1", Start: 4000, End: 8000, Gene: "C"},
		{Chrom: "chr1", Start: 6000, End: 7000, Gene: "D"},
		{Chrom: "chr1", Start: 9000, End: 10000, Gene: "E"},
		{Chrom: "chr1", Start: 9100, End: 9200, Gene: "F"},
	}
	idx := buildIntervalIndex(promoters)

	for lo := int64(0); lo <= 11000; lo += 500 {
		for _, width := range []int64{0, 250, 1500, 5000} {
			hi := lo + width

			linear := map[string]bool{}
			for _, p := range promoters {
				if p.Start <= hi && p.End >= lo {
					linear[p.Gene] = true
				}
			}
			got := map[string]bool{}
			for _, p := range idx.overlapping(lo, hi) {
				got[p.Gene] = true
			}

			assert.Equal(t, linear, got, "query [%d, %d]", lo, hi)
		}
	}
}

func TestIntervalIndex_MaxEndPruning(t *testing.T) {
	// A short interval followed by a long one; the max-end bound must still
	// surface the long interval for far queries.
	idx := buildIntervalIndex([]Promoter{
		{Start: 100, End: 110, Gene: "short"},
		{Start: 105, End: 500, Gene: "long"},
	})

	hits := idx.overlapping(400, 450)
	require.Len(t, hits, 1)
	assert.Equal(t, "long", hits[0].Gene)
}

func TestIntervalIndex_LongEarlyPromoter(t *testing.T) {
	// A long promoter at a low start must not be pruned away when the
	// promoters between it and the query are all short.
	idx := buildIntervalIndex([]Promoter{
		{Start: 100, End: 9000, Gene: "LONG"},
		{Start: 2000, End: 2100, Gene: "shortA"},
		{Start: 3000, End: 3100, Gene: "shortB"},
		{Start: 5000, End: 5100, Gene: "shortC"},
	})

	hits := idx.overlapping(8000, 8500)
	require.Len(t, hits, 1)
	assert.Equal(t, "LONG", hits[0].Gene)

	// Query past every interval still returns nothing.
	assert.Empty(t, idx.overlapping(9001, 9500))
}

func TestIntervalIndex_Empty(t *testing.T) {
	assert.Empty(t, buildIntervalIndex(nil).overlapping(0, 100))
}
