package region

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zoechen0717/V4C/internal/v4cerr"
)

// Promoter is one annotated promoter interval from a per-build lookup table.
type Promoter struct {
	Chrom string
	Start int64
	End   int64
	Gene  string
}

// PromoterLookup answers promoter queries for one genome build.
type PromoterLookup interface {
	// Overlapping returns all promoters on chrom overlapping [start, end].
	Overlapping(chrom string, start, end int64) []Promoter
	// ByGene returns all promoters annotated with the exact gene symbol.
	ByGene(symbol string) []Promoter
}

// Genome builds with bundled promoter tables.
var knownBuilds = map[string]bool{
	"hg19": true,
	"hg38": true,
}

// PromoterTablePath returns the promoter table file for a genome build under
// dir, following the "<build>_promoters.bed" naming convention.
func PromoterTablePath(dir, build string) (string, error) {
	if !knownBuilds[build] {
		return "", v4cerr.Inputf("unknown genome build %q; supported builds: hg19, hg38", build)
	}
	return filepath.Join(dir, build+"_promoters.bed"), nil
}

// PromoterTable is an in-memory promoter lookup built from one table file.
// It is immutable after load; a fresh table per call keeps resolution
// reentrant.
type PromoterTable struct {
	byGene  map[string][]Promoter
	byChrom map[string]*intervalIndex
}

// OpenPromoterTable validates the genome build and loads its promoter table
// from dir.
func OpenPromoterTable(dir, build string) (*PromoterTable, error) {
	path, err := PromoterTablePath(dir, build)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, v4cerr.Inputf("no promoter table for build %s at %s", build, path)
	}
	return LoadPromoterTable(path)
}

// LoadPromoterTable loads a tab-delimited promoter table with columns
// chrom, start, end, gene and no header.
func LoadPromoterTable(path string) (*PromoterTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, v4cerr.Filef("open promoter table", path, 0, err)
	}
	defer f.Close()

	t := &PromoterTable{
		byGene:  make(map[string][]Promoter),
		byChrom: make(map[string]*intervalIndex),
	}

	perChrom := make(map[string][]Promoter)

	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return nil, v4cerr.Filef("parse promoter table", path, 0,
				fmt.Errorf("line %d: expected 4 columns, found %d", lineNumber, len(fields)))
		}
		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, v4cerr.Filef("parse promoter table", path, 0,
				fmt.Errorf("line %d: invalid start position %q", lineNumber, fields[1]))
		}
		end, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, v4cerr.Filef("parse promoter table", path, 0,
				fmt.Errorf("line %d: invalid end position %q", lineNumber, fields[2]))
		}

		p := Promoter{Chrom: fields[0], Start: start, End: end, Gene: fields[3]}
		t.byGene[p.Gene] = append(t.byGene[p.Gene], p)
		perChrom[p.Chrom] = append(perChrom[p.Chrom], p)
	}
	if err := scanner.Err(); err != nil {
		return nil, v4cerr.Filef("read promoter table", path, 0, err)
	}

	for chrom, promoters := range perChrom {
		t.byChrom[chrom] = buildIntervalIndex(promoters)
	}
	return t, nil
}

// Overlapping returns all promoters on chrom whose interval overlaps
// [start, end].
func (t *PromoterTable) Overlapping(chrom string, start, end int64) []Promoter {
	idx := t.byChrom[chrom]
	if idx == nil {
		return nil
	}
	return idx.overlapping(start, end)
}

// ByGene returns all promoters for the exact gene symbol.
func (t *PromoterTable) ByGene(symbol string) []Promoter {
	return t.byGene[symbol]
}
