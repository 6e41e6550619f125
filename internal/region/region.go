// Package region resolves heterogeneous region specifications (explicit
// coordinates, gene symbols, BED files) into a canonical list of genomic
// viewpoint regions.
package region

import (
	"os"
	"strings"

	"github.com/zoechen0717/V4C/internal/v4cerr"
)

// Region is one resolved genomic viewpoint. ViewpointStart equals
// ViewpointEnd for point regions derived from coordinate midpoints.
type Region struct {
	Chrom          string
	ViewpointStart int64
	ViewpointEnd   int64
	Label          string
}

// Source is a tagged union of the three region specification modes. Exactly
// one variant is constructed at the CLI boundary, which removes any ordering
// ambiguity between modes.
type Source interface {
	sourceBuild() string
}

// Coordinates specifies a single "chrom:start-end" range. When Build is set,
// the range expands to all annotated promoters overlapping it; otherwise it
// collapses to a point region at the range midpoint.
type Coordinates struct {
	Spec  string
	Build string
}

func (c Coordinates) sourceBuild() string { return c.Build }

// Genes specifies a list of gene symbols to look up in the promoter table
// for the given genome build.
type Genes struct {
	Symbols []string
	Build   string
}

func (g Genes) sourceBuild() string { return g.Build }

// BedFile specifies a tab-delimited BED file of regions.
type BedFile struct {
	Path string
}

func (BedFile) sourceBuild() string { return "" }

// BuildOf returns the genome build a source depends on, or "" when the
// source needs no promoter table.
func BuildOf(src Source) string {
	if src == nil {
		return ""
	}
	return src.sourceBuild()
}

// SourceFromFlags constructs a Source from raw CLI inputs. Genes combined
// with coordinates is rejected; otherwise genes take priority over
// coordinates, which take priority over a BED file. At least one mode must
// be given.
func SourceFromFlags(coords, genes, genome, bed string) (Source, error) {
	if genes != "" && coords != "" {
		return nil, v4cerr.Inputf("genes and coordinates cannot be combined; provide one region source")
	}

	switch {
	case genes != "":
		if genome == "" {
			return nil, v4cerr.Inputf("gene lookup requires a genome build")
		}
		var symbols []string
		for _, s := range strings.Split(genes, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			symbols = append(symbols, s)
		}
		if len(symbols) == 0 {
			return nil, v4cerr.Inputf("empty gene list")
		}
		return Genes{Symbols: symbols, Build: genome}, nil
	case coords != "":
		return Coordinates{Spec: coords, Build: genome}, nil
	case bed != "":
		return BedFile{Path: bed}, nil
	}
	return nil, v4cerr.Inputf("no region source given; provide coordinates, genes, or a BED file")
}

// Resolve turns a Source into an ordered list of regions. lookup supplies
// the promoter table for sources that carry a genome build and may be nil
// otherwise. Gene symbols with zero promoter matches yield zero regions and
// are not an error.
func Resolve(src Source, lookup PromoterLookup) ([]Region, error) {
	switch s := src.(type) {
	case Coordinates:
		chrom, start, end, err := ParseCoords(s.Spec)
		if err != nil {
			return nil, err
		}
		if s.Build == "" {
			mid := (start + end) / 2
			return []Region{{Chrom: chrom, ViewpointStart: mid, ViewpointEnd: mid}}, nil
		}
		if lookup == nil {
			return nil, v4cerr.Inputf("genome build %s given but no promoter table available", s.Build)
		}
		var regions []Region
		for _, p := range lookup.Overlapping(chrom, start, end) {
			regions = append(regions, Region{Chrom: p.Chrom, ViewpointStart: p.Start, ViewpointEnd: p.End})
		}
		return regions, nil
	case Genes:
		if lookup == nil {
			return nil, v4cerr.Inputf("genome build %s given but no promoter table available", s.Build)
		}
		var regions []Region
		for _, symbol := range s.Symbols {
			for _, p := range lookup.ByGene(symbol) {
				regions = append(regions, Region{
					Chrom:          p.Chrom,
					ViewpointStart: p.Start,
					ViewpointEnd:   p.End,
					Label:          symbol,
				})
			}
		}
		return regions, nil
	case BedFile:
		if _, err := os.Stat(s.Path); err != nil {
			return nil, v4cerr.Inputf("BED file %s does not exist", s.Path)
		}
		return ReadBed(s.Path)
	}
	return nil, v4cerr.Inputf("no region source given")
}
