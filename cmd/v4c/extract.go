package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zoechen0717/V4C/internal/coolstore"
	"github.com/zoechen0717/V4C/internal/extract"
	"github.com/zoechen0717/V4C/internal/region"
	"github.com/zoechen0717/V4C/internal/v4cerr"
)

// storeOpener adapts the DuckDB contact store to the extraction engine.
type storeOpener struct{}

func (storeOpener) Open(path string, resolution int, balanced bool) (extract.MatrixSource, error) {
	return coolstore.OpenLayer(path, resolution, balanced)
}

func runExtract(args []string) int {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)

	var (
		mcools       string
		resolutions  string
		coords       string
		genes        string
		genome       string
		bedFile      string
		flank        int64
		balance      bool
		scale        bool
		norm         string
		fixed        bool
		outputFile   string
		promotersDir string
		verbose      bool
	)

	fs.StringVar(&mcools, "mcool", "", "Comma-separated .mcool contact store files (required)")
	fs.StringVar(&resolutions, "res", "", "Comma-separated resolutions in bp (required)")
	fs.StringVar(&coords, "coords", "", "Genomic coordinates, e.g. chr17:45878152-46000000")
	fs.StringVar(&genes, "genes", "", "Comma-separated gene symbols (requires --genome)")
	fs.StringVar(&genome, "genome", "", "Genome build: hg19 or hg38")
	fs.StringVar(&bedFile, "bed", "", "BED file with regions (3 or 4+ columns)")
	fs.Int64Var(&flank, "flank", viper.GetInt64("extract.flank"), "Flanking bp up- and downstream of each viewpoint")
	fs.BoolVar(&balance, "balance", true, "Use ICE-balanced matrices")
	fs.BoolVar(&scale, "scale", true, "Normalize extracted profiles")
	fs.StringVar(&norm, "norm", viper.GetString("extract.norm"), "Normalization method: minmax or self")
	fs.BoolVar(&fixed, "fixed", false, "Fixed-center windows of exactly 2*(flank/res) bins")
	fs.StringVar(&outputFile, "o", "extracted_data.tsv", "Output TSV file")
	fs.StringVar(&outputFile, "output", "extracted_data.tsv", "Output TSV file")
	fs.StringVar(&promotersDir, "promoters", viper.GetString("promoters.dir"), "Directory with <build>_promoters.bed tables")
	fs.BoolVar(&verbose, "verbose", false, "Verbose progress logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Extract Virtual 4C contact-frequency profiles from .mcool contact stores.

Usage:
  v4c extract [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  v4c extract --mcool sample.mcool --res 5000 --coords chr17:45878152-46000000
  v4c extract --mcool a.mcool,b.mcool --res 5000 --genes MYC --genome hg38 --norm self
  v4c extract --mcool sample.mcool --res 10000 --bed regions.bed --fixed -o out.tsv
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if mcools == "" || resolutions == "" {
		fmt.Fprintf(os.Stderr, "Error: --mcool and --res are required\n\n")
		fs.Usage()
		return ExitUsage
	}

	resList, err := parseIntList(resolutions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --res value: %v\n", err)
		return ExitUsage
	}

	src, err := region.SourceFromFlags(coords, genes, genome, bedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	var lookup region.PromoterLookup
	if build := region.BuildOf(src); build != "" {
		table, err := region.OpenPromoterTable(promotersDir, build)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		lookup = table
	}

	ex := extract.NewExtractor(storeOpener{})
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			defer logger.Sync()
			ex.SetLogger(logger)
		}
	}

	opts := extract.Options{
		Files:       splitList(mcools),
		Resolutions: resList,
		Source:      src,
		Lookup:      lookup,
		Flank:       flank,
		Balance:     balance,
		Scale:       scale,
		Method:      extract.Method(norm),
		FixedBins:   fixed,
		Output:      outputFile,
	}

	if err := ex.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, coolstore.ErrResolutionNotFound) {
			fmt.Fprintf(os.Stderr, "Hint: list available layers with: v4c resolutions <file>\n")
		}
		var inputErr *v4cerr.InputError
		if errors.As(err, &inputErr) {
			return ExitUsage
		}
		return ExitError
	}

	return ExitSuccess
}

func runResolutions(args []string) int {
	fs := flag.NewFlagSet("resolutions", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "List the resolution layers of a contact store.\n\nUsage:\n  v4c resolutions <file>\n")
	}
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return ExitUsage
	}

	store, err := coolstore.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer store.Close()

	resolutions, err := store.Resolutions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	for _, res := range resolutions {
		fmt.Println(res)
	}
	return ExitSuccess
}

// parseIntList parses a comma-separated list of integers.
func parseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// splitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
