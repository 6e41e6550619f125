package extract

import (
	"errors"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/zoechen0717/V4C/internal/region"
	"github.com/zoechen0717/V4C/internal/v4cerr"
)

// MatrixSource is one opened (file, resolution) layer of a multi-resolution
// contact store. Fetch returns a dense symmetric contact matrix covering the
// requested window, one row/column per bin.
type MatrixSource interface {
	Fetch(chrom string, start, end int64) ([][]float64, error)
	Close() error
}

// MatrixOpener opens contact store layers. One layer is opened per
// (file, resolution) pair and closed before the next pair is visited.
type MatrixOpener interface {
	Open(path string, resolution int, balanced bool) (MatrixSource, error)
}

// Options configures one extraction call.
type Options struct {
	Files       []string
	Resolutions []int
	Source      region.Source
	// Lookup supplies the promoter table when Source carries a genome
	// build; may be nil otherwise.
	Lookup region.PromoterLookup

	// Flank is the number of base pairs the query window extends upstream
	// and downstream of each viewpoint.
	Flank int64
	// Balance requests ICE-balanced matrices from the store.
	Balance bool
	// Scale enables normalization; when false profiles pass through raw.
	Scale bool
	// Method selects the normalization policy when Scale is set.
	Method Method
	// FixedBins switches from relative windows to fixed-center windows of
	// exactly 2*(Flank/resolution) bins.
	FixedBins bool

	Output string
}

// Extractor runs Virtual 4C extractions against a contact store. Each Run
// call is self-contained and reentrant; no state is shared across calls.
type Extractor struct {
	opener MatrixOpener
	logger *zap.Logger
}

// NewExtractor creates an extractor reading matrices through opener.
func NewExtractor(opener MatrixOpener) *Extractor {
	return &Extractor{
		opener: opener,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and diagnostic messages.
func (e *Extractor) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Run resolves the region source, extracts one viewpoint profile per
// (file, resolution, region) triple, and writes the result table to
// opts.Output. A failure anywhere aborts the whole call; no partial output
// is written.
func (e *Extractor) Run(opts Options) error {
	if err := validate(opts); err != nil {
		return err
	}

	regions, err := region.Resolve(opts.Source, opts.Lookup)
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		e.logger.Warn("region source resolved to zero regions; writing header-only table")
	}

	table := NewTable()

	for _, file := range opts.Files {
		for _, res := range opts.Resolutions {
			if err := e.extractLayer(table, file, res, regions, opts); err != nil {
				return err
			}
		}
	}

	if err := table.WriteFile(opts.Output); err != nil {
		return err
	}
	e.logger.Info("extraction complete",
		zap.Int("rows", table.Len()),
		zap.String("output", opts.Output))
	return nil
}

// extractLayer opens one (file, resolution) layer, extracts every region's
// profile from it, and closes the layer before returning.
func (e *Extractor) extractLayer(table *Table, file string, res int, regions []region.Region, opts Options) error {
	src, err := e.opener.Open(file, res, opts.Balance)
	if err != nil {
		return v4cerr.Filef("open contact matrix", file, res, err)
	}
	defer src.Close()

	for _, reg := range regions {
		var window Window
		var rowIndex int
		if opts.FixedBins {
			window = fixedWindow(reg, int64(res), opts.Flank)
			rowIndex = fixedRowIndex(reg.ViewpointStart, window.Start, int64(res))
		} else {
			window = relativeWindow(reg, opts.Flank)
			rowIndex = relativeRowIndex(reg.ViewpointStart, window.Start, int64(res))
		}

		matrix, err := src.Fetch(window.Chrom, window.Start, window.End)
		if err != nil {
			return v4cerr.Filef("fetch contact matrix", file, res, err)
		}
		if rowIndex < 0 || rowIndex >= len(matrix) {
			return v4cerr.Filef("fetch contact matrix", file, res,
				errors.New("viewpoint bin falls outside the fetched window"))
		}

		profile := make([]float64, len(matrix[rowIndex]))
		copy(profile, matrix[rowIndex])
		// Unmeasured bins come back as NaN.
		for i, v := range profile {
			if math.IsNaN(v) {
				profile[i] = 0
			}
		}

		if opts.Scale {
			switch opts.Method {
			case MethodSelf:
				selfNormalize(profile, rowIndex)
			default:
				minMaxNormalize(profile)
			}
		}

		if err := table.Append(Row{
			File:        file,
			Resolution:  res,
			Chrom:       reg.Chrom,
			Start:       reg.ViewpointStart,
			End:         reg.ViewpointEnd,
			Label:       reg.Label,
			Profile:     profile,
			WindowStart: window.Start,
		}); err != nil {
			return err
		}

		e.logger.Debug("extracted profile",
			zap.String("file", file),
			zap.Int("resolution", res),
			zap.String("chrom", reg.Chrom),
			zap.Int64("viewpoint", reg.ViewpointStart),
			zap.Int("bins", len(profile)))
	}

	return nil
}

// validate performs the cheap eager checks before any matrix I/O.
func validate(opts Options) error {
	if len(opts.Files) == 0 {
		return v4cerr.Inputf("no input files given")
	}
	if len(opts.Resolutions) == 0 {
		return v4cerr.Inputf("no resolutions given")
	}
	for _, res := range opts.Resolutions {
		if res <= 0 {
			return v4cerr.Inputf("resolution must be positive, got %d", res)
		}
	}
	if opts.Flank < 0 {
		return v4cerr.Inputf("flank must be non-negative, got %d", opts.Flank)
	}
	if opts.Source == nil {
		return v4cerr.Inputf("no region source given")
	}
	if opts.Scale {
		if _, err := ParseMethod(string(opts.Method)); err != nil {
			return err
		}
	}
	if opts.Output == "" {
		return v4cerr.Inputf("no output path given")
	}
	for _, file := range opts.Files {
		if _, err := os.Stat(file); err != nil {
			return v4cerr.Filef("open contact matrix", file, 0, err)
		}
	}
	return nil
}
