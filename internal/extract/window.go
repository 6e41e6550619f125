// Package extract implements the Virtual 4C extraction engine: it computes
// query windows around viewpoint regions, pulls windowed slices of contact
// matrices from a multi-resolution store, extracts and normalizes viewpoint
// profiles, and assembles the results into a tabular dataset.
package extract

import "github.com/zoechen0717/V4C/internal/region"

// Window is the genomic span queried from the contact store for one region.
// It exists only for the duration of one matrix fetch.
type Window struct {
	Chrom string
	Start int64
	End   int64
}

// relativeWindow extends the viewpoint region by flank on both sides,
// clamping the start at zero. Window width follows the region width, so
// profiles from regions of different sizes are ragged.
func relativeWindow(r region.Region, flank int64) Window {
	start := r.ViewpointStart - flank
	if start < 0 {
		start = 0
	}
	return Window{Chrom: r.Chrom, Start: start, End: r.ViewpointEnd + flank}
}

// fixedWindow snaps the viewpoint down to its bin boundary and centers a
// window of exactly 2*(flank/resolution) bins on it, so every profile has
// the same shape regardless of where the viewpoint falls within its bin.
func fixedWindow(r region.Region, resolution, flank int64) Window {
	binStart := (r.ViewpointStart / resolution) * resolution
	start := binStart - flank
	if start < 0 {
		start = 0
	}
	return Window{Chrom: r.Chrom, Start: start, End: binStart + flank}
}

// relativeRowIndex locates the viewpoint bin inside a relative-policy
// window's matrix.
func relativeRowIndex(viewpointStart, windowStart, resolution int64) int {
	return int(viewpointStart/resolution - windowStart/resolution)
}

// fixedRowIndex locates the viewpoint bin inside a fixed-center window's
// matrix. Away from the chromosome start this is the constant
// flank/resolution; when the window is clamped at zero the viewpoint bin
// sits closer to the front.
func fixedRowIndex(viewpointStart, windowStart, resolution int64) int {
	return int(viewpointStart/resolution - windowStart/resolution)
}
