package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/zoechen0717/V4C/internal/v4cerr"
)

// Base column names preceding the per-bin contact columns.
var baseColumns = []string{"mcool", "res", "chrom", "start", "end", "gene_name"}

// Row is one extracted profile plus its provenance. Immutable once appended.
type Row struct {
	File       string
	Resolution int
	Chrom      string
	Start      int64
	End        int64
	Label      string
	Profile    []float64

	// WindowStart anchors the bin-position column labels.
	WindowStart int64
}

// Table accumulates result rows for one extraction call and serializes them
// as tab-separated values. The trailing column names encode the absolute
// genomic position of each bin, computed from the first row's window start
// and resolution; every appended row must therefore share the first row's
// window geometry (bin count and resolution).
type Table struct {
	rows []Row
}

// NewTable creates an empty result table.
func NewTable() *Table {
	return &Table{}
}

// Append adds a row, validating that its window geometry matches the first
// row's. Divergent geometries would make the shared column headers silently
// wrong for some rows, so they are rejected instead.
func (t *Table) Append(row Row) error {
	if len(t.rows) > 0 {
		first := t.rows[0]
		if len(row.Profile) != len(first.Profile) || row.Resolution != first.Resolution {
			return v4cerr.Inputf(
				"window geometry differs across rows: %s %s:%d has %d bins at resolution %d, expected %d bins at resolution %d; run divergent resolutions or region sizes as separate extractions",
				row.File, row.Chrom, row.Start, len(row.Profile), row.Resolution, len(first.Profile), first.Resolution)
		}
	}
	t.rows = append(t.rows, row)
	return nil
}

// Len returns the number of appended rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// ColumnNames returns the full header. Bin columns are named by absolute
// genomic position: windowStart + i*resolution of the first row.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(baseColumns))
	names = append(names, baseColumns...)
	if len(t.rows) == 0 {
		return names
	}
	first := t.rows[0]
	for i := range first.Profile {
		pos := first.WindowStart + int64(i)*int64(first.Resolution)
		names = append(names, strconv.FormatInt(pos, 10))
	}
	return names
}

// WriteTSV writes the header and all rows to w as tab-separated values.
func (t *Table) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(t.ColumnNames(), "\t") + "\n"); err != nil {
		return err
	}

	for _, row := range t.rows {
		fields := make([]string, 0, len(baseColumns)+len(row.Profile))
		fields = append(fields,
			row.File,
			strconv.Itoa(row.Resolution),
			row.Chrom,
			strconv.FormatInt(row.Start, 10),
			strconv.FormatInt(row.End, 10),
			row.Label,
		)
		for _, v := range row.Profile {
			fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile serializes the table to path. The table is written to a
// temporary file and renamed into place, so a failed write never leaves a
// partial artifact behind.
func (t *Table) WriteFile(path string) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return v4cerr.Filef("create output file", path, 0, err)
	}

	if err := t.WriteTSV(f); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return v4cerr.Filef("write output file", path, 0, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return v4cerr.Filef("write output file", path, 0, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return v4cerr.Filef("write output file", path, 0, fmt.Errorf("rename temp file: %w", err))
	}
	return nil
}
