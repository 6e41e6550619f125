package coolstore

import (
	"database/sql"
	"fmt"
	"math"

	_ "github.com/marcboeker/go-duckdb"
)

// Layer is a read handle on one resolution layer of a contact store. It
// satisfies the extraction engine's MatrixSource interface.
type Layer struct {
	db         *sql.DB
	path       string
	resolution int
	balanced   bool
}

// OpenLayer opens one resolution layer of the contact store at path. It
// fails with ErrResolutionNotFound when the layer is absent.
func OpenLayer(path string, resolution int, balanced bool) (*Layer, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open contact store: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT count(*) FROM bins WHERE resolution = ?", resolution).Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("query bins: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("%w: %d", ErrResolutionNotFound, resolution)
	}

	return &Layer{db: db, path: path, resolution: resolution, balanced: balanced}, nil
}

// Close releases the layer's database handle.
func (l *Layer) Close() error {
	return l.db.Close()
}

// Resolution returns the layer's bin size in base pairs.
func (l *Layer) Resolution() int {
	return l.resolution
}

// Fetch assembles the dense symmetric contact matrix over all bins of chrom
// overlapping [start, end). When the layer was opened balanced, counts are
// multiplied by the ICE weights of both bins; bins without a weight yield
// NaN entries.
func (l *Layer) Fetch(chrom string, start, end int64) ([][]float64, error) {
	bins, err := l.windowBins(chrom, start, end)
	if err != nil {
		return nil, err
	}

	n := len(bins)
	lo := bins[0].ID
	hi := bins[n-1].ID

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	if l.balanced {
		for i := range matrix {
			for j := range matrix[i] {
				if math.IsNaN(bins[i].Weight) || math.IsNaN(bins[j].Weight) {
					matrix[i][j] = math.NaN()
				}
			}
		}
	}

	rows, err := l.db.Query(`
		SELECT bin1_id, bin2_id, count
		FROM pixels
		WHERE resolution = ? AND bin1_id BETWEEN ? AND ? AND bin2_id BETWEEN ? AND ?
	`, l.resolution, lo, hi, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query pixels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bin1, bin2 int64
		var count float64
		if err := rows.Scan(&bin1, &bin2, &count); err != nil {
			return nil, fmt.Errorf("scan pixel: %w", err)
		}
		i := int(bin1 - lo)
		j := int(bin2 - lo)

		v := count
		if l.balanced {
			v *= bins[i].Weight * bins[j].Weight
		}
		matrix[i][j] = v
		matrix[j][i] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read pixels: %w", err)
	}

	return matrix, nil
}

// windowBins returns the bins of chrom overlapping [start, end) in bin-id
// order. Bin ids within one chromosome are contiguous.
func (l *Layer) windowBins(chrom string, start, end int64) ([]Bin, error) {
	rows, err := l.db.Query(`
		SELECT bin_id, start, end_, weight
		FROM bins
		WHERE resolution = ? AND chrom = ? AND end_ > ? AND start < ?
		ORDER BY bin_id
	`, l.resolution, chrom, start, end)
	if err != nil {
		return nil, fmt.Errorf("query bins: %w", err)
	}
	defer rows.Close()

	var bins []Bin
	for rows.Next() {
		b := Bin{Chrom: chrom, Weight: math.NaN()}
		var weight sql.NullFloat64
		if err := rows.Scan(&b.ID, &b.Start, &b.End, &weight); err != nil {
			return nil, fmt.Errorf("scan bin: %w", err)
		}
		if weight.Valid {
			b.Weight = weight.Float64
		}
		bins = append(bins, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bins: %w", err)
	}

	if len(bins) == 0 {
		var chromCount int
		err := l.db.QueryRow(
			"SELECT count(*) FROM bins WHERE resolution = ? AND chrom = ?",
			l.resolution, chrom,
		).Scan(&chromCount)
		if err != nil {
			return nil, fmt.Errorf("query chromosome: %w", err)
		}
		if chromCount == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownChrom, chrom)
		}
		return nil, fmt.Errorf("%w: %s:%d-%d", ErrEmptyWindow, chrom, start, end)
	}

	return bins, nil
}
