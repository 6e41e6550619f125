// Package coolstore provides DuckDB-backed access to multi-resolution Hi-C
// contact matrices. A store holds the bin table and upper-triangle pixel
// table of each resolution layer; fetches assemble dense symmetric windows,
// optionally ICE-balanced with the per-bin weights.
package coolstore

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	_ "github.com/marcboeker/go-duckdb"
)

// Distinguishable fetch failures, matched with errors.Is.
var (
	ErrResolutionNotFound = errors.New("resolution layer not present")
	ErrUnknownChrom       = errors.New("chromosome not present")
	ErrEmptyWindow        = errors.New("window overlaps no bins")
)

// Bin is one genomic bin of a resolution layer. A NaN Weight marks a bin
// excluded from ICE balancing.
type Bin struct {
	ID     int64
	Chrom  string
	Start  int64
	End    int64
	Weight float64
}

// Pixel is one upper-triangle contact count (Bin1 <= Bin2).
type Pixel struct {
	Bin1  int64
	Bin2  int64
	Count float64
}

// Store is a writable handle on a contact store database, used when
// building or loading stores.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) a contact store database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open contact store: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSchema creates the bin and pixel tables.
func (s *Store) CreateSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS bins (
			resolution BIGINT,
			bin_id BIGINT,
			chrom VARCHAR,
			start BIGINT,
			end_ BIGINT,
			weight DOUBLE
		);
		CREATE TABLE IF NOT EXISTS pixels (
			resolution BIGINT,
			bin1_id BIGINT,
			bin2_id BIGINT,
			count DOUBLE
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertBins inserts the bin table of one resolution layer.
func (s *Store) InsertBins(resolution int, bins []Bin) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert bins: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO bins VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert bins: %w", err)
	}
	defer stmt.Close()

	for _, b := range bins {
		weight := sql.NullFloat64{Float64: b.Weight, Valid: !math.IsNaN(b.Weight)}
		if _, err := stmt.Exec(resolution, b.ID, b.Chrom, b.Start, b.End, weight); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert bin %d: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

// InsertPixels inserts upper-triangle contact counts of one resolution layer.
func (s *Store) InsertPixels(resolution int, pixels []Pixel) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert pixels: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO pixels VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert pixels: %w", err)
	}
	defer stmt.Close()

	for _, p := range pixels {
		if _, err := stmt.Exec(resolution, p.Bin1, p.Bin2, p.Count); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert pixel (%d,%d): %w", p.Bin1, p.Bin2, err)
		}
	}
	return tx.Commit()
}

// Resolutions lists the resolution layers present in the store.
func (s *Store) Resolutions() ([]int, error) {
	rows, err := s.db.Query("SELECT DISTINCT resolution FROM bins ORDER BY resolution")
	if err != nil {
		return nil, fmt.Errorf("query resolutions: %w", err)
	}
	defer rows.Close()

	var resolutions []int
	for rows.Next() {
		var res int
		if err := rows.Scan(&res); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		resolutions = append(resolutions, res)
	}
	return resolutions, rows.Err()
}
