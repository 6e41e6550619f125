package region

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zoechen0717/V4C/internal/v4cerr"
)

// ReadBed reads a tab-delimited BED file with no header. The file must have
// either exactly 3 columns (chrom, start, end) or at least 4, in which case
// the 4th column becomes the region label and any further columns are
// ignored. The column shape must be consistent across the whole file.
func ReadBed(path string) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, v4cerr.Filef("open BED file", path, 0, err)
	}
	defer f.Close()

	var regions []Region
	labeled := false

	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, bedError(path, lineNumber, fmt.Sprintf("expected at least 3 columns, found %d", len(fields)))
		}
		if len(regions) == 0 {
			labeled = len(fields) >= 4
		} else if labeled != (len(fields) >= 4) {
			return nil, bedError(path, lineNumber, "inconsistent column count; all rows must have 3 columns or all at least 4")
		}

		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, bedError(path, lineNumber, fmt.Sprintf("invalid start position %q", fields[1]))
		}
		end, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, bedError(path, lineNumber, fmt.Sprintf("invalid end position %q", fields[2]))
		}

		r := Region{Chrom: fields[0], ViewpointStart: start, ViewpointEnd: end}
		if labeled {
			r.Label = fields[3]
		}
		regions = append(regions, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, v4cerr.Filef("read BED file", path, 0, err)
	}

	return regions, nil
}

func bedError(path string, line int, msg string) error {
	return v4cerr.Filef("parse BED file", path, 0, fmt.Errorf("line %d: %s", line, msg))
}
