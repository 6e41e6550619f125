package region

import (
	"strconv"
	"strings"

	"github.com/zoechen0717/V4C/internal/v4cerr"
)

// ParseCoords parses a strict "chrom:start-end" specification. Both
// positions must be non-negative integers with start < end.
func ParseCoords(spec string) (chrom string, start, end int64, err error) {
	colon := strings.Index(spec, ":")
	if colon <= 0 {
		return "", 0, 0, v4cerr.Inputf("coordinates %q: expected chrom:start-end", spec)
	}
	chrom = spec[:colon]

	rangePart := spec[colon+1:]
	dash := strings.Index(rangePart, "-")
	if dash < 0 {
		return "", 0, 0, v4cerr.Inputf("coordinates %q: missing '-' separator", spec)
	}

	start, err = strconv.ParseInt(rangePart[:dash], 10, 64)
	if err != nil {
		return "", 0, 0, v4cerr.Inputf("coordinates %q: start position %q is not an integer", spec, rangePart[:dash])
	}
	end, err = strconv.ParseInt(rangePart[dash+1:], 10, 64)
	if err != nil {
		return "", 0, 0, v4cerr.Inputf("coordinates %q: end position %q is not an integer", spec, rangePart[dash+1:])
	}

	if start < 0 {
		return "", 0, 0, v4cerr.Inputf("coordinates %q: start position is negative", spec)
	}
	if start >= end {
		return "", 0, 0, v4cerr.Inputf("coordinates %q: start must be less than end", spec)
	}
	return chrom, start, end, nil
}
