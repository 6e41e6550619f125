package extract

import "github.com/zoechen0717/V4C/internal/v4cerr"

// Method selects the profile normalization policy.
type Method string

const (
	// MethodMinMax rescales a profile linearly into [0, 1]. Absolute scale
	// is lost.
	MethodMinMax Method = "minmax"
	// MethodSelf divides a profile by its own viewpoint value, putting
	// exactly 1.0 at the viewpoint bin for scale-free shape comparison.
	MethodSelf Method = "self"
)

// ParseMethod validates a normalization method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodMinMax, MethodSelf:
		return Method(s), nil
	}
	return "", v4cerr.Inputf("unknown normalization method %q; expected minmax or self", s)
}

// minMaxNormalize rescales p into [0, 1] in place. A flat profile
// (max == min) becomes all-zero.
func minMaxNormalize(p []float64) {
	if len(p) == 0 {
		return
	}
	lo, hi := p[0], p[0]
	for _, v := range p[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		for i := range p {
			p[i] = 0
		}
		return
	}
	span := hi - lo
	for i := range p {
		p[i] = (p[i] - lo) / span
	}
}

// selfNormalize divides p in place by its value at the viewpoint bin. A
// non-positive viewpoint value cannot anchor the profile, so the whole
// profile becomes all-zero instead.
func selfNormalize(p []float64, viewpoint int) {
	if viewpoint < 0 || viewpoint >= len(p) || p[viewpoint] <= 0 {
		for i := range p {
			p[i] = 0
		}
		return
	}
	anchor := p[viewpoint]
	for i := range p {
		p[i] /= anchor
	}
}
