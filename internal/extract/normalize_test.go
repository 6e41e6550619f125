package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoechen0717/V4C/internal/v4cerr"
)

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("minmax")
	require.NoError(t, err)
	assert.Equal(t, MethodMinMax, m)

	m, err = ParseMethod("self")
	require.NoError(t, err)
	assert.Equal(t, MethodSelf, m)

	for _, bad := range []string{"", "zscore", "MinMax", "SELF"} {
		_, err := ParseMethod(bad)
		require.Error(t, err, bad)
		var inputErr *v4cerr.InputError
		assert.True(t, errors.As(err, &inputErr))
	}
}

func TestMinMaxNormalize(t *testing.T) {
	p := []float64{2, 8, 4, 10, 2}
	minMaxNormalize(p)

	assert.Equal(t, []float64{0, 0.75, 0.25, 1, 0}, p)
}

func TestMinMaxNormalize_PreservesArgminArgmax(t *testing.T) {
	p := []float64{0.3, 0.1, 0.9, 0.5, 0.2}
	minMaxNormalize(p)

	for _, v := range p {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Equal(t, 1.0, p[2])
	assert.Equal(t, 0.0, p[1])
}

func TestMinMaxNormalize_FlatProfile(t *testing.T) {
	p := []float64{3, 3, 3, 3}
	minMaxNormalize(p)
	assert.Equal(t, []float64{0, 0, 0, 0}, p)

	single := []float64{7}
	minMaxNormalize(single)
	assert.Equal(t, []float64{0}, single)

	var empty []float64
	minMaxNormalize(empty)
	assert.Empty(t, empty)
}

func TestSelfNormalize(t *testing.T) {
	p := []float64{1, 2, 4, 2, 1}
	selfNormalize(p, 2)

	assert.Equal(t, []float64{0.25, 0.5, 1, 0.5, 0.25}, p)
}

func TestSelfNormalize_ViewpointIsExactlyOne(t *testing.T) {
	p := []float64{0.3, 0.7, 0.113, 0.9}
	selfNormalize(p, 2)
	assert.Equal(t, 1.0, p[2])
}

func TestSelfNormalize_NonPositiveViewpoint(t *testing.T) {
	zero := []float64{1, 0, 2}
	selfNormalize(zero, 1)
	assert.Equal(t, []float64{0, 0, 0}, zero)

	negative := []float64{1, -0.5, 2}
	selfNormalize(negative, 1)
	assert.Equal(t, []float64{0, 0, 0}, negative)
}

func TestSelfNormalize_ViewpointOutOfRange(t *testing.T) {
	p := []float64{1, 2, 3}
	selfNormalize(p, 5)
	assert.Equal(t, []float64{0, 0, 0}, p)
}
