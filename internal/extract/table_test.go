package extract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoechen0717/V4C/internal/v4cerr"
)

func TestTable_ColumnNames(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Append(Row{
		File:        "sample.mcool",
		Resolution:  5000,
		Chrom:       "chr17",
		Start:       45939076,
		End:         45939076,
		Profile:     []float64{0.1, 0.2, 0.3},
		WindowStart: 45889076,
	}))

	names := table.ColumnNames()
	require.Len(t, names, 6+3)
	assert.Equal(t, []string{"mcool", "res", "chrom", "start", "end", "gene_name"}, names[:6])
	assert.Equal(t, []string{"45889076", "45894076", "45899076"}, names[6:])
}

func TestTable_EmptyHasBaseColumnsOnly(t *testing.T) {
	assert.Equal(t, []string{"mcool", "res", "chrom", "start", "end", "gene_name"}, NewTable().ColumnNames())
}

func TestTable_GeometryDivergenceRejected(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Append(Row{File: "a.mcool", Resolution: 5000, Profile: make([]float64, 20)}))

	err := table.Append(Row{File: "a.mcool", Resolution: 5000, Profile: make([]float64, 24)})
	require.Error(t, err)
	var inputErr *v4cerr.InputError
	assert.True(t, errors.As(err, &inputErr), "bin-count divergence is a validation error")

	err = table.Append(Row{File: "a.mcool", Resolution: 10000, Profile: make([]float64, 20)})
	require.Error(t, err)
	assert.True(t, errors.As(err, &inputErr), "resolution divergence is a validation error")

	require.NoError(t, table.Append(Row{File: "b.mcool", Resolution: 5000, Profile: make([]float64, 20)}))
	assert.Equal(t, 2, table.Len())
}

func TestTable_WriteTSV(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Append(Row{
		File:        "sample.mcool",
		Resolution:  5000,
		Chrom:       "chr17",
		Start:       45894000,
		End:         45896000,
		Label:       "MAPT",
		Profile:     []float64{0, 0.25, 1},
		WindowStart: 45844000,
	}))
	require.NoError(t, table.Append(Row{
		File:        "sample.mcool",
		Resolution:  5000,
		Chrom:       "chr17",
		Start:       45620000,
		End:         45622000,
		Profile:     []float64{0.5, 1, 0.5},
		WindowStart: 45570000,
	}))

	var buf bytes.Buffer
	require.NoError(t, table.WriteTSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "mcool\tres\tchrom\tstart\tend\tgene_name\t45844000\t45849000\t45854000", lines[0])
	assert.Equal(t, "sample.mcool\t5000\tchr17\t45894000\t45896000\tMAPT\t0\t0.25\t1", lines[1])
	assert.Equal(t, "sample.mcool\t5000\tchr17\t45620000\t45622000\t\t0.5\t1\t0.5",
		lines[2], "missing label serializes as empty gene_name")
}

func TestTable_WriteFile(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Append(Row{
		File: "s.mcool", Resolution: 5000, Chrom: "chr1",
		Profile: []float64{1, 2}, WindowStart: 0,
	}))

	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, table.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "mcool\t"))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not linger")
}

func TestTable_WriteFileBadDestination(t *testing.T) {
	table := NewTable()
	path := filepath.Join(t.TempDir(), "missing", "deeper", "out.tsv")

	err := table.WriteFile(path)
	require.Error(t, err)
	var fileErr *v4cerr.FileError
	assert.True(t, errors.As(err, &fileErr))
}
