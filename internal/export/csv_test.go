package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dca-oilgas/internal/dca"
)

func sampleTable(t *testing.T) dca.ProjectionTable {
	t.Helper()
	grid := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	exp, err := dca.Exponential(1000, 0.05, 3)
	require.NoError(t, err)
	hyp, err := dca.Hyperbolic(1000, 0.05, 0.65, 3)
	require.NoError(t, err)
	harm, err := dca.Harmonic(1000, 0.05, 3)
	require.NoError(t, err)
	table, err := dca.Assemble(grid, exp, hyp, harm)
	require.NoError(t, err)
	return table
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"t", "date", "qo_exp", "Np_exp", "qo_hip", "Np_hip", "qo_arm", "Np_arm"}, rows[0])
	assert.Equal(t, []string{"0", "2020-01-01", "1000", "0", "1000", "0", "1000", "0"}, rows[1])
	assert.Equal(t, "2", rows[3][0])
	assert.Equal(t, "2020-03-01", rows[3][1])
}

func TestWriteCSV_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, dca.ProjectionTable{}))
	assert.Equal(t, "t,date,qo_exp,Np_exp,qo_hip,Np_hip,qo_arm,Np_arm\n", buf.String())
}

func TestWriteSnappyCSV_RoundTrip(t *testing.T) {
	table := sampleTable(t)
	var plain, packed bytes.Buffer
	require.NoError(t, WriteCSV(&plain, table))
	require.NoError(t, WriteSnappyCSV(&packed, table))

	got, err := io.ReadAll(snappy.NewReader(&packed))
	require.NoError(t, err)
	assert.Equal(t, plain.String(), string(got))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Proyeccion_P-1_12_meses.csv", Filename("P-1", 12))
	assert.Equal(t, "Proyeccion_POZO_3_A_24_meses.csv", Filename("POZO 3/A", 24))
	assert.Equal(t, "Proyeccion_pozo_0_meses.csv", Filename("", 0))
}
