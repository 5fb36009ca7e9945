package dataset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"dca-oilgas/internal/dca"
	"dca-oilgas/internal/util"
)

const spanishCSV = `campo,yacimiento,pozo,unidad,fecha,q
CAMPO-1,YAC-A,P-1,aceite,2020-01-01,100
CAMPO-1,YAC-A,P-1,aceite,2020-02-01 00:00:00,90
CAMPO-1,YAC-A,P-1,aceite,2020-03-15T13:45:00,81
`

func TestReadCSV_SpanishHeaders(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(spanishCSV), EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, dca.ProductionRecord{
		Field: "CAMPO-1", Reservoir: "YAC-A", Well: "P-1", Fluid: "aceite",
		Date: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), Rate: 81,
	}, recs[2])
}

func TestReadCSV_EnglishHeadersAnyOrderAndCase(t *testing.T) {
	in := "Rate,Date,WELL,Fluid,Reservoir,Field,notes\n" +
		"12.5,2021-06-01,W-7,gas,R1,F1,ignored\n"
	recs, err := ReadCSV(strings.NewReader(in), "utf-8")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "W-7", recs[0].Well)
	assert.Equal(t, "gas", recs[0].Fluid)
	assert.Equal(t, 12.5, recs[0].Rate)
}

func TestReadCSV_Latin1(t *testing.T) {
	utf := "campo,yacimiento,pozo,unidad,fecha,q\nCAMPO-1,YAC-Ñ,P-1,aceite,2020-01-01,5\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(utf))
	require.NoError(t, err)
	require.NotEqual(t, []byte(utf), encoded)

	recs, err := ReadCSV(bytes.NewReader(encoded), "latin-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "YAC-Ñ", recs[0].Reservoir)
}

func TestReadCSV_BOMHeader(t *testing.T) {
	in := "\ufeff" + spanishCSV
	_, err := ReadCSV(strings.NewReader(in), EncodingUTF8)
	require.NoError(t, err)
	_, err = ReadCSV(strings.NewReader(in), EncodingLatin1)
	require.NoError(t, err)
}

func TestReadCSV_Errors(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		line   int
		column string
	}{
		{"missing column", "campo,pozo,fecha,q\n", 1, ""},
		{"bad date", "campo,yacimiento,pozo,unidad,fecha,q\nA,B,C,D,01-13-2020,1\n", 2, "date"},
		{"bad rate", "campo,yacimiento,pozo,unidad,fecha,q\nA,B,C,D,2020-01-01,1\nA,B,C,D,2020-02-01,abc\n", 3, "rate"},
		{"negative rate", "campo,yacimiento,pozo,unidad,fecha,q\nA,B,C,D,2020-01-01,-3\n", 2, "rate"},
		{"empty", "", 1, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.in), EncodingUTF8)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.Equal(t, tc.line, pe.Line)
			assert.Equal(t, tc.column, pe.Column)
		})
	}

	_, err := ReadCSV(strings.NewReader("campo\n"), EncodingUTF8)
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadCSV(strings.NewReader(spanishCSV), "utf-16")
	assert.Error(t, err)
}

func TestStore_ReplaceAndCurrent(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	s := NewStore(util.FixedClock{At: at}, nil)
	assert.False(t, s.Ready())
	assert.Equal(t, Status{}, s.Status())

	recs, err := ReadCSV(strings.NewReader(spanishCSV), EncodingUTF8)
	require.NoError(t, err)
	snap := s.Replace("upload", recs)
	recs[0].Rate = -1

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, snap.ID, cur.ID)
	assert.Equal(t, 100.0, cur.Records[0].Rate)
	assert.Equal(t, at, cur.LoadedAt)

	st := s.Status()
	assert.True(t, st.Loaded)
	assert.Equal(t, 3, st.Records)
	assert.Equal(t, 1, st.Series)
}

type failingSource struct{}

func (failingSource) Name() string { return "test:fail" }
func (failingSource) Load(context.Context) ([]dca.ProductionRecord, error) {
	return nil, errors.New("boom")
}

func TestStore_FailedLoadKeepsSnapshot(t *testing.T) {
	s := NewStore(nil, nil)
	first := s.Replace("seed", []dca.ProductionRecord{{Well: "P-1", Rate: 1}})

	_, err := s.Load(context.Background(), failingSource{})
	require.Error(t, err)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, first.ID, cur.ID)
}

func TestRefresher_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "produccion.csv")
	require.NoError(t, os.WriteFile(path, []byte(spanishCSV), 0o600))

	s := NewStore(nil, nil)
	r := NewRefresher(s, FileSource{Path: path, Encoding: EncodingUTF8}, 0)
	require.NoError(t, r.Start())
	defer r.Stop()

	require.NoError(t, r.Refresh(context.Background()))
	st := s.Status()
	assert.Equal(t, 3, st.Records)
	assert.Equal(t, "csv:"+path, st.Source)
}

func TestRefresher_ScheduledReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "produccion.csv")
	require.NoError(t, os.WriteFile(path, []byte(spanishCSV), 0o600))

	s := NewStore(nil, nil)
	r := NewRefresher(s, FileSource{Path: path, Encoding: EncodingUTF8}, time.Second)
	require.NoError(t, r.Start())
	defer r.Stop()

	assert.Eventually(t, s.Ready, 5*time.Second, 50*time.Millisecond)
}
