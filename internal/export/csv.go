// internal/export/csv.go
// Tulis ProjectionTable ke CSV (UTF-8, tanpa kolom index), opsional snappy.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/golang/snappy"

	"dca-oilgas/internal/dca"
)

const dateLayout = "2006-01-02"

// WriteCSV writes the header row (dca.Columns) followed by one row per point.
// Floats use the shortest representation that round-trips.
func WriteCSV(w io.Writer, table dca.ProjectionTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dca.Columns); err != nil {
		return err
	}
	for _, p := range table.Points() {
		row := []string{
			strconv.Itoa(p.T),
			p.Date.Format(dateLayout),
			ftoa(p.QoExp), ftoa(p.NpExp),
			ftoa(p.QoHyp), ftoa(p.NpHyp),
			ftoa(p.QoHarm), ftoa(p.NpHarm),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSnappyCSV sama dengan WriteCSV tapi dibungkus framing format snappy.
func WriteSnappyCSV(w io.Writer, table dca.ProjectionTable) error {
	sw := snappy.NewBufferedWriter(w)
	if err := WriteCSV(sw, table); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename: Proyeccion_<well>_<horizon>_meses.csv (nama download asal).
func Filename(well string, horizonMonths int) string {
	w := unsafeName.ReplaceAllString(well, "_")
	if w == "" {
		w = "pozo"
	}
	return fmt.Sprintf("Proyeccion_%s_%d_meses.csv", w, horizonMonths)
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
