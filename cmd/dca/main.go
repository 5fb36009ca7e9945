// cmd/dca/main.go
// CLI: CSV produksi -> CSV proyeksi (exp/hip/arm) untuk satu sumur.
//
//	go run ./cmd/dca -csv data.csv -well P-1 -fluid aceite -start 2020-01-01 -horizon 24 -out proy.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"dca-oilgas/internal/dataset"
	"dca-oilgas/internal/dca"
	"dca-oilgas/internal/export"
	"dca-oilgas/internal/services"
	"dca-oilgas/internal/util"
)

func main() {
	var (
		csvPath   = flag.String("csv", "", "path CSV produksi (wajib)")
		encoding  = flag.String("encoding", dataset.EncodingLatin1, "latin1|utf8")
		field     = flag.String("field", "", "campo (kosong = pertama)")
		reservoir = flag.String("reservoir", "", "yacimiento (kosong = pertama)")
		well      = flag.String("well", "", "pozo (kosong = pertama)")
		fluid     = flag.String("fluid", "", "unidad (kosong = pertama)")
		start     = flag.String("start", "", "awal window YYYY-MM-DD")
		end       = flag.String("end", "", "akhir window YYYY-MM-DD")
		b         = flag.Float64("b", dca.DefaultB, "eksponen hiperbolik, 0 < b < 1")
		d         = flag.Float64("d", 0, "override D bulanan (tanpa flag = estimasi)")
		qi        = flag.Float64("qi", 0, "override qi (tanpa flag = rate pertama di window)")
		horizon   = flag.Int("horizon", dca.DefaultHorizonMonths, "bulan proyeksi")
		zeroMode  = flag.String("zero-rate", string(dca.ZeroSubstitute), "substitute|exclude")
		out       = flag.String("out", "", "file output (kosong = stdout; '.' = nama default)")
		snappy    = flag.Bool("snappy", false, "kompres output dengan snappy framing")
	)
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	recs, err := dataset.ReadFile(*csvPath, *encoding)
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}
	store := dataset.NewStore(util.RealClock{}, nil)
	store.Replace("csv:"+*csvPath, recs)
	svc := services.NewForecastService(store, services.DefaultDefaults(), nil, nil)

	req := services.ForecastRequest{
		SelectionRequest: services.SelectionRequest{Field: *field, Reservoir: *reservoir, Well: *well, Fluid: *fluid},
		Start:            *start,
		End:              *end,
		HorizonMonths:    horizon,
		ZeroRateMode:     *zeroMode,
	}
	if set["b"] {
		req.B = b
	}
	if set["d"] {
		req.D = d
	}
	if set["qi"] {
		req.Qi = qi
	}

	f, err := svc.Forecast(context.Background(), req)
	if err != nil {
		log.Fatalf("forecast: %v", err)
	}
	fmt.Fprintln(os.Stderr, services.TemplateSummary(f))

	path := *out
	if path == "." {
		path = export.Filename(f.Selection.Well, f.Parameters.HorizonMonths)
		if *snappy {
			path += ".sz"
		}
	}
	if path != "" {
		log.Printf("writing %s (%d rows)", path, f.Table.Len())
	}
	if err := writeOutput(os.Stdout, path, *snappy, f.Table); err != nil {
		log.Fatalf("write csv: %v", err)
	}
}

// writeOutput menulis tabel ke path (kosong = stdout). File ditutup eksplisit
// dan error Close dilaporkan, supaya output terpotong tidak dianggap sukses.
func writeOutput(stdout io.Writer, path string, compress bool, table dca.ProjectionTable) (err error) {
	w := stdout
	if path != "" {
		file, ferr := os.Create(path)
		if ferr != nil {
			return fmt.Errorf("create output: %w", ferr)
		}
		defer func() {
			if cerr := file.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		w = file
	}

	if compress {
		return export.WriteSnappyCSV(w, table)
	}
	return export.WriteCSV(w, table)
}
