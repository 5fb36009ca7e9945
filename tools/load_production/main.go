/*
Kompilasi manual:
  go build -o tools/load_production/load_production ./tools/load_production

Pakai contoh:
  ./tools/load_production/load_production \
    -csv data/produccion.csv -encoding latin1 \
    -driver mysql -dsn-host 127.0.0.1 -db dca -user root -password secret \
    -truncate
*/

// [FILE] tools/load_production/main.go
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"dca-oilgas/internal/dataset"
	mysqlrepo "dca-oilgas/internal/repositories/mysql"
	"dca-oilgas/pkg/db"
)

var (
	csvPath  = flag.String("csv", "", "CSV produksi bulanan (campo,yacimiento,pozo,unidad,fecha,q)")
	encoding = flag.String("encoding", dataset.EncodingLatin1, "latin1|utf8")
	driver   = flag.String("driver", "mysql", "mysql|sqlite")
	host     = flag.String("dsn-host", "127.0.0.1", "MySQL host")
	port     = flag.String("port", "3306", "MySQL port")
	name     = flag.String("db", "dca", "MySQL database")
	user     = flag.String("user", "root", "MySQL user")
	password = flag.String("password", "", "MySQL password")
	path     = flag.String("path", "dca.db", "SQLite file")
	truncate = flag.Bool("truncate", false, "hapus isi prod_monthly dulu")
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	flag.Parse()
	if *csvPath == "" {
		log.Fatal("-csv wajib diisi")
	}

	recs, err := dataset.ReadFile(*csvPath, *encoding)
	must(err)
	log.Printf("[ok] parsed %d rows from %s", len(recs), *csvPath)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, db.Options{
		Driver: *driver, Host: *host, Port: *port, Name: *name,
		User: *user, Password: *password, Path: *path,
	})
	must(err)
	defer conn.Close()

	repo := &mysqlrepo.ProductionRepo{DB: conn}
	must(repo.EnsureSchema(ctx))

	if *truncate {
		_, err := conn.ExecContext(ctx, "DELETE FROM prod_monthly")
		must(err)
		log.Printf("[ok] cleared prod_monthly")
	}

	start := time.Now()
	must(repo.InsertRecords(ctx, recs))
	log.Printf("[done] inserted %d rows into prod_monthly in %s", len(recs), time.Since(start).Round(time.Millisecond))
}
