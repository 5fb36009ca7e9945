// pkg/db/mysql.go
// Helper koneksi database (MySQL produksi, SQLite untuk lokal/test)

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

type Options struct {
	Driver   string // mysql|sqlite
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	Path     string // sqlite: file path atau ":memory:"
	MaxOpen  int
	MaxIdle  int
}

// Open membuka pool dan melakukan ping dengan timeout singkat.
func Open(ctx context.Context, o Options) (*sql.DB, error) {
	var (
		driver, dsn string
	)
	switch o.Driver {
	case "", "mysql":
		driver = "mysql"
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", o.User, o.Password, o.Host, o.Port, o.Name)
	case "sqlite":
		driver, dsn = "sqlite", o.Path
		if dsn == "" {
			dsn = ":memory:"
		}
	default:
		return nil, fmt.Errorf("unsupported driver %q", o.Driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if o.MaxOpen > 0 {
		conn.SetMaxOpenConns(o.MaxOpen)
	}
	if o.MaxIdle > 0 {
		conn.SetMaxIdleConns(o.MaxIdle)
	}
	if driver == "sqlite" {
		// satu koneksi: :memory: per-koneksi
		conn.SetMaxOpenConns(1)
	}
	conn.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return conn, nil
}
