// repositories/mysql/production_repo.go
// Repo untuk data produksi bulanan per sumur & fluida
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dca-oilgas/internal/dataset"
	"dca-oilgas/internal/dca"
)

type ProductionRepo struct{ DB *sql.DB }

type ProdFilter struct {
	Field     string
	Reservoir string
	Well      string
	Fluid     string
	Start     *time.Time // inclusive
	End       *time.Time // inclusive
	Limit     int        // 0 = semua baris
	Offset    int
}

// Skema portable MySQL / SQLite.
const prodSchema = `
	CREATE TABLE IF NOT EXISTS prod_monthly (
		field     VARCHAR(64) NOT NULL,
		reservoir VARCHAR(64) NOT NULL,
		well      VARCHAR(64) NOT NULL,
		fluid     VARCHAR(32) NOT NULL,
		prod_date DATE        NOT NULL,
		rate      DOUBLE      NOT NULL
	)`

func (r *ProductionRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, prodSchema); err != nil {
		return fmt.Errorf("create prod_monthly: %w", err)
	}
	return nil
}

func (r *ProductionRepo) ListRecords(ctx context.Context, f ProdFilter) ([]dca.ProductionRecord, error) {
	if f.Offset < 0 {
		f.Offset = 0
	}

	const base = `
		SELECT field, reservoir, well, fluid, prod_date, rate
		FROM prod_monthly
		WHERE 1=1`
	args := []any{}
	q := base

	for _, c := range []struct{ col, val string }{
		{"field", f.Field}, {"reservoir", f.Reservoir}, {"well", f.Well}, {"fluid", f.Fluid},
	} {
		if c.val != "" {
			q += ` AND ` + c.col + ` = ?`
			args = append(args, c.val)
		}
	}
	if f.Start != nil {
		q += ` AND prod_date >= ?`
		args = append(args, f.Start.Format("2006-01-02"))
	}
	if f.End != nil {
		q += ` AND prod_date <= ?`
		args = append(args, f.End.Format("2006-01-02"))
	}

	q += ` ORDER BY field, reservoir, well, fluid, prod_date`
	if f.Limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query production monthly: %w", err)
	}
	defer rows.Close()

	var out []dca.ProductionRecord
	for rows.Next() {
		var (
			rec dca.ProductionRecord
			raw any
		)
		if err := rows.Scan(&rec.Field, &rec.Reservoir, &rec.Well, &rec.Fluid, &raw, &rec.Rate); err != nil {
			return nil, err
		}
		if rec.Date, err = scanDate(raw); err != nil {
			return nil, fmt.Errorf("prod_date for %s/%s: %w", rec.Well, rec.Fluid, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// InsertRecords menulis batch dalam satu transaksi.
func (r *ProductionRepo) InsertRecords(ctx context.Context, recs []dca.ProductionRecord) error {
	const batch = 200
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := 0; i < len(recs); i += batch {
		end := min(i+batch, len(recs))
		chunk := recs[i:end]
		q := `INSERT INTO prod_monthly (field, reservoir, well, fluid, prod_date, rate) VALUES `
		args := make([]any, 0, len(chunk)*6)
		for j, rec := range chunk {
			if j > 0 {
				q += ", "
			}
			q += "(" + placeholders(6) + ")"
			args = append(args, rec.Field, rec.Reservoir, rec.Well, rec.Fluid, rec.Date.Format("2006-01-02"), rec.Rate)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert prod_monthly: %w", err)
		}
	}
	return tx.Commit()
}

// Name + Load: ProductionRepo dipakai sebagai dataset.Source.
func (r *ProductionRepo) Name() string { return "db:prod_monthly" }

func (r *ProductionRepo) Load(ctx context.Context) ([]dca.ProductionRecord, error) {
	return r.ListRecords(ctx, ProdFilter{})
}

func scanDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	case string:
		return dataset.ParseDate(d)
	case []byte:
		return dataset.ParseDate(string(d))
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %T", v)
	}
}
