package mysql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"dca-oilgas/internal/dataset"
	"dca-oilgas/internal/dca"
)

func newRepo(t *testing.T) *ProductionRepo {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	r := &ProductionRepo{DB: conn}
	require.NoError(t, r.EnsureSchema(context.Background()))
	return r
}

func d(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

func seed() []dca.ProductionRecord {
	var out []dca.ProductionRecord
	for i, q := range []float64{100, 90, 81} {
		out = append(out, dca.ProductionRecord{Field: "CAMPO-1", Reservoir: "YAC-A", Well: "P-1", Fluid: "aceite", Date: d(2020, time.Month(1+i)), Rate: q})
	}
	out = append(out, dca.ProductionRecord{Field: "CAMPO-1", Reservoir: "YAC-A", Well: "P-2", Fluid: "gas", Date: d(2021, 5), Rate: 7.5})
	return out
}

func TestProductionRepo_InsertAndList(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	require.NoError(t, r.InsertRecords(ctx, seed()))

	all, err := r.ListRecords(ctx, ProdFilter{})
	require.NoError(t, err)
	assert.Equal(t, seed(), all)

	p1, err := r.ListRecords(ctx, ProdFilter{Well: "P-1", Fluid: "aceite"})
	require.NoError(t, err)
	require.Len(t, p1, 3)

	start, end := d(2020, 2), d(2020, 3)
	win, err := r.ListRecords(ctx, ProdFilter{Well: "P-1", Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, win, 2)
	assert.Equal(t, 90.0, win[0].Rate)

	page, err := r.ListRecords(ctx, ProdFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "P-2", page[1].Well)
}

func TestProductionRepo_AsDatasetSource(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	require.NoError(t, r.InsertRecords(ctx, seed()))

	store := dataset.NewStore(nil, nil)
	snap, err := store.Load(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, "db:prod_monthly", snap.Source)
	assert.Len(t, snap.Records, 4)

	series, err := dca.Filter(snap.Records, dca.Selection{Field: "CAMPO-1", Reservoir: "YAC-A", Well: "P-1", Fluid: "aceite"})
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
