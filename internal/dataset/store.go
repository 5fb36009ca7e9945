// internal/dataset/store.go
// Snapshot dataset in-memory; diganti utuh saat reload / upload admin.

package dataset

import (
	"context"
	"sync"
	"time"

	"dca-oilgas/internal/dca"
	"dca-oilgas/internal/observability"
	"dca-oilgas/internal/util"
)

// Snapshot is an immutable view of the dataset. Records must not be modified
// by readers; the pipeline only reads them.
type Snapshot struct {
	ID       string                 `json:"id"`
	Source   string                 `json:"source"`
	LoadedAt time.Time              `json:"loaded_at"`
	Records  []dca.ProductionRecord `json:"-"`
}

// Status ringkasan snapshot untuk /admin/dataset dan /readyz.
type Status struct {
	Loaded   bool      `json:"loaded"`
	ID       string    `json:"id,omitempty"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Records  int       `json:"records"`
	Series   int       `json:"series"`
}

// Source menghasilkan dataset lengkap (file CSV, tabel MySQL, ...).
type Source interface {
	Name() string
	Load(ctx context.Context) ([]dca.ProductionRecord, error)
}

type Store struct {
	mu      sync.RWMutex
	snap    *Snapshot
	clock   util.Clock
	metrics *observability.Metrics
}

func NewStore(clock util.Clock, m *observability.Metrics) *Store {
	if clock == nil {
		clock = util.RealClock{}
	}
	return &Store{clock: clock, metrics: m}
}

// Replace swaps in a new snapshot built from a private copy of records.
func (s *Store) Replace(source string, records []dca.ProductionRecord) Snapshot {
	cp := make([]dca.ProductionRecord, len(records))
	copy(cp, records)
	snap := &Snapshot{
		ID:       util.NewID(),
		Source:   source,
		LoadedAt: s.clock.Now().UTC(),
		Records:  cp,
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	s.metrics.ObserveDatasetLoad(sourceLabel(source), "ok", len(cp), snap.LoadedAt)
	return *snap
}

// Load membaca src lalu Replace; snapshot lama tetap dipakai bila gagal.
func (s *Store) Load(ctx context.Context, src Source) (Snapshot, error) {
	start := time.Now()
	recs, err := src.Load(ctx)
	if err != nil {
		s.metrics.ObserveDatasetLoad(sourceLabel(src.Name()), "error", 0, time.Time{})
		util.LogJSON(util.LogEntry{
			Level: "error", Event: "dataset.load",
			Fields:     map[string]any{"source": src.Name()},
			DurationMS: time.Since(start).Milliseconds(),
			Error:      err.Error(),
		})
		return Snapshot{}, err
	}
	snap := s.Replace(src.Name(), recs)
	util.LogJSON(util.LogEntry{
		Event:      "dataset.load",
		Fields:     map[string]any{"source": src.Name(), "snapshot": snap.ID, "records": len(recs)},
		DurationMS: time.Since(start).Milliseconds(),
	})
	return snap, nil
}

// Current returns the active snapshot; ok is false before the first load.
func (s *Store) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return Snapshot{}, false
	}
	return *s.snap, true
}

func (s *Store) Ready() bool {
	_, ok := s.Current()
	return ok
}

func (s *Store) Status() Status {
	snap, ok := s.Current()
	if !ok {
		return Status{}
	}
	keys := map[dca.Key]struct{}{}
	for _, r := range snap.Records {
		keys[r.Key()] = struct{}{}
	}
	return Status{
		Loaded:   true,
		ID:       snap.ID,
		Source:   snap.Source,
		LoadedAt: snap.LoadedAt,
		Records:  len(snap.Records),
		Series:   len(keys),
	}
}

// FileSource membaca CSV dari disk setiap Load.
type FileSource struct {
	Path     string
	Encoding string
}

func (f FileSource) Name() string { return "csv:" + f.Path }

func (f FileSource) Load(ctx context.Context) ([]dca.ProductionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(f.Path, f.Encoding)
}

func sourceLabel(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i]
		}
	}
	return name
}
