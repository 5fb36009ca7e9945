// internal/dca/filter.go
// SeriesFilter: field -> reservoir -> well -> fluid

package dca

import (
	"sort"
	"strings"
)

// Selection pilihan kategori bertingkat. Field kosong = belum dipilih.
type Selection struct {
	Field     string `json:"field"`
	Reservoir string `json:"reservoir"`
	Well      string `json:"well"`
	Fluid     string `json:"fluid"`
}

func (s Selection) Key() Key {
	return Key{Field: s.Field, Reservoir: s.Reservoir, Well: s.Well, Fluid: s.Fluid}
}

// SelectionOptions lists the candidate values per level. Each list is derived
// from the rows left after the previous levels were applied, in order of first
// appearance in the dataset.
type SelectionOptions struct {
	Fields     []string `json:"fields"`
	Reservoirs []string `json:"reservoirs"`
	Wells      []string `json:"wells"`
	Fluids     []string `json:"fluids"`
}

type level struct {
	name string
	get  func(ProductionRecord) string
	pick func(Selection) string
}

var levels = []level{
	{"field", func(r ProductionRecord) string { return r.Field }, func(s Selection) string { return s.Field }},
	{"reservoir", func(r ProductionRecord) string { return r.Reservoir }, func(s Selection) string { return s.Reservoir }},
	{"well", func(r ProductionRecord) string { return r.Well }, func(s Selection) string { return s.Well }},
	{"fluid", func(r ProductionRecord) string { return r.Fluid }, func(s Selection) string { return s.Fluid }},
}

// Filter narrows the dataset to one well's single-fluid series. Levels are
// applied in order and the first level that leaves zero rows fails with a
// *SelectionError wrapping ErrEmptySelection. The dataset is not modified.
func Filter(dataset []ProductionRecord, sel Selection) (WellSeries, error) {
	rows := dataset
	for _, lv := range levels {
		want := strings.TrimSpace(lv.pick(sel))
		rows = keep(rows, lv.get, want)
		if len(rows) == 0 {
			return WellSeries{}, &SelectionError{Level: lv.name, Value: want, Err: ErrEmptySelection}
		}
	}
	// key dari baris yang cocok: nilai selection sudah di-trim saat pencocokan
	return NewWellSeries(rows[0].Key(), rows), nil
}

// Options returns candidate lists for a (possibly partial) selection. Levels
// after the first unset or unmatched one come back empty.
func Options(dataset []ProductionRecord, sel Selection) SelectionOptions {
	var out SelectionOptions
	dst := []*[]string{&out.Fields, &out.Reservoirs, &out.Wells, &out.Fluids}

	rows := dataset
	for i, lv := range levels {
		*dst[i] = unique(rows, lv.get)
		want := strings.TrimSpace(lv.pick(sel))
		if want == "" {
			break
		}
		rows = keep(rows, lv.get, want)
		if len(rows) == 0 {
			break
		}
	}
	for _, p := range dst {
		if *p == nil {
			*p = []string{}
		}
	}
	return out
}

// Resolve mengisi level kosong dengan kandidat pertama (default selectbox).
// Level yang sudah diisi tidak diubah, meskipun tidak cocok.
func (s Selection) Resolve(dataset []ProductionRecord) Selection {
	out := s
	fields := []*string{&out.Field, &out.Reservoir, &out.Well, &out.Fluid}

	rows := dataset
	for i, lv := range levels {
		if strings.TrimSpace(*fields[i]) == "" {
			if c := unique(rows, lv.get); len(c) > 0 {
				*fields[i] = c[0]
			}
		}
		rows = keep(rows, lv.get, strings.TrimSpace(*fields[i]))
	}
	return out
}

func keep(rows []ProductionRecord, get func(ProductionRecord) string, want string) []ProductionRecord {
	out := make([]ProductionRecord, 0, len(rows))
	for _, r := range rows {
		if get(r) == want {
			out = append(out, r)
		}
	}
	return out
}

func unique(rows []ProductionRecord, get func(ProductionRecord) string) []string {
	seen := make(map[string]struct{}, 16)
	out := make([]string, 0, 16)
	for _, r := range rows {
		v := get(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sortRecordsByDate(rows []ProductionRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		return dateOnly(rows[i].Date).Before(dateOnly(rows[j].Date))
	})
}
