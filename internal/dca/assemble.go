// internal/dca/assemble.go
package dca

import (
	"fmt"
	"time"
)

// Assemble zips the date grid with the exponential, hyperbolic and harmonic
// outputs into row-aligned points. It does no math; formatting belongs to the
// exporter.
func Assemble(grid []time.Time, exp, hyp, harm ModelSeries) (ProjectionTable, error) {
	n := len(grid)
	for _, m := range []ModelSeries{exp, hyp, harm} {
		if len(m.Rate) != n || len(m.Cumulative) != n {
			return ProjectionTable{}, fmt.Errorf("assemble: %s has %d/%d values for %d grid dates",
				m.Model, len(m.Rate), len(m.Cumulative), n)
		}
	}

	points := make([]ProjectionPoint, n)
	for i := 0; i < n; i++ {
		points[i] = ProjectionPoint{
			T:      i,
			Date:   grid[i],
			QoExp:  exp.Rate[i],
			NpExp:  exp.Cumulative[i],
			QoHyp:  hyp.Rate[i],
			NpHyp:  hyp.Cumulative[i],
			QoHarm: harm.Rate[i],
			NpHarm: harm.Cumulative[i],
		}
	}
	return ProjectionTable{points: points}, nil
}
