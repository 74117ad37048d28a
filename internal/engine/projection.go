package engine

import (
	"github.com/iwvelando/property-calculators/pkg/mathutil"
)

// Flow says whether a projected component adds to or subtracts from the period net.
type Flow int

const (
	Inflow Flow = iota
	Outflow
	// Memo components are projected and reported but do not enter the net.
	Memo
)

// Component is one growable quantity of a projection. Its value in period t is
// Base·(1+RatePercent/100)^(t-1). A positive Span limits the component to the first
// Span periods; later periods carry 0.
type Component struct {
	Name        string
	Base        float64
	RatePercent float64
	Flow        Flow
	Span        int
}

// ProjectionRow is one period of a projection.
type ProjectionRow struct {
	Period     int                `json:"period"`
	Values     map[string]float64 `json:"values"`
	Inflow     float64            `json:"inflow"`
	Outflow    float64            `json:"outflow"`
	Net        float64            `json:"net"`
	Cumulative float64            `json:"cumulative"`
}

// Value returns the named component of the row.
func (r ProjectionRow) Value(name string) float64 {
	return r.Values[name]
}

// Project grows every component independently and recombines them each period.
// Cumulative starts at zero and accumulates Net. A non-positive period count yields
// an empty slice.
func Project(components []Component, periods int) []ProjectionRow {
	if periods <= 0 {
		return []ProjectionRow{}
	}

	rows := make([]ProjectionRow, 0, periods)
	cumulative := 0.0
	for t := 1; t <= periods; t++ {
		row := ProjectionRow{Period: t, Values: make(map[string]float64, len(components))}
		for _, c := range components {
			v := 0.0
			if c.Span <= 0 || t <= c.Span {
				v = mathutil.Finite(mathutil.Grow(c.Base, c.RatePercent, t-1))
			}
			row.Values[c.Name] += v
			switch c.Flow {
			case Inflow:
				row.Inflow += v
			case Outflow:
				row.Outflow += v
			}
		}
		row.Net = row.Inflow - row.Outflow
		cumulative += row.Net
		row.Cumulative = cumulative
		rows = append(rows, row)
	}
	return rows
}

// ClampPeriods bounds a requested period count to [0, max].
func ClampPeriods(periods, max int) int {
	if periods < 0 {
		return 0
	}
	if periods > max {
		return max
	}
	return periods
}
