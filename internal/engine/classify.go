// Package engine holds the calculator-independent machinery shared by every module:
// threshold classification, advisory generation, compound-growth projections and
// field validation. Each calculator supplies tables; the engine evaluates them.
package engine

import (
	"fmt"
	"sort"
)

// Metrics is the flat numeric view of a calculation that threshold tables read.
// Categorical facts (a flood zone, an occupancy type) are exposed as 0/1 indicator metrics.
type Metrics map[string]float64

// Get returns the named metric, or 0 when it is absent.
func (m Metrics) Get(name string) float64 {
	return m[name]
}

// Flag converts a boolean into an indicator metric value.
func Flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Names returns the metric names in sorted order.
func (m Metrics) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Op is a comparison operator used by a Condition.
type Op string

const (
	GE Op = ">="
	GT Op = ">"
	LE Op = "<="
	LT Op = "<"
	EQ Op = "=="
	NE Op = "!="
)

// Condition compares one metric with a cut point.
type Condition struct {
	Metric string  `json:"metric" yaml:"metric"`
	Op     Op      `json:"op" yaml:"op"`
	Value  float64 `json:"value" yaml:"value"`
}

// Holds reports whether the condition is true for the given metrics.
func (c Condition) Holds(m Metrics) bool {
	v := m.Get(c.Metric)
	switch c.Op {
	case GE:
		return v >= c.Value
	case GT:
		return v > c.Value
	case LE:
		return v <= c.Value
	case LT:
		return v < c.Value
	case EQ:
		return v == c.Value
	case NE:
		return v != c.Value
	default:
		return false
	}
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %g", c.Metric, c.Op, c.Value)
}

// AtLeast is metric >= v.
func AtLeast(metric string, v float64) Condition { return Condition{Metric: metric, Op: GE, Value: v} }

// Above is metric > v.
func Above(metric string, v float64) Condition { return Condition{Metric: metric, Op: GT, Value: v} }

// AtMost is metric <= v.
func AtMost(metric string, v float64) Condition { return Condition{Metric: metric, Op: LE, Value: v} }

// Below is metric < v.
func Below(metric string, v float64) Condition { return Condition{Metric: metric, Op: LT, Value: v} }

// Is is metric == 1 for indicator metrics.
func Is(metric string) Condition { return Condition{Metric: metric, Op: EQ, Value: 1} }

// Not is metric != 1 for indicator metrics.
func Not(metric string) Condition { return Condition{Metric: metric, Op: NE, Value: 1} }

// Band is one ordered category of an axis. A band matches when every When condition
// holds and, if Any is non-empty, at least one Any condition holds.
type Band struct {
	Label      string      `json:"label" yaml:"label"`
	When       []Condition `json:"when,omitempty" yaml:"when,omitempty"`
	Any        []Condition `json:"any,omitempty" yaml:"any,omitempty"`
	Advisories []string    `json:"advisories,omitempty" yaml:"advisories,omitempty"`
}

// Matches reports whether the band applies to the metrics.
func (b Band) Matches(m Metrics) bool {
	for _, c := range b.When {
		if !c.Holds(m) {
			return false
		}
	}
	if len(b.Any) == 0 {
		return true
	}
	for _, c := range b.Any {
		if c.Holds(m) {
			return true
		}
	}
	return false
}

// Axis is an ordered cascade of bands. Bands are evaluated from first to last and the
// first match wins; Fallback applies when none match.
type Axis struct {
	Name     string `json:"name" yaml:"name"`
	Bands    []Band `json:"bands" yaml:"bands"`
	Fallback Band   `json:"fallback" yaml:"fallback"`
}

// Labels used by advisory-only axes built with Rule.
const (
	RuleTriggered = "triggered"
	RuleClear     = "clear"
)

// Rule builds a single-band axis that emits advice when every condition holds.
func Rule(name, advice string, when ...Condition) Axis {
	return Axis{
		Name:     name,
		Bands:    []Band{{Label: RuleTriggered, When: when, Advisories: []string{advice}}},
		Fallback: Band{Label: RuleClear},
	}
}

// Classification is the outcome of evaluating one axis.
type Classification struct {
	Axis   string `json:"axis"`
	Label  string `json:"label"`
	Band   int    `json:"band"`
	Missed bool   `json:"fallback,omitempty"`
}

// Classify evaluates an axis against the metrics. The result is always defined:
// when no band matches, the fallback label is returned with Band == -1.
func Classify(axis Axis, m Metrics) Classification {
	band, idx := axis.match(m)
	return Classification{Axis: axis.Name, Label: band.Label, Band: idx, Missed: idx < 0}
}

// ClassifyAll evaluates every axis, keyed by axis name.
func ClassifyAll(axes []Axis, m Metrics) map[string]Classification {
	out := make(map[string]Classification, len(axes))
	for _, axis := range axes {
		out[axis.Name] = Classify(axis, m)
	}
	return out
}

// Recommend walks the axes in declaration order and collects the advisories of the
// band each axis lands on. Duplicate sentences are emitted once.
func Recommend(axes []Axis, m Metrics) []string {
	advice := make([]string, 0)
	seen := make(map[string]struct{})
	for _, axis := range axes {
		band, _ := axis.match(m)
		for _, a := range band.Advisories {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			advice = append(advice, a)
		}
	}
	return advice
}

// Advisories returns the advisories for a single axis.
func Advisories(axis Axis, m Metrics) []string {
	return Recommend([]Axis{axis}, m)
}

// FindAxis returns the axis with the given name.
func FindAxis(axes []Axis, name string) (Axis, bool) {
	for _, axis := range axes {
		if axis.Name == name {
			return axis, true
		}
	}
	return Axis{}, false
}

func (a Axis) match(m Metrics) (Band, int) {
	for i, band := range a.Bands {
		if band.Matches(m) {
			return band, i
		}
	}
	return a.Fallback, -1
}
