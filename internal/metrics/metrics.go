// Package metrics provides snow.Observer implementations that summarise a run.
package metrics

import (
	"sort"

	"github.com/san-kum/frostframe/internal/snow"
)

// Metric is an observer that reduces a run to one number.
type Metric interface {
	snow.Observer
	Name() string
	Value() float64
	Reset()
}

// Set fans frames out to several metrics.
type Set []Metric

func (s Set) OnFrame(stats snow.FrameStats) {
	for _, m := range s {
		m.OnFrame(stats)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Summary returns every metric's value keyed by name.
func (s Set) Summary() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns metric names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for _, m := range s {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}
