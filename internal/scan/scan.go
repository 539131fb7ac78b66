// Package scan provides single-pass algorithms that plug into the stepping
// engine. Each algorithm only defines how its accumulator starts from the
// first element and how it folds in each later element; pacing, annotation
// and cancellation belong to package loop.
package scan

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/thruflo/stepviz/internal/loop"
)

// ErrUnknownAlgorithm is returned by Lookup for unregistered names.
var ErrUnknownAlgorithm = errors.New("scan: unknown algorithm")

// Kadane finds the maximum sum over all non-empty contiguous subarrays.
type Kadane struct{}

// Name implements loop.Algorithm.
func (Kadane) Name() string { return "kadane" }

// Start implements loop.Algorithm.
func (Kadane) Start(first int) loop.Accumulator {
	return &KadaneState{
		Running:   first,
		Best:      first,
		BestStart: 0,
		BestEnd:   0,
	}
}

// KadaneState is the accumulator for Kadane. Running is the best sum of a
// subarray ending at the last folded index; Best is the best sum seen so far
// and [BestStart, BestEnd] its range.
type KadaneState struct {
	Running      int
	RunningStart int
	Best         int
	BestStart    int
	BestEnd      int
}

// Update implements loop.Accumulator.
func (s *KadaneState) Update(index, value int) {
	if extended := s.Running + value; value > extended {
		s.Running = value
		s.RunningStart = index
	} else {
		s.Running = extended
	}

	if s.Running > s.Best {
		s.Best = s.Running
		s.BestStart = s.RunningStart
		s.BestEnd = index
	}
}

// Value implements loop.Accumulator.
func (s *KadaneState) Value() int { return s.Best }

// Span returns the inclusive index range of the best subarray.
func (s *KadaneState) Span() (start, end int) {
	return s.BestStart, s.BestEnd
}

// MaxElement finds the largest element.
type MaxElement struct{}

// Name implements loop.Algorithm.
func (MaxElement) Name() string { return "max" }

// Start implements loop.Algorithm.
func (MaxElement) Start(first int) loop.Accumulator {
	return &extremum{value: first, better: func(a, b int) bool { return a > b }}
}

// MinElement finds the smallest element.
type MinElement struct{}

// Name implements loop.Algorithm.
func (MinElement) Name() string { return "min" }

// Start implements loop.Algorithm.
func (MinElement) Start(first int) loop.Accumulator {
	return &extremum{value: first, better: func(a, b int) bool { return a < b }}
}

type extremum struct {
	value  int
	index  int
	better func(a, b int) bool
}

func (e *extremum) Update(index, value int) {
	if e.better(value, e.value) {
		e.value = value
		e.index = index
	}
}

func (e *extremum) Value() int { return e.value }

// Span returns the index of the winning element as a one-element range.
func (e *extremum) Span() (start, end int) { return e.index, e.index }

// PrefixTotal sums every element.
type PrefixTotal struct{}

// Name implements loop.Algorithm.
func (PrefixTotal) Name() string { return "sum" }

// Start implements loop.Algorithm.
func (PrefixTotal) Start(first int) loop.Accumulator {
	t := total(first)
	return &t
}

type total int

func (t *total) Update(_, value int) { *t += total(value) }

func (t *total) Value() int { return int(*t) }

// Spanner is implemented by accumulators that can point at the part of the
// sequence that produced their value.
type Spanner interface {
	Span() (start, end int)
}

var registry = map[string]loop.Algorithm{
	Kadane{}.Name():      Kadane{},
	MaxElement{}.Name():  MaxElement{},
	MinElement{}.Name():  MinElement{},
	PrefixTotal{}.Name(): PrefixTotal{},
}

var descriptions = map[string]string{
	"kadane": "maximum subarray sum (Kadane's algorithm)",
	"max":    "largest element",
	"min":    "smallest element",
	"sum":    "total of all elements",
}

// Lookup returns the algorithm registered under name (case-insensitive).
func Lookup(name string) (loop.Algorithm, error) {
	alg, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownAlgorithm, name, strings.Join(Names(), ", "))
	}
	return alg, nil
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of a registered algorithm.
func Describe(name string) string {
	return descriptions[name]
}
