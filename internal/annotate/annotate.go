// Package annotate projects a sequence and an active index onto a per-element
// tag snapshot. Every function here is pure: the same inputs always yield an
// equal Annotation, and no input is ever modified.
package annotate

import "strings"

// Tag marks the visual state of a single element.
type Tag int

const (
	TagUnvisited Tag = iota
	TagActive
	TagDone
)

// NoIndex is passed to Project when no element is active.
const NoIndex = -1

// String returns the string representation of the tag.
func (t Tag) String() string {
	switch t {
	case TagUnvisited:
		return "unvisited"
	case TagActive:
		return "active"
	case TagDone:
		return "done"
	default:
		return "unknown"
	}
}

// Annotation holds one tag per element of the sequence it was projected from.
type Annotation []Tag

// Project returns an annotation with len(seq) entries. The entry at active is
// TagActive when active is in range; all other entries are TagUnvisited.
func Project(seq []int, active int) Annotation {
	a := make(Annotation, len(seq))
	if active >= 0 && active < len(a) {
		a[active] = TagActive
	}
	return a
}

// Blank returns an annotation with every element unvisited.
func Blank(seq []int) Annotation {
	return Project(seq, NoIndex)
}

// Complete returns an annotation with every element done.
func Complete(seq []int) Annotation {
	a := make(Annotation, len(seq))
	for i := range a {
		a[i] = TagDone
	}
	return a
}

// Active returns the index of the active element, if any.
func (a Annotation) Active() (int, bool) {
	for i, tag := range a {
		if tag == TagActive {
			return i, true
		}
	}
	return NoIndex, false
}

// Count returns how many elements carry the given tag.
func (a Annotation) Count(tag Tag) int {
	n := 0
	for _, t := range a {
		if t == tag {
			n++
		}
	}
	return n
}

// IsComplete reports whether every element is done. An empty annotation is
// never complete.
func (a Annotation) IsComplete() bool {
	return len(a) > 0 && a.Count(TagDone) == len(a)
}

// Equal reports whether two annotations carry the same tags in the same order.
func (a Annotation) Equal(other Annotation) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the annotation compactly, e.g. "..*..." or "######".
func (a Annotation) String() string {
	var sb strings.Builder
	for _, t := range a {
		switch t {
		case TagActive:
			sb.WriteByte('*')
		case TagDone:
			sb.WriteByte('#')
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
