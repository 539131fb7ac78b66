// Package heap implements an array-backed binary min-heap whose layout is
// exposed for display. Operations are synchronous: each call leaves the heap
// in its final state and there is no stepping or cancellation.
//
// For the element at index i, its children live at 2i+1 and 2i+2 and its
// parent at (i-1)/2. Every parent is less than or equal to its children.
package heap

import "errors"

// ErrEmpty is returned by Peek and DeleteRoot on an empty heap.
var ErrEmpty = errors.New("heap: heap is empty")

// MinHeap is a binary min-heap of ints. The zero value is an empty heap.
// A MinHeap is not safe for concurrent use.
type MinHeap struct {
	items []int
}

// New builds a heap from values using bottom-up heapify. The caller's slice
// is copied.
func New(values ...int) *MinHeap {
	h := &MinHeap{}
	h.Heapify(values...)
	return h
}

// Len returns the number of elements.
func (h *MinHeap) Len() int {
	return len(h.items)
}

// Values returns a copy of the backing array in heap order.
func (h *MinHeap) Values() []int {
	out := make([]int, len(h.items))
	copy(out, h.items)
	return out
}

// Peek returns the smallest element without removing it.
func (h *MinHeap) Peek() (int, error) {
	if len(h.items) == 0 {
		return 0, ErrEmpty
	}
	return h.items[0], nil
}

// Insert adds v and restores the heap property by sifting it up.
func (h *MinHeap) Insert(v int) {
	h.items = append(h.items, v)
	h.siftUp(len(h.items) - 1)
}

// DeleteRoot removes and returns the smallest element. The last element
// takes the root's place and is sifted down.
func (h *MinHeap) DeleteRoot() (int, error) {
	if len(h.items) == 0 {
		return 0, ErrEmpty
	}

	root := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	h.siftDown(0)

	return root, nil
}

// Heapify replaces the contents with values and rebuilds the heap bottom-up
// in O(n).
func (h *MinHeap) Heapify(values ...int) {
	h.items = make([]int, len(values))
	copy(h.items, values)
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
}

// Reset removes every element.
func (h *MinHeap) Reset() {
	h.items = h.items[:0]
}

// Valid reports whether the heap property holds for every parent.
func (h *MinHeap) Valid() bool {
	for i := 1; i < len(h.items); i++ {
		if h.items[parent(i)] > h.items[i] {
			return false
		}
	}
	return true
}

// Levels splits the backing array into tree levels: 1, 2, 4, ... elements.
// The last level may be partial.
func (h *MinHeap) Levels() [][]int {
	var levels [][]int
	for start, width := 0, 1; start < len(h.items); start, width = start+width, width*2 {
		end := min(start+width, len(h.items))
		level := make([]int, end-start)
		copy(level, h.items[start:end])
		levels = append(levels, level)
	}
	return levels
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		p := parent(i)
		if h.items[p] <= h.items[i] {
			return
		}
		h.items[p], h.items[i] = h.items[i], h.items[p]
		i = p
	}
}

// siftDown moves the element at i below any smaller child, recursively.
func (h *MinHeap) siftDown(i int) {
	smallest := i
	left, right := 2*i+1, 2*i+2
	n := len(h.items)

	if left < n && h.items[left] < h.items[smallest] {
		smallest = left
	}
	if right < n && h.items[right] < h.items[smallest] {
		smallest = right
	}

	if smallest != i {
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		h.siftDown(smallest)
	}
}

func parent(i int) int {
	return (i - 1) / 2
}
