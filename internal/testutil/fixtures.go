package testutil

import "math/rand"

// SampleSequence is the default scan input; its maximum subarray sum is 6.
func SampleSequence() []int {
	return []int{4, -1, 2, 1, -5, 4}
}

// SampleSequenceMaxSum is the known answer for SampleSequence.
const SampleSequenceMaxSum = 6

// AllNegativeSequence returns a sequence whose best subarray is a single
// element.
func AllNegativeSequence() []int {
	return []int{-8, -3, -6, -2, -5, -4}
}

// SampleHeapValues is the default min-heap content.
func SampleHeapValues() []int {
	return []int{10, 20, 15, 30, 40}
}

// RandomSequence returns n values in [-limit, limit] from a seeded source so
// failures are reproducible.
func RandomSequence(seed int64, n, limit int) []int {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(2*limit+1) - limit
	}
	return out
}

// BruteForceMaxSubarray recomputes the maximum subarray sum by checking every
// non-empty contiguous range. It panics on an empty sequence.
func BruteForceMaxSubarray(seq []int) int {
	best := seq[0]
	for i := range seq {
		sum := 0
		for j := i; j < len(seq); j++ {
			sum += seq[j]
			if sum > best {
				best = sum
			}
		}
	}
	return best
}
