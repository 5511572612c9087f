// Package provenance keeps track of where filtered items came from.
package provenance

// Filter returns the items for which keep reports true, together with their
// positions in the input. The returned indices are strictly increasing.
func Filter[T any](items []T, keep func(i int, item T) bool) ([]int, []T) {
	var indices []int
	var kept []T
	for i, item := range items {
		if !keep(i, item) {
			continue
		}
		indices = append(indices, i)
		kept = append(kept, item)
	}
	return indices, kept
}

// Identity returns 0..n-1, the mapping of a batch that drops nothing.
func Identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
