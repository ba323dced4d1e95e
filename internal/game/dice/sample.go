package dice

import "fmt"

// Shuffle permutes items in place using Fisher-Yates.
//
// Precondition: src must be non-nil.
// Postcondition: items holds the same elements in a uniformly random order.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Pick returns a uniformly random element of items.
//
// Precondition: len(items) > 0.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

// Between returns a uniform integer in [lo, hi].
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}

// WeightedIndex returns an index chosen with probability proportional to its
// weight. Zero weights are never chosen.
//
// Precondition: weights non-empty, all >= 0, sum > 0.
// Postcondition: Returns an index in [0, len(weights)) or an error.
func WeightedIndex(src Source, weights []int) (int, error) {
	total := 0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("dice: negative weight %d at index %d", w, i)
		}
		total += w
	}
	if total == 0 {
		return 0, fmt.Errorf("dice: weights must sum to > 0")
	}
	roll := src.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}
