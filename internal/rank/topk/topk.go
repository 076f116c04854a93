// Package topk provides the Top-K selection algorithms selectable
// through a ranking policy. Selectors return the min(k, n) elements
// that rank first under a before func, sorted; Cutline entry points
// return the k-th ranked value and are the only ones that fail on an
// empty input.
package topk

import "github.com/okian/trendboard/internal/rank/sorting"

// Algorithm identifies a selection algorithm in a ranking policy.
type Algorithm int

// Selectable algorithms. Binary applies to integer element types only;
// Select substitutes QuickSelect for it on anything else.
const (
	// Sequential scans once with a bounded heap, O(n log k).
	Sequential Algorithm = iota
	// QuickSelect partitions recursively into one side, O(n) average.
	QuickSelect
	// Binary bisects the integer value range, O(n log range).
	Binary
	// Partition is an nth-element style partial sort, O(n) average.
	Partition
)

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Sequential:
		return "sequential"
	case QuickSelect:
		return "quickselect"
	case Binary:
		return "binary"
	case Partition:
		return "partition"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a configuration name back to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, bool) {
	for a := Sequential; a <= Partition; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// Select extracts the top k elements of p using the chosen algorithm,
// sorted by before. QuickSelect and Partition reorder p; callers that
// need the original order must copy first. Binary degrades to
// QuickSelect here because it needs integer elements; integer slices go
// through SelectInts.
func Select[T any](p []T, k int, algo Algorithm, before func(T, T) bool) []T {
	if len(p) == 0 || k <= 0 {
		return nil
	}
	switch algo {
	case Sequential:
		return SequentialSelect(p, k, before)
	case Partition:
		return PartitionSelect(p, k, before)
	default:
		return QuickSelectTopK(p, k, before)
	}
}

// SelectInts extracts the top k values of an integer slice descending,
// including via the integer-only Binary algorithm.
func SelectInts[T sorting.Integer](p []T, k int, algo Algorithm) []T {
	if algo == Binary {
		_, result := BinarySelect(p, k)
		return result
	}
	return Select(p, k, algo, func(a, b T) bool { return a > b })
}

// SequentialSelect keeps a bounded heap of the k best seen so far and
// scans the input once, O(n log k) time, O(k) space. The input is not
// reordered.
func SequentialSelect[T any](p []T, k int, before func(T, T) bool) []T {
	if len(p) == 0 || k <= 0 {
		return nil
	}
	k = min(k, len(p))

	// The heap roots the worst of the kept elements so a better
	// candidate can evict it in O(log k).
	worse := func(a, b T) bool { return before(b, a) }
	h := make([]T, 0, k)

	for _, item := range p {
		if len(h) < k {
			h = append(h, item)
			siftUp(h, len(h)-1, worse)
			continue
		}
		if before(item, h[0]) {
			h[0] = item
			siftDown(h, len(h), 0, worse)
		}
	}

	out := make([]T, len(h))
	copy(out, h)
	sorting.QuickSort(out, before)
	return out
}

func siftUp[T any](h []T, i int, worse func(T, T) bool) {
	for i > 0 {
		parent := (i - 1) / 2
		if !worse(h[i], h[parent]) {
			return
		}
		h[i], h[parent] = h[parent], h[i]
		i = parent
	}
}

func siftDown[T any](h []T, n, i int, worse func(T, T) bool) {
	for {
		worst := i
		left, right := 2*i+1, 2*i+2
		if left < n && worse(h[left], h[worst]) {
			worst = left
		}
		if right < n && worse(h[right], h[worst]) {
			worst = right
		}
		if worst == i {
			return
		}
		h[i], h[worst] = h[worst], h[i]
		i = worst
	}
}

// SequentialCutline returns the k-th ranked value via the bounded heap.
func SequentialCutline[T any](p []T, k int, before func(T, T) bool) (T, error) {
	var zero T
	if len(p) == 0 {
		return zero, ErrEmptyInput
	}
	if k <= 0 {
		return zero, ErrOutOfRange
	}
	top := SequentialSelect(p, k, before)
	return top[len(top)-1], nil
}

// QuickSelectNth places the n-th ranked element (0-based) of p at index
// n with everything ranking ahead of it on the left, O(n) average and
// O(n^2) worst case. p is reordered.
func QuickSelectNth[T any](p []T, n int, before func(T, T) bool) (T, error) {
	var zero T
	if len(p) == 0 {
		return zero, ErrEmptyInput
	}
	if n < 0 || n >= len(p) {
		return zero, ErrOutOfRange
	}

	left, right := 0, len(p)-1
	for left < right {
		idx := hoarePartition(p, left, right, before)
		if n < idx {
			right = idx - 1
		} else {
			left = idx
		}
	}
	return p[n], nil
}

func hoarePartition[T any](p []T, left, right int, before func(T, T) bool) int {
	pivot := p[(left+right)/2]
	i, j := left, right
	for i <= j {
		for before(p[i], pivot) {
			i++
		}
		for before(pivot, p[j]) {
			j--
		}
		if i <= j {
			p[i], p[j] = p[j], p[i]
			i++
			j--
		}
	}
	return i
}

// QuickSelectTopK extracts and sorts the top k elements, O(n + k log k)
// average. p is reordered.
func QuickSelectTopK[T any](p []T, k int, before func(T, T) bool) []T {
	if len(p) == 0 || k <= 0 {
		return nil
	}
	k = min(k, len(p))

	// Position the k-th element; everything before it ranks ahead.
	_, _ = QuickSelectNth(p, k-1, before)

	out := make([]T, k)
	copy(out, p[:k])
	sorting.QuickSort(out, before)
	return out
}

// BinarySelect isolates the top k integers by bisecting the value range
// and bucketing against the midpoint, O(n log range) time. It returns
// the cutline (the smallest selected value) and the selection sorted
// descending. The input is not reordered.
func BinarySelect[T sorting.Integer](p []T, k int) (T, []T) {
	var zero T
	if len(p) == 0 || k <= 0 {
		return zero, nil
	}
	k = min(k, len(p))

	lo, hi := p[0], p[0]
	for _, v := range p {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	result := make([]T, 0, k)
	cur := make([]T, len(p))
	copy(cur, p)
	remain := k

	for lo < hi {
		mid := T((int64(lo) + int64(hi) + 1) / 2)

		var big, small []T
		for _, v := range cur {
			if v >= mid {
				big = append(big, v)
			} else {
				small = append(small, v)
			}
		}

		if len(big) >= remain {
			lo = mid
			cur = big
		} else {
			// Everything at or above mid is confirmed selected.
			result = append(result, big...)
			remain -= len(big)
			hi = mid - 1
			cur = small
		}
	}

	// Values equal to the cutline fill any remaining slots.
	for _, v := range p {
		if len(result) == k {
			break
		}
		if v == lo {
			result = append(result, v)
		}
	}

	sorting.QuickSort(result, func(a, b T) bool { return a > b })
	if len(result) > k {
		result = result[:k]
	}
	return lo, result
}

// PartitionSelect is an nth-element style selection: a median-of-three
// pivot narrows the window until the first k slots hold the top k
// elements, which are then sorted, O(n) average. p is reordered.
func PartitionSelect[T any](p []T, k int, before func(T, T) bool) []T {
	if len(p) == 0 || k <= 0 {
		return nil
	}
	k = min(k, len(p))

	left, right := 0, len(p)-1
	for left < right {
		medianOfThree(p, left, right, before)
		idx := hoarePartition(p, left, right, before)
		if k-1 < idx {
			right = idx - 1
		} else {
			left = idx
		}
	}

	out := make([]T, k)
	copy(out, p[:k])
	sorting.QuickSort(out, before)
	return out
}

// medianOfThree moves the median of the window's first, middle and last
// elements into the middle slot, where the partition picks its pivot.
func medianOfThree[T any](p []T, left, right int, before func(T, T) bool) {
	mid := (left + right) / 2
	if before(p[mid], p[left]) {
		p[left], p[mid] = p[mid], p[left]
	}
	if before(p[right], p[left]) {
		p[left], p[right] = p[right], p[left]
	}
	if before(p[right], p[mid]) {
		p[mid], p[right] = p[right], p[mid]
	}
}

// Cutline returns the k-th ranked value using the chosen algorithm.
// Unlike Select it propagates failures: empty input and out-of-range k
// are reported, never defaulted.
func Cutline[T any](p []T, k int, algo Algorithm, before func(T, T) bool) (T, error) {
	var zero T
	if len(p) == 0 {
		return zero, ErrEmptyInput
	}
	if k <= 0 || k > len(p) {
		return zero, ErrOutOfRange
	}
	switch algo {
	case Sequential:
		return SequentialCutline(p, k, before)
	case Partition:
		top := PartitionSelect(p, k, before)
		return top[len(top)-1], nil
	default:
		return QuickSelectNth(p, k-1, before)
	}
}

// CutlineInts returns the k-th value of an integer slice descending,
// including via the integer-only Binary algorithm.
func CutlineInts[T sorting.Integer](p []T, k int, algo Algorithm) (T, error) {
	var zero T
	if len(p) == 0 {
		return zero, ErrEmptyInput
	}
	if k <= 0 || k > len(p) {
		return zero, ErrOutOfRange
	}
	if algo == Binary {
		cutline, _ := BinarySelect(p, k)
		return cutline, nil
	}
	return Cutline(p, k, algo, func(a, b T) bool { return a > b })
}
