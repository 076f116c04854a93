// Package sorting provides the comparison-based and integer-only sort
// algorithms selectable through a ranking policy. All comparison sorts
// take a before func reporting whether its first argument must precede
// the second, so the same code orders scores ascending, keys descending,
// or metric tuples lexicographically.
package sorting

// Algorithm identifies a sort algorithm in a ranking policy.
type Algorithm int

// Selectable algorithms. Counting and Radix apply to integer element
// types only; Apply substitutes Quick for them on anything else.
const (
	Selection Algorithm = iota
	Insertion
	Bubble
	Quick
	Merge
	Shell
	Heap
	Counting
	Radix
)

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Selection:
		return "selection"
	case Insertion:
		return "insertion"
	case Bubble:
		return "bubble"
	case Quick:
		return "quick"
	case Merge:
		return "merge"
	case Shell:
		return "shell"
	case Heap:
		return "heap"
	case Counting:
		return "counting"
	case Radix:
		return "radix"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a configuration name back to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, bool) {
	for a := Selection; a <= Radix; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}

// Integer constrains the integer-only algorithms.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Apply sorts p with the chosen algorithm. The integer-only Counting and
// Radix cannot run against an arbitrary element type, so they degrade to
// Quick here; callers holding integer slices use ApplyInts instead.
func Apply[T any](p []T, algo Algorithm, before func(T, T) bool) {
	switch algo {
	case Selection:
		SelectionSort(p, before)
	case Insertion:
		InsertionSort(p, before)
	case Bubble:
		BubbleSort(p, before)
	case Merge:
		MergeSort(p, before)
	case Shell:
		ShellSort(p, before)
	case Heap:
		HeapSort(p, before)
	case Quick, Counting, Radix:
		QuickSort(p, before)
	default:
		QuickSort(p, before)
	}
}

// ApplyInts sorts an integer slice descending with the chosen algorithm,
// including the integer-only ones.
func ApplyInts[T Integer](p []T, algo Algorithm) {
	switch algo {
	case Counting:
		CountingSort(p)
	case Radix:
		RadixSort(p)
	default:
		Apply(p, algo, func(a, b T) bool { return a > b })
	}
}

// SelectionSort runs in O(n^2) time and O(1) space; not stable.
func SelectionSort[T any](p []T, before func(T, T) bool) {
	for i := 0; i < len(p)-1; i++ {
		best := i
		for j := i + 1; j < len(p); j++ {
			if before(p[j], p[best]) {
				best = j
			}
		}
		if best != i {
			p[i], p[best] = p[best], p[i]
		}
	}
}

// InsertionSort runs in O(n^2) worst case and O(n) on nearly sorted
// input; stable.
func InsertionSort[T any](p []T, before func(T, T) bool) {
	for i := 1; i < len(p); i++ {
		v := p[i]
		j := i - 1
		for j >= 0 && before(v, p[j]) {
			p[j+1] = p[j]
			j--
		}
		p[j+1] = v
	}
}

// BubbleSort runs in O(n^2) time with an early exit on a clean pass;
// stable.
func BubbleSort[T any](p []T, before func(T, T) bool) {
	for i := 0; i < len(p)-1; i++ {
		swapped := false
		for j := 0; j < len(p)-1-i; j++ {
			if before(p[j+1], p[j]) {
				p[j], p[j+1] = p[j+1], p[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
}

// QuickSort runs in O(n log n) average and O(n^2) worst case; not
// stable. The pivot is the middle element with Hoare-style partitioning.
func QuickSort[T any](p []T, before func(T, T) bool) {
	if len(p) <= 1 {
		return
	}
	quicksort(p, 0, len(p)-1, before)
}

func quicksort[T any](p []T, left, right int, before func(T, T) bool) {
	if left >= right {
		return
	}
	idx := partition(p, left, right, before)
	if left < idx-1 {
		quicksort(p, left, idx-1, before)
	}
	if idx < right {
		quicksort(p, idx, right, before)
	}
}

func partition[T any](p []T, left, right int, before func(T, T) bool) int {
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

// MergeSort runs in O(n log n) time and O(n) space; stable.
func MergeSort[T any](p []T, before func(T, T) bool) {
	if len(p) <= 1 {
		return
	}
	mergesort(p, 0, len(p)-1, before)
}

func mergesort[T any](p []T, left, right int, before func(T, T) bool) {
	if left >= right {
		return
	}
	mid := left + (right-left)/2
	mergesort(p, left, mid, before)
	mergesort(p, mid+1, right, before)
	mergeRuns(p, left, mid, right, before)
}

func mergeRuns[T any](p []T, left, mid, right int, before func(T, T) bool) {
	tmp := make([]T, 0, right-left+1)
	i, j := left, mid+1
	for i <= mid && j <= right {
		// Take from the left run on ties to keep the merge stable.
		if !before(p[j], p[i]) {
			tmp = append(tmp, p[i])
			i++
		} else {
			tmp = append(tmp, p[j])
			j++
		}
	}
	tmp = append(tmp, p[i:mid+1]...)
	tmp = append(tmp, p[j:right+1]...)
	copy(p[left:], tmp)
}

// ShellSort runs gap-halving insertion passes, roughly O(n^1.5); not
// stable.
func ShellSort[T any](p []T, before func(T, T) bool) {
	for gap := len(p) / 2; gap > 0; gap /= 2 {
		for i := gap; i < len(p); i++ {
			v := p[i]
			j := i
			for j >= gap && before(v, p[j-gap]) {
				p[j] = p[j-gap]
				j -= gap
			}
			p[j] = v
		}
	}
}

// HeapSort runs in O(n log n) time and O(1) space; not stable. The heap
// roots the element that ranks last so extraction fills the tail.
func HeapSort[T any](p []T, before func(T, T) bool) {
	n := len(p)
	if n <= 1 {
		return
	}
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(p, n, i, before)
	}
	for i := n - 1; i > 0; i-- {
		p[0], p[i] = p[i], p[0]
		siftDown(p, i, 0, before)
	}
}

func siftDown[T any](p []T, n, i int, before func(T, T) bool) {
	for {
		last := i
		left, right := 2*i+1, 2*i+2
		if left < n && before(p[last], p[left]) {
			last = left
		}
		if right < n && before(p[last], p[right]) {
			last = right
		}
		if last == i {
			return
		}
		p[i], p[last] = p[last], p[i]
		i = last
	}
}

// CountingSort sorts integers descending in O(n + range) time and
// O(range) space; stable. The value range is materialized, so this only
// pays off for dense, bounded values.
func CountingSort[T Integer](p []T) {
	if len(p) == 0 {
		return
	}
	minVal, maxVal := p[0], p[0]
	for _, v := range p {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	counts := make([]int, int(maxVal-minVal)+1)
	for _, v := range p {
		counts[int(v-minVal)]++
	}
	// Accumulate from the top so larger values land first.
	for i := len(counts) - 2; i >= 0; i-- {
		counts[i] += counts[i+1]
	}

	out := make([]T, len(p))
	for i := len(p) - 1; i >= 0; i-- {
		idx := int(p[i] - minVal)
		counts[idx]--
		out[counts[idx]] = p[i]
	}
	copy(p, out)
}

// RadixSort sorts non-negative integers descending, one decimal digit
// per pass, O(d*n) time; stable.
func RadixSort[T Integer](p []T) {
	if len(p) == 0 {
		return
	}
	maxVal := p[0]
	for _, v := range p {
		if v > maxVal {
			maxVal = v
		}
	}
	for exp := T(1); maxVal/exp > 0; exp *= 10 {
		countingPassByDigit(p, exp)
	}
}

func countingPassByDigit[T Integer](p []T, exp T) {
	out := make([]T, len(p))
	var counts [10]int

	// Bucket on the complement digit to produce descending order.
	for _, v := range p {
		counts[9-int(v/exp%10)]++
	}
	for i := 1; i < 10; i++ {
		counts[i] += counts[i-1]
	}
	for i := len(p) - 1; i >= 0; i-- {
		d := 9 - int(p[i]/exp%10)
		counts[d]--
		out[counts[d]] = p[i]
	}
	copy(p, out)
}

// IsSorted reports whether p already satisfies the ordering.
func IsSorted[T any](p []T, before func(T, T) bool) bool {
	for i := 1; i < len(p); i++ {
		if before(p[i], p[i-1]) {
			return false
		}
	}
	return true
}
