package region

import "sort"

// intervalIndex provides O(log n + k) range-overlap queries over one
// chromosome's promoters using a sorted-slice approach. Promoters are
// loaded once and never modified after build.
type intervalIndex struct {
	promoters []Promoter // sorted by Start
	maxEnd    []int64    // maxEnd[i] = max(End) for promoters[:i+1]
}

func buildIntervalIndex(promoters []Promoter) *intervalIndex {
	if len(promoters) == 0 {
		return &intervalIndex{}
	}

	sorted := make([]Promoter, len(promoters))
	copy(sorted, promoters)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	// Prefix-max array: maxEnd[i] = max(end) for sorted[:i+1]. The scan in
	// overlapping walks backward, so the prune must bound the promoters
	// still ahead of it, which are the ones at lower indices.
	maxEnd := make([]int64, len(sorted))
	maxEnd[0] = sorted[0].End
	for i := 1; i < len(sorted); i++ {
		maxEnd[i] = sorted[i].End
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &intervalIndex{promoters: sorted, maxEnd: maxEnd}
}

// overlapping returns all promoters whose interval overlaps [start, end],
// boundaries inclusive, in ascending Start order.
func (x *intervalIndex) overlapping(start, end int64) []Promoter {
	if len(x.promoters) == 0 {
		return nil
	}

	// Binary search: first index with Start > end. Every overlap candidate
	// must start at or before the query end, so candidates are [0, hi).
	hi := sort.Search(len(x.promoters), func(i int) bool {
		return x.promoters[i].Start > end
	})

	var result []Promoter
	for i := hi - 1; i >= 0; i-- {
		// Prune: if no promoter in [0, i] reaches the query start, none of
		// them can overlap.
		if x.maxEnd[i] < start {
			break
		}
		if x.promoters[i].End >= start {
			result = append(result, x.promoters[i])
		}
	}

	// Restore ascending order after the backward scan.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}
