package voronoi

import (
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slices"
)

// ranges closer than this are merged
const _EPS = 1e-9

//*******************************************
// edge ranges of a state
//*******************************************

// Splits the crossed edge of a state into owned ranges, measured from the edges NodeI.
//
// A single owner covers the edge up to max_dist, two different centroids split it at
// their bisector, each side clipped to its own max_dist budget.
func ScopeRanges(state VoronoiState, max_dist float64) List[structs.Range] {
	ranges := NewList[structs.Range](2)
	length := state.Edge.Length
	forward := state.Start == state.Edge.NodeI
	add := func(start, end float64, owner int32) {
		start = _Clamp(start, 0, length)
		end = _Clamp(end, 0, length)
		if !forward {
			start, end = length-end, length-start
		}
		r := structs.Range{Start: start, End: end, ObjectID: owner}
		if !r.IsEmpty() {
			ranges.Add(r)
		}
	}

	a := state.CostToStart
	if !state.PrevCentroid.IsValid() || state.PrevCentroid == state.Centroid {
		end := length
		if state.CostToEnd > max_dist {
			end = max_dist - a
		}
		add(0, end, state.Centroid.ID)
		return ranges
	}

	b := state.PrevCostToEnd
	center := _Clamp((a+b+length)/2-a, 0, length)
	add(0, min(center, max_dist-a), state.Centroid.ID)
	add(max(center, length-(max_dist-b)), length, state.PrevCentroid.ID)
	slices.SortFunc(ranges, _CompareStart)
	return ranges
}

//*******************************************
// merging
//*******************************************

// Merges overlapping or touching ranges of the same owner, result is ordered by start.
func MergeRanges(ranges List[structs.Range]) List[structs.Range] {
	sorted := ranges.Copy()
	slices.SortFunc(sorted, func(a, b structs.Range) int {
		if a.ObjectID != b.ObjectID {
			return int(a.ObjectID) - int(b.ObjectID)
		}
		return _CompareStart(a, b)
	})
	merged := NewList[structs.Range](sorted.Length())
	for _, r := range sorted {
		if merged.Length() > 0 {
			last := &merged[merged.Length()-1]
			if last.ObjectID == r.ObjectID && r.Start <= last.End+_EPS {
				last.End = max(last.End, r.End)
				continue
			}
		}
		merged.Add(r)
	}
	slices.SortFunc(merged, _CompareStart)
	return merged
}

func _CompareStart(a, b structs.Range) int {
	switch {
	case a.Start < b.Start:
		return -1
	case a.Start > b.Start:
		return 1
	default:
		return int(a.ObjectID) - int(b.ObjectID)
	}
}

func _Clamp(value, low, high float64) float64 {
	return max(low, min(value, high))
}
