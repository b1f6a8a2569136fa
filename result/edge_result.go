package result

import (
	"github.com/google/btree"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// edge result
//*******************************************

// Owners of the interval starting at Dist and ending at the next breakpoint.
type Breakpoint struct {
	Dist   float64
	Owners List[int32]
}

func _LessBreakpoint(a, b Breakpoint) bool {
	return a.Dist < b.Dist
}

// Ordered breakpoint map of one edge at one k.
type EdgeResult struct {
	tree   *btree.BTreeG[Breakpoint]
	length float64
}

func NewEdgeResult(length float64) *EdgeResult {
	tree := btree.NewG[Breakpoint](8, _LessBreakpoint)
	tree.ReplaceOrInsert(Breakpoint{Dist: 0, Owners: NewList[int32](0)})
	return &EdgeResult{
		tree:   tree,
		length: length,
	}
}

func (self *EdgeResult) Length() float64 {
	return self.length
}

// Number of breakpoints.
func (self *EdgeResult) Len() int {
	return self.tree.Len()
}

// Adds the owner of r to every bucket within [r.Start, r.End), clamped to the edge.
func (self *EdgeResult) Insert(r structs.Range) {
	start := max(r.Start, 0)
	end := min(r.End, self.length)
	if end <= start {
		return
	}
	self._Split(start)
	self._Split(end)
	updates := NewList[Breakpoint](4)
	self.tree.AscendRange(Breakpoint{Dist: start}, Breakpoint{Dist: end}, func(item Breakpoint) bool {
		if !slices.Contains(item.Owners, r.ObjectID) {
			owners := item.Owners.Copy()
			owners.Add(r.ObjectID)
			updates.Add(Breakpoint{Dist: item.Dist, Owners: owners})
		}
		return true
	})
	for _, item := range updates {
		self.tree.ReplaceOrInsert(item)
	}
}

// Strips the object from every bucket and collapses breakpoints with equal owners.
func (self *EdgeResult) Remove(object_id int32) {
	updates := NewList[Breakpoint](4)
	self.tree.Ascend(func(item Breakpoint) bool {
		if slices.Contains(item.Owners, object_id) {
			owners := item.Owners.Copy()
			owners.RemoveWhere(func(id int32) bool { return id == object_id })
			updates.Add(Breakpoint{Dist: item.Dist, Owners: owners})
		}
		return true
	})
	for _, item := range updates {
		self.tree.ReplaceOrInsert(item)
	}
	self._Collapse()
}

// Owners of the point x, empty outside the edge.
func (self *EdgeResult) Owners(x float64) List[int32] {
	if x < 0 || x > self.length {
		return NewList[int32](0)
	}
	return self._Floor(x).Owners.Copy()
}

// Merged ranges of every owner ordered by start.
func (self *EdgeResult) Ranges() List[structs.Range] {
	points := self.Breakpoints()
	ranges := NewList[structs.Range](points.Length())
	// owner -> index of its open range
	open := NewDict[int32, int](4)
	for i, point := range points {
		end := self.length
		if i+1 < points.Length() {
			end = points[i+1].Dist
		}
		if end <= point.Dist {
			continue
		}
		for _, owner := range point.Owners {
			if index, ok := open[owner]; ok && ranges[index].End == point.Dist {
				ranges[index].End = end
				continue
			}
			open[owner] = ranges.Length()
			ranges.Add(structs.Range{Start: point.Dist, End: end, ObjectID: owner})
		}
	}
	slices.SortFunc(ranges, func(a, b structs.Range) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return int(a.ObjectID) - int(b.ObjectID)
		}
	})
	return ranges
}

func (self *EdgeResult) Breakpoints() List[Breakpoint] {
	points := NewList[Breakpoint](self.tree.Len())
	self.tree.Ascend(func(item Breakpoint) bool {
		points.Add(Breakpoint{Dist: item.Dist, Owners: item.Owners.Copy()})
		return true
	})
	return points
}

// Inserts a breakpoint at x duplicating the owners of the bucket containing x.
func (self *EdgeResult) _Split(x float64) {
	if _, ok := self.tree.Get(Breakpoint{Dist: x}); ok {
		return
	}
	floor := self._Floor(x)
	self.tree.ReplaceOrInsert(Breakpoint{Dist: x, Owners: floor.Owners.Copy()})
}

func (self *EdgeResult) _Floor(x float64) Breakpoint {
	var floor Breakpoint
	self.tree.DescendLessOrEqual(Breakpoint{Dist: x}, func(item Breakpoint) bool {
		floor = item
		return false
	})
	return floor
}

func (self *EdgeResult) _Collapse() {
	redundant := NewList[float64](4)
	var prev Optional[Breakpoint]
	self.tree.Ascend(func(item Breakpoint) bool {
		if prev.HasValue() && _SameOwners(prev.Value.Owners, item.Owners) {
			redundant.Add(item.Dist)
			return true
		}
		prev = Some(item)
		return true
	})
	for _, dist := range redundant {
		self.tree.Delete(Breakpoint{Dist: dist})
	}
}

func _SameOwners(a, b List[int32]) bool {
	if len(a) != len(b) {
		return false
	}
	sa := a.Copy()
	sb := b.Copy()
	slices.Sort(sa)
	slices.Sort(sb)
	return slices.Equal(sa, sb)
}
