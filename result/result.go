package result

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
)

var ErrUnknownEdge = errors.New("unknown edge")

//*******************************************
// result voronoi
//*******************************************

// Ranges owned by objects per original edge and k.
type ResultVoronoi struct {
	inner   Dict[int32, Dict[structs.K, *EdgeResult]]
	lengths Dict[int32, float64]
}

// Creates an empty record for every edge, lengths maps edge id -> edge length.
func FromEdges(lengths Dict[int32, float64]) *ResultVoronoi {
	inner := NewDict[int32, Dict[structs.K, *EdgeResult]](lengths.Length())
	for id := range lengths {
		inner[id] = NewDict[structs.K, *EdgeResult](4)
	}
	return &ResultVoronoi{
		inner:   inner,
		lengths: lengths,
	}
}

func (self *ResultVoronoi) EdgeCount() int {
	return self.inner.Length()
}

func (self *ResultVoronoi) Insert(k structs.K, edge_id int32, ranges List[structs.Range]) error {
	levels, ok := self.inner[edge_id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEdge, edge_id)
	}
	edge_result, ok := levels[k]
	if !ok {
		edge_result = NewEdgeResult(self.lengths[edge_id])
		levels[k] = edge_result
	}
	for _, r := range ranges {
		edge_result.Insert(r)
	}
	return nil
}

// Removes the object from every edge at level k.
func (self *ResultVoronoi) Remove(object_id int32, k structs.K) {
	for _, levels := range self.inner {
		if edge_result, ok := levels[k]; ok {
			edge_result.Remove(object_id)
		}
	}
}

// Removes the object from every edge at every level.
func (self *ResultVoronoi) RemoveAll(object_id int32) {
	for _, levels := range self.inner {
		for _, edge_result := range levels {
			edge_result.Remove(object_id)
		}
	}
}

// Objects owning distance x on the edge at level k.
func (self *ResultVoronoi) Owners(edge_id int32, k structs.K, x float64) (List[int32], error) {
	levels, ok := self.inner[edge_id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEdge, edge_id)
	}
	edge_result, ok := levels[k]
	if !ok {
		return NewList[int32](0), nil
	}
	return edge_result.Owners(x), nil
}

// Merged coverage of the edge at level k.
func (self *ResultVoronoi) Ranges(edge_id int32, k structs.K) (List[structs.Range], error) {
	levels, ok := self.inner[edge_id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEdge, edge_id)
	}
	edge_result, ok := levels[k]
	if !ok {
		return NewList[structs.Range](0), nil
	}
	return edge_result.Ranges(), nil
}

// Levels with a record on the edge in ascending order.
func (self *ResultVoronoi) Levels(edge_id int32) List[structs.K] {
	return SortedKeys(self.inner[edge_id])
}

//*******************************************
// export
//*******************************************

type EdgeRanges struct {
	EdgeID int32           `json:"edge"`
	K      structs.K       `json:"k"`
	Ranges []structs.Range `json:"ranges"`
}

// Non-empty coverage of all edges ordered by edge and k.
func (self *ResultVoronoi) Export() List[EdgeRanges] {
	export := NewList[EdgeRanges](self.inner.Length())
	for _, edge_id := range SortedKeys(self.inner) {
		levels := self.inner[edge_id]
		for _, k := range SortedKeys(levels) {
			ranges := levels[k].Ranges()
			if ranges.Length() == 0 {
				continue
			}
			export.Add(EdgeRanges{EdgeID: edge_id, K: k, Ranges: ranges})
		}
	}
	return export
}

func (self *ResultVoronoi) WriteToFile(file string) error {
	return WriteJSONToFile(self.Export(), file)
}
