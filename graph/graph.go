package graph

import (
	"fmt"

	"github.com/paulmach/orb"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// graph accessors
//*******************************************

// Iterates the neighbours of node together with the connecting edge.
//
// Order follows edge insertion and is deterministic for a fixed graph.
func (self *Graph) Neighbors(node NodeID) func(yield func(NodeID, *Edge) bool) {
	return func(yield func(NodeID, *Edge) bool) {
		for _, ref := range self.adjacency[node] {
			edge := self.edges[ref]
			if !yield(edge.Other(node), edge) {
				return
			}
		}
	}
}

func (self *Graph) GetEdge(a, b NodeID) Optional[*Edge] {
	id, ok := self.edge_index[_MakeNodePair(a, b)]
	if !ok {
		return None[*Edge]()
	}
	return Some(self.edges[id])
}
func (self *Graph) GetEdgeByID(id EdgeID) Optional[*Edge] {
	edge, ok := self.edges[id]
	if !ok {
		return None[*Edge]()
	}
	return Some(edge)
}
func (self *Graph) EdgeLength(a, b NodeID) (float64, error) {
	edge := self.GetEdge(a, b)
	if !edge.HasValue() {
		return 0, fmt.Errorf("%w: between %v and %v", ErrEdgeNotFound, a, b)
	}
	return edge.Value.Length, nil
}

// Objects currently attached to the edge between a and b.
func (self *Graph) ObjectsOn(a, b NodeID) List[ObjectPos] {
	edge := self.GetEdge(a, b)
	if !edge.HasValue() {
		return nil
	}
	return edge.Value.Objects
}

func (self *Graph) Object(id int32) (*Object, error) {
	obj, ok := self.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrObjectNotFound, id)
	}
	return obj, nil
}

// All objects ordered by id.
func (self *Graph) AllObjects() List[*Object] {
	objects := NewList[*Object](self.objects.Length())
	for _, id := range SortedKeys(self.objects) {
		objects.Add(self.objects[id])
	}
	return objects
}
func (self *Graph) ObjectCount() int {
	return self.objects.Length()
}

// Lengths of all original edges, including edges currently subdivided.
func (self *Graph) MapEdges() Dict[int32, float64] {
	lengths := NewDict[int32, float64](self.edges.Length())
	for id, edge := range self.edges {
		if id.IsOriginal() {
			lengths[id.ID] = edge.Length
		}
	}
	for id, edge := range self.removed_edges {
		lengths[id] = edge.Length
	}
	return lengths
}

// Original edge id -> mini-edges of its current subdivision, ordered from NodeI to NodeJ.
func (self *Graph) MapNewEdge() Dict[int32, List[EdgeID]] {
	return self.map_new_edge
}

// Original edge id -> object nodes of its current subdivision, ordered from NodeI to NodeJ.
func (self *Graph) MapNewNode() Dict[int32, List[NodeID]] {
	return self.map_new_node
}

func (self *Graph) IsSubdivided() bool {
	return self.map_new_edge.Length() > 0
}

// Bounding box of all real nodes.
func (self *Graph) Bound() orb.Bound {
	points := NewList[orb.Point](self.nodes.Length())
	for id, node := range self.nodes {
		if id.Kind == REAL_NODE {
			points.Add(node.Point)
		}
	}
	if points.Length() == 0 {
		return orb.Bound{}
	}
	return orb.MultiPoint(points).Bound()
}

// Ids of all real nodes in ascending order.
func (self *Graph) RealNodes() List[NodeID] {
	nodes := NewList[NodeID](self.nodes.Length())
	for id := range self.nodes {
		if id.Kind == REAL_NODE {
			nodes.Add(id)
		}
	}
	slices.SortFunc(nodes, CompareNodes)
	return nodes
}
