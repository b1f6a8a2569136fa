package graph

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// subdivision
//*******************************************

// Materializes a single object as a node, see ConvertObjectsToNode.
func (self *Graph) ConvertObjectAsNode(object_id int32) (NodeID, error) {
	ids, err := self.ConvertObjectsToNode(List[int32]{object_id})
	if err != nil {
		return NodeID{}, err
	}
	return ids[0], nil
}

// Materializes objects as nodes by replacing their edges with chains of mini-edges.
//
// Objects are grouped by edge and merged with objects already converted on that edge,
// converting an object twice is a no-op. Returned node ids follow the input order.
func (self *Graph) ConvertObjectsToNode(object_ids List[int32]) (List[NodeID], error) {
	groups := NewDict[int32, List[*Object]](object_ids.Length())
	node_ids := NewList[NodeID](object_ids.Length())
	for _, id := range object_ids {
		obj, err := self.Object(id)
		if err != nil {
			return nil, err
		}
		if _, err := self._OriginalEdge(obj.EdgeID); err != nil {
			return nil, fmt.Errorf("object %d: %w", id, err)
		}
		node_ids.Add(ObjectNode(id))
		group := groups[obj.EdgeID]
		group.Add(obj)
		groups[obj.EdgeID] = group
	}
	for _, orig := range SortedKeys(groups) {
		if err := self._SubdivideEdge(orig, groups[orig]); err != nil {
			return nil, err
		}
	}
	return node_ids, nil
}

// Reverts all subdivisions, restoring the original edges.
func (self *Graph) Clean() {
	for _, orig := range SortedKeys(self.map_new_edge) {
		self._TearDownChain(orig)
		if err := self.AddEdge(self.removed_edges[orig]); err != nil {
			panic(err)
		}
	}
	self.map_new_edge = NewDict[int32, List[EdgeID]](10)
	self.map_new_node = NewDict[int32, List[NodeID]](10)
	self.removed_edges = NewDict[int32, *Edge](10)
}

func (self *Graph) _OriginalEdge(orig int32) (*Edge, error) {
	if edge, ok := self.removed_edges[orig]; ok {
		return edge, nil
	}
	if edge, ok := self.edges[RealEdge(orig)]; ok {
		return edge, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrEdgeNotFound, orig)
}

func (self *Graph) _TearDownChain(orig int32) {
	for _, id := range self.map_new_edge[orig] {
		if err := self.RemoveEdge(id); err != nil {
			panic(err)
		}
	}
	for _, id := range self.map_new_node[orig] {
		if err := self.RemoveNode(id); err != nil {
			panic(err)
		}
	}
}

func (self *Graph) _SubdivideEdge(orig int32, objects List[*Object]) error {
	original, err := self._OriginalEdge(orig)
	if err != nil {
		return err
	}
	converted := NewDict[int32, *Object](objects.Length())
	for _, node := range self.map_new_node[orig] {
		converted[node.ID] = self.objects[node.ID]
	}
	added := false
	for _, obj := range objects {
		if !converted.ContainsKey(obj.ID) {
			converted[obj.ID] = obj
			added = true
		}
	}
	if !added {
		return nil
	}

	if self.map_new_edge.ContainsKey(orig) {
		self._TearDownChain(orig)
	} else {
		if err := self.RemoveEdge(original.ID); err != nil {
			return err
		}
		self.removed_edges[orig] = original
	}

	sorted := NewList[*Object](converted.Length())
	for _, obj := range converted {
		sorted.Add(obj)
	}
	slices.SortFunc(sorted, func(a, b *Object) int {
		if a.Dist != b.Dist {
			if a.Dist < b.Dist {
				return -1
			}
			return 1
		}
		return int(a.ID) - int(b.ID)
	})

	start := self.nodes[original.NodeI]
	end := self.nodes[original.NodeJ]
	seq := NewList[NodeID](sorted.Length() + 2)
	fracs := NewList[float64](sorted.Length() + 2)
	points := NewList[orb.Point](sorted.Length() + 2)
	seq.Add(original.NodeI)
	fracs.Add(0)
	points.Add(start.Point)
	new_nodes := NewList[NodeID](sorted.Length())
	for _, obj := range sorted {
		id := ObjectNode(obj.ID)
		point := _Interpolate(start.Point, end.Point, obj.Dist)
		if err := self.AddNode(id, point); err != nil {
			return err
		}
		seq.Add(id)
		fracs.Add(obj.Dist)
		points.Add(point)
		new_nodes.Add(id)
	}
	seq.Add(original.NodeJ)
	fracs.Add(1)
	points.Add(end.Point)

	chain := NewList[EdgeID](seq.Length() - 1)
	for i := 0; i < seq.Length()-1; i++ {
		var id EdgeID
		if i == 0 {
			id = BeforeObject(sorted[0].ID)
		} else {
			id = AfterObject(sorted[i-1].ID)
		}
		pa := fracs[i]
		pb := fracs[i+1]
		last := i == seq.Length()-2
		// remaining objects are assigned half-open [pa, pb), the last mini-edge is closed
		objs := NewList[ObjectPos](2)
		for _, pos := range original.Objects {
			if converted.ContainsKey(pos.Object.ID) {
				continue
			}
			if pos.Pos < pa || pos.Pos > pb || (pos.Pos == pb && !last) {
				continue
			}
			local := 0.0
			if pb > pa {
				local = (pos.Pos - pa) / (pb - pa)
			}
			objs.Add(ObjectPos{Object: pos.Object, Pos: local})
		}
		edge := &Edge{
			ID:      id,
			NodeI:   seq[i],
			NodeJ:   seq[i+1],
			Length:  planar.Distance(points[i], points[i+1]),
			Objects: objs,
			Origin:  orig,
		}
		if err := self.AddEdge(edge); err != nil {
			return err
		}
		chain.Add(id)
	}
	self.map_new_edge[orig] = chain
	self.map_new_node[orig] = new_nodes
	return nil
}

func _Interpolate(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}
