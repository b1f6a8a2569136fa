package algorithm

import (
	"github.com/ttpr0/go-netvoronoi/graph"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// dominance traversal
//*******************************************

// Objects dominating and dominated by a query object, bucketed by dominance strength.
type Dominance struct {
	ObjectID    int32
	DominatedBy Dict[structs.K, List[int32]]
	Dominate    Dict[structs.K, List[int32]]

	dominated_by Dict[int32, structs.K]
	dominate     Dict[int32, structs.K]
}

// Classifies every object reachable within the traversal bound of the query object.
//
// The query object is materialized as a node for the traversal, the graph is cleaned afterwards.
func ComputeDominance(g *graph.Graph, object_id int32, max_dist float64) (*Dominance, error) {
	query, err := g.Object(object_id)
	if err != nil {
		return nil, err
	}
	start, err := g.ConvertObjectAsNode(object_id)
	if err != nil {
		return nil, err
	}
	defer g.Clean()

	dom := &Dominance{
		ObjectID:     object_id,
		DominatedBy:  NewDict[structs.K, List[int32]](4),
		Dominate:     NewDict[structs.K, List[int32]](4),
		dominated_by: NewDict[int32, structs.K](10),
		dominate:     NewDict[int32, structs.K](10),
	}
	visited := NewDict[graph.EdgeID, bool](100)
	seen := NewDict[int32, bool](100)
	traversal := NewRangeTraversal(g, start, max_dist)
	// edges are compared once both their end nodes have been reached
	compare_edges := func(node graph.NodeID) {
		for other_id, edge := range g.Neighbors(node) {
			if visited[edge.ID] {
				continue
			}
			if _, ok := traversal.GetCost(other_id); !ok {
				continue
			}
			visited[edge.ID] = true
			for _, pos := range edge.Objects {
				other := pos.Object
				if other.ID == object_id || seen[other.ID] {
					continue
				}
				seen[other.ID] = true
				dom._Classify(query, other)
			}
		}
	}

	compare_edges(start)
	for {
		state, ok := traversal.Next()
		if !ok {
			break
		}
		compare_edges(state.Node)
	}
	slog.Debug("computed dominance", "object", object_id, "dominate", dom.dominate.Length(), "dominated_by", dom.dominated_by.Length())
	return dom, nil
}

// Counts dimensions where a beats b (gt) and b beats a (lt), ties count for both.
// Only the dimensions present in both vectors are compared.
func CompareAttributes(a, b []float64) (gt int, lt int) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] > b[i]:
			gt += 1
		case a[i] < b[i]:
			lt += 1
		default:
			gt += 1
			lt += 1
		}
	}
	return gt, lt
}

// k is the count of the losing side.
func (self *Dominance) _Classify(query, other *graph.Object) {
	if len(query.Attrs) != len(other.Attrs) {
		slog.Warn("comparing objects with different attribute counts", "object", query.ID, "other", other.ID, "dims", len(query.Attrs), "other_dims", len(other.Attrs))
	}
	gt, lt := CompareAttributes(query.Attrs, other.Attrs)
	if gt > lt {
		k := structs.K(lt)
		self.dominate[other.ID] = k
		bucket := self.Dominate[k]
		bucket.Add(other.ID)
		self.Dominate[k] = bucket
	} else if lt > gt {
		k := structs.K(gt)
		self.dominated_by[other.ID] = k
		bucket := self.DominatedBy[k]
		bucket.Add(other.ID)
		self.DominatedBy[k] = bucket
	}
}

// Object id -> k of every object dominated by the query object.
func (self *Dominance) MapDominateObjects() Dict[int32, structs.K] {
	return self.dominate
}

// Object id -> k of every object dominating the query object.
func (self *Dominance) MapDominatedByObjects() Dict[int32, structs.K] {
	return self.dominated_by
}
