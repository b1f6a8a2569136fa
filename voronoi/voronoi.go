package voronoi

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-netvoronoi/algorithm"
	"github.com/ttpr0/go-netvoronoi/graph"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slog"
)

type Options struct {
	MaxDist float64   `validate:"gt=0"`
	MaxDim  structs.K `validate:"gt=0"`
}

var validate = validator.New()

func (self Options) Validate() error {
	return validate.Struct(self)
}

//*******************************************
// voronoi scope builder
//*******************************************

// Collects the ranges owned by one object on every edge.
type IResultStore interface {
	Insert(k structs.K, edge_id int32, ranges List[structs.Range]) error
}

// Scope of one object against the objects dominating it.
//
// The graph stays subdivided until the caller invokes Clean.
type Voronoi struct {
	g         *graph.Graph
	heap      *VoronoiHeap
	object_id int32
	opts      Options

	// original edge id -> merged ranges owned by the object
	scope Dict[int32, List[structs.Range]]
	// mini-edge id -> distance of its NodeI from the original NodeI
	offsets Dict[graph.EdgeID, float64]
}

// Builds the scope of an object at level k, the object competes with every object dominating it.
//
// The object itself has k = MaxDim, dominating objects keep the k of the relationship.
func InitialVoronoi(g *graph.Graph, object_id int32, k structs.K, opts Options) (*Voronoi, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dom, err := algorithm.ComputeDominance(g, object_id, opts.MaxDist)
	if err != nil {
		return nil, err
	}
	dominated_by := dom.MapDominatedByObjects()
	object_ids := NewList[int32](dominated_by.Length() + 1)
	object_ids.Add(object_id)
	for _, id := range SortedKeys(dominated_by) {
		object_ids.Add(id)
	}
	centroids, err := g.ConvertObjectsToNode(object_ids)
	if err != nil {
		return nil, err
	}
	centroid_k := NewDict[graph.NodeID, structs.K](centroids.Length())
	centroid_k[graph.ObjectNode(object_id)] = opts.MaxDim
	for id, k := range dominated_by {
		centroid_k[graph.ObjectNode(id)] = k
	}
	heap, err := NewVoronoiHeap(g, centroids, centroid_k, k, opts)
	if err != nil {
		return nil, err
	}

	v := &Voronoi{
		g:         g,
		heap:      heap,
		object_id: object_id,
		opts:      opts,
		scope:     NewDict[int32, List[structs.Range]](10),
		offsets:   NewDict[graph.EdgeID, float64](10),
	}
	v._Collect()
	slog.Debug("initial voronoi", "object", object_id, "k", k, "centroids", centroids.Length(), "edges", v.scope.Length())
	return v, nil
}

// Raises k and extends the scope with the states unlocked by it.
func (self *Voronoi) ContinueVoronoi(k structs.K) error {
	if err := self.heap.Continue(k); err != nil {
		return fmt.Errorf("object %d: %w", self.object_id, err)
	}
	self._Collect()
	return nil
}

func (self *Voronoi) ObjectID() int32 {
	return self.object_id
}
func (self *Voronoi) CurrentK() structs.K {
	return self.heap.CurrentK()
}

// Ranges owned by the object in original edge coordinates, keyed by original edge id.
func (self *Voronoi) Scope() Dict[int32, List[structs.Range]] {
	return self.scope
}

func (self *Voronoi) SaveToResult(result IResultStore, k structs.K) error {
	for _, edge_id := range SortedKeys(self.scope) {
		if err := result.Insert(k, edge_id, self.scope[edge_id]); err != nil {
			return err
		}
	}
	return nil
}

func (self *Voronoi) _Collect() {
	for {
		state, ok := self.heap.Next()
		if !ok {
			break
		}
		ranges := ScopeRanges(state, self.opts.MaxDist)
		if ranges.Length() == 0 {
			continue
		}
		offset := self._Offset(state.Edge)
		scope := self.scope[state.Edge.Origin]
		for _, r := range ranges {
			if r.ObjectID != self.object_id {
				continue
			}
			scope.Add(structs.Range{Start: r.Start + offset, End: r.End + offset, ObjectID: r.ObjectID})
		}
		if scope.Length() > 0 {
			self.scope[state.Edge.Origin] = MergeRanges(scope)
		}
	}
}

// Maps a mini-edge to its start on the original edge by summing the preceding chain.
func (self *Voronoi) _Offset(edge SimpleEdge) float64 {
	if edge.ID.IsOriginal() {
		return 0
	}
	if offset, ok := self.offsets[edge.ID]; ok {
		return offset
	}
	offset := 0.0
	for _, id := range self.g.MapNewEdge()[edge.Origin] {
		self.offsets[id] = offset
		mini := self.g.GetEdgeByID(id)
		if mini.HasValue() {
			offset += mini.Value.Length
		}
	}
	return self.offsets[edge.ID]
}
