package voronoi

import (
	"errors"
	"fmt"
	"math"

	"github.com/ttpr0/go-netvoronoi/graph"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slices"
)

var (
	ErrInvalidK = errors.New("k must increase")
	ErrMissingK = errors.New("centroid has no k")
)

//*******************************************
// traverse state
//*******************************************

type Side byte

const (
	START Side = 0
	END   Side = 1
)

type SimpleEdge struct {
	ID     graph.EdgeID
	NodeI  graph.NodeID
	NodeJ  graph.NodeID
	Length float64
	Origin int32
}

func _MakeSimpleEdge(edge *graph.Edge) SimpleEdge {
	return SimpleEdge{
		ID:     edge.ID,
		NodeI:  edge.NodeI,
		NodeJ:  edge.NodeJ,
		Length: edge.Length,
		Origin: edge.Origin,
	}
}

// Crossing of an edge from Start to End by the front of Centroid.
type VoronoiState struct {
	CostToStart float64
	CostToEnd   float64
	// cost recorded at End by PrevCentroid
	PrevCostToEnd float64
	Centroid      graph.NodeID
	// centroid owning End, invalid if End is unclaimed
	PrevCentroid graph.NodeID
	Start        graph.NodeID
	End          graph.NodeID
	Edge         SimpleEdge
	// smaller k of both centroids, Side tells which one
	SmallestK structs.K
	Side      Side
}

// Centroid claiming a node and its cost.
type _Claim struct {
	Centroid graph.NodeID
	Cost     float64
}

//*******************************************
// multi-source voronoi traversal
//*******************************************

// Multi-source traversal sharing one queue between all centroids.
//
// States crossing a boundary above the active k are reserved and replayed by Continue.
type VoronoiHeap struct {
	g    *graph.Graph
	opts Options

	heap       PriorityQueue[VoronoiState, float64]
	cost_map   Dict[graph.NodeID, _Claim]
	visited    Dict[graph.EdgeID, bool]
	centroid_k Dict[graph.NodeID, structs.K]
	// smaller k of the centroids meeting on an edge, locks the edge in continuation
	edge_k  Dict[graph.EdgeID, structs.K]
	reserve List[VoronoiState]

	is_initial bool
	current_k  structs.K
}

func NewVoronoiHeap(g *graph.Graph, centroids List[graph.NodeID], centroid_k Dict[graph.NodeID, structs.K], start_k structs.K, opts Options) (*VoronoiHeap, error) {
	self := &VoronoiHeap{
		g:          g,
		opts:       opts,
		heap:       NewPriorityQueue[VoronoiState, float64](100),
		cost_map:   NewDict[graph.NodeID, _Claim](100),
		visited:    NewDict[graph.EdgeID, bool](100),
		centroid_k: centroid_k,
		edge_k:     NewDict[graph.EdgeID, structs.K](100),
		reserve:    NewList[VoronoiState](10),
		is_initial: true,
		current_k:  start_k,
	}
	sorted := centroids.Copy()
	slices.SortFunc(sorted, graph.CompareNodes)
	for _, centroid := range sorted {
		if !g.IsNode(centroid) {
			return nil, fmt.Errorf("centroid %v: %w", centroid, graph.ErrNodeNotFound)
		}
		k, ok := centroid_k[centroid]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrMissingK, centroid)
		}
		for other_id, edge := range g.Neighbors(centroid) {
			self._Push(VoronoiState{
				CostToStart: 0,
				CostToEnd:   edge.Length,
				Centroid:    centroid,
				Start:       centroid,
				End:         other_id,
				Edge:        _MakeSimpleEdge(edge),
				SmallestK:   k,
				Side:        START,
			})
			if claim, ok := self.cost_map[other_id]; !ok || claim.Cost > edge.Length {
				self.cost_map[other_id] = _Claim{Centroid: centroid, Cost: edge.Length}
			}
		}
		self.cost_map[centroid] = _Claim{Centroid: centroid, Cost: 0}
	}
	return self, nil
}

func (self *VoronoiHeap) CurrentK() structs.K {
	return self.current_k
}

// Number of states waiting for a larger k.
func (self *VoronoiHeap) Reserved() int {
	return self.reserve.Length()
}

// Pops the next edge crossing, returns false once the queue is exhausted.
func (self *VoronoiHeap) Next() (VoronoiState, bool) {
	for {
		state, ok := self.heap.Dequeue()
		if !ok {
			return VoronoiState{}, false
		}
		if claim, ok := self.cost_map[state.End]; ok {
			state.PrevCentroid = claim.Centroid
			state.PrevCostToEnd = claim.Cost
		}
		if state.CostToStart > 2*self.opts.MaxDist {
			continue
		}
		if self.visited[state.Edge.ID] {
			continue
		}
		self.visited[state.Edge.ID] = true

		self._SaveEdgeK(state)
		self._ReserveState(state)
		self._Relax(state)

		if state.Start != state.End {
			return state, true
		}
	}
}

// Raises the active k and replays reserved states unlocked by it.
//
// States still above new_k stay reserved.
func (self *VoronoiHeap) Continue(new_k structs.K) error {
	if new_k <= self.current_k {
		return fmt.Errorf("%w: %d after %d", ErrInvalidK, new_k, self.current_k)
	}
	self.current_k = new_k
	self.is_initial = false
	self.visited = NewDict[graph.EdgeID, bool](100)

	remaining := NewList[VoronoiState](self.reserve.Length())
	for _, state := range self.reserve {
		if state.SmallestK > new_k {
			remaining.Add(state)
			continue
		}
		switch state.Side {
		case START:
			self.cost_map.Delete(state.End)
			state.PrevCentroid = state.Centroid
			state.PrevCostToEnd = state.CostToEnd
			self._Push(state)
		case END:
			// resume from the other side with the front of the previous owner
			self.cost_map.Delete(state.Start)
			cost := state.PrevCostToEnd
			self._Push(VoronoiState{
				CostToStart:   cost,
				CostToEnd:     cost + state.Edge.Length,
				PrevCostToEnd: cost + state.Edge.Length,
				Centroid:      state.PrevCentroid,
				PrevCentroid:  state.PrevCentroid,
				Start:         state.End,
				End:           state.Start,
				Edge:          state.Edge,
				SmallestK:     state.SmallestK,
				Side:          state.Side,
			})
		}
	}
	self.reserve = remaining
	return nil
}

func (self *VoronoiHeap) _Push(state VoronoiState) {
	if math.IsNaN(state.CostToEnd) {
		panic(fmt.Sprintf("NaN cost on edge %v", state.Edge.ID))
	}
	self.heap.Enqueue(state, state.CostToEnd)
}

func (self *VoronoiHeap) _Relax(state VoronoiState) {
	for other_id, edge := range self.g.Neighbors(state.End) {
		if self.visited[edge.ID] {
			continue
		}
		cost_next := state.CostToEnd + edge.Length
		if !self.is_initial {
			if k, ok := self.edge_k[edge.ID]; ok && k > self.current_k {
				continue
			}
			self.cost_map.Delete(other_id)
		}
		next := VoronoiState{
			CostToStart: state.CostToEnd,
			CostToEnd:   cost_next,
			Centroid:    state.Centroid,
			Start:       state.End,
			End:         other_id,
			Edge:        _MakeSimpleEdge(edge),
		}
		claim, ok := self.cost_map[other_id]
		if !ok {
			self.cost_map[other_id] = _Claim{Centroid: state.Centroid, Cost: cost_next}
			next.SmallestK = self._KOf(state.Centroid)
			next.Side = START
			self._Push(next)
			continue
		}
		if claim.Centroid == state.Centroid && cost_next >= claim.Cost {
			continue
		}
		if cost_next < claim.Cost {
			self.cost_map[other_id] = _Claim{Centroid: state.Centroid, Cost: cost_next}
		}
		// other centroids still get a state to resolve the boundary
		next.PrevCostToEnd = claim.Cost
		next.PrevCentroid = claim.Centroid
		next.SmallestK, next.Side = self._SmallestK(state.Centroid, claim.Centroid)
		self._Push(next)
	}
}

func (self *VoronoiHeap) _SaveEdgeK(state VoronoiState) {
	if state.Start == state.End {
		return
	}
	k := self._KOf(state.Centroid)
	if state.PrevCentroid.IsValid() {
		k = min(k, self._KOf(state.PrevCentroid))
	}
	self.edge_k[state.Edge.ID] = k
}

// Keeps boundaries between different centroids for replay if they are locked at the active k.
func (self *VoronoiHeap) _ReserveState(state VoronoiState) {
	if state.Start == state.End {
		return
	}
	if state.Centroid == state.PrevCentroid || state.SmallestK <= self.current_k {
		return
	}
	if !state.PrevCentroid.IsValid() {
		self.reserve.Add(state)
		return
	}
	// centroids at max dim are fully resolved
	if self._KOf(state.Centroid) < self.opts.MaxDim || self._KOf(state.PrevCentroid) < self.opts.MaxDim {
		self.reserve.Add(state)
	}
}

func (self *VoronoiHeap) _SmallestK(start, end graph.NodeID) (structs.K, Side) {
	start_k := self._KOf(start)
	end_k := self._KOf(end)
	if start_k < end_k {
		return start_k, START
	}
	return end_k, END
}

// Presence of every centroid k is checked on construction.
func (self *VoronoiHeap) _KOf(centroid graph.NodeID) structs.K {
	k, ok := self.centroid_k[centroid]
	if !ok {
		panic(fmt.Sprintf("%v: %v", ErrMissingK, centroid))
	}
	return k
}
