package algorithm

import (
	"fmt"
	"math"

	"github.com/ttpr0/go-netvoronoi/graph"
	. "github.com/ttpr0/go-netvoronoi/util"
)

//*******************************************
// bounded shortest-path traversal
//*******************************************

type TraversalState struct {
	Cost float64
	Node graph.NodeID
	Prev graph.NodeID
}

// Single-source priority-first search bounded by twice the max distance.
//
// Every call to Next settles one more state, the traversal cannot be restarted.
type RangeTraversal struct {
	g        *graph.Graph
	heap     PriorityQueue[TraversalState, float64]
	costs    Dict[graph.NodeID, float64]
	max_cost float64
}

func NewRangeTraversal(g *graph.Graph, start graph.NodeID, max_dist float64) *RangeTraversal {
	self := &RangeTraversal{
		g:        g,
		heap:     NewPriorityQueue[TraversalState, float64](100),
		costs:    NewDict[graph.NodeID, float64](100),
		max_cost: 2 * max_dist,
	}
	self.costs[start] = 0
	// seeds are pushed at their edge length regardless of the bound
	for other_id, edge := range g.Neighbors(start) {
		_CheckCost(other_id, edge.Length)
		if best, ok := self.costs[other_id]; ok && best <= edge.Length {
			continue
		}
		self.costs[other_id] = edge.Length
		self.heap.Enqueue(TraversalState{Cost: edge.Length, Node: other_id, Prev: start}, edge.Length)
	}
	return self
}

func (self *RangeTraversal) Next() (TraversalState, bool) {
	for {
		curr, ok := self.heap.Dequeue()
		if !ok {
			return TraversalState{}, false
		}
		if self.costs[curr.Node] < curr.Cost {
			continue
		}
		for other_id, edge := range self.g.Neighbors(curr.Node) {
			self._Relax(other_id, curr.Node, curr.Cost+edge.Length)
		}
		return curr, true
	}
}

// Cost of the best path found so far.
func (self *RangeTraversal) GetCost(node graph.NodeID) (float64, bool) {
	cost, ok := self.costs[node]
	return cost, ok
}

func _CheckCost(node graph.NodeID, cost float64) {
	if math.IsNaN(cost) {
		panic(fmt.Sprintf("NaN cost reaching node %v", node))
	}
}

func (self *RangeTraversal) _Relax(node, prev graph.NodeID, cost float64) {
	_CheckCost(node, cost)
	if cost > self.max_cost {
		return
	}
	if best, ok := self.costs[node]; ok && best <= cost {
		return
	}
	self.costs[node] = cost
	self.heap.Enqueue(TraversalState{Cost: cost, Node: node, Prev: prev}, cost)
}
