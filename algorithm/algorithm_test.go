package algorithm

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-netvoronoi/graph"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
)

// 1 --(10)-- 2 --(5)-- 3 --(100)-- 4
func _BuildTestGraph(t *testing.T) *graph.Graph {
	nodes := List[structs.NodeRecord]{
		{ID: 1, Lng: 0, Lat: 0},
		{ID: 2, Lng: 10, Lat: 0},
		{ID: 3, Lng: 10, Lat: 5},
		{ID: 4, Lng: 10, Lat: 105},
	}
	edges := List[structs.EdgeRecord]{
		{ID: 10, NodeI: 1, NodeJ: 2},
		{ID: 11, NodeI: 2, NodeJ: 3},
		{ID: 12, NodeI: 3, NodeJ: 4},
	}
	objects := List[structs.ObjectRecord]{
		{ID: 1, EdgeID: 10, Dist: 0.2, Attrs: []float64{5, 5, 5, 1}},
		{ID: 2, EdgeID: 10, Dist: 0.8, Attrs: []float64{1, 1, 1, 5}},
		{ID: 3, EdgeID: 11, Dist: 0.5, Attrs: []float64{6, 6, 3, 3}},
		{ID: 4, EdgeID: 12, Dist: 0.9, Attrs: []float64{0, 0, 0, 0}},
	}
	g, err := graph.BuildGraph(nodes, edges, objects)
	require.NoError(t, err)
	return g
}

func TestRangeTraversal(t *testing.T) {
	g := _BuildTestGraph(t)

	traversal := NewRangeTraversal(g, graph.RealNode(1), 10)
	states := NewList[TraversalState](4)
	for {
		state, ok := traversal.Next()
		if !ok {
			break
		}
		states.Add(state)
	}
	require.Equal(t, 2, states.Length())
	assert.Equal(t, graph.RealNode(2), states[0].Node)
	assert.Equal(t, graph.RealNode(1), states[0].Prev)
	assert.InDelta(t, 10.0, states[0].Cost, 1e-9)
	assert.Equal(t, graph.RealNode(3), states[1].Node)
	assert.InDelta(t, 15.0, states[1].Cost, 1e-9)

	_, ok := traversal.GetCost(graph.RealNode(4))
	assert.False(t, ok)
}

func TestRangeTraversalBound(t *testing.T) {
	g := _BuildTestGraph(t)

	// the first edge is pushed at its length, relaxation beyond 8 is cut
	traversal := NewRangeTraversal(g, graph.RealNode(1), 4)
	state, ok := traversal.Next()
	require.True(t, ok)
	assert.Equal(t, graph.RealNode(2), state.Node)
	assert.InDelta(t, 10.0, state.Cost, 1e-9)
	_, ok = traversal.Next()
	assert.False(t, ok)
	_, ok = traversal.GetCost(graph.RealNode(3))
	assert.False(t, ok)
}

// 1 --(1)-- 2 --(NaN)-- 3
func _BuildNaNGraph(t *testing.T) *graph.Graph {
	g := graph.NewGraph()
	require.NoError(t, g.AddNode(graph.RealNode(1), orb.Point{0, 0}))
	require.NoError(t, g.AddNode(graph.RealNode(2), orb.Point{1, 0}))
	require.NoError(t, g.AddNode(graph.RealNode(3), orb.Point{2, 0}))
	require.NoError(t, g.AddEdge(&graph.Edge{ID: graph.RealEdge(10), NodeI: graph.RealNode(1), NodeJ: graph.RealNode(2), Length: 1, Origin: 10}))
	require.NoError(t, g.AddEdge(&graph.Edge{ID: graph.RealEdge(11), NodeI: graph.RealNode(2), NodeJ: graph.RealNode(3), Length: math.NaN(), Origin: 11}))
	return g
}

func TestRangeTraversalNaNPanics(t *testing.T) {
	g := _BuildNaNGraph(t)

	traversal := NewRangeTraversal(g, graph.RealNode(1), 10)
	assert.Panics(t, func() {
		traversal.Next()
	})
	assert.Panics(t, func() {
		NewRangeTraversal(g, graph.RealNode(3), 10)
	})
}

func TestCompareAttributes(t *testing.T) {
	gt, lt := CompareAttributes([]float64{3, 1, 2}, []float64{1, 1, 5})
	assert.Equal(t, 2, gt)
	assert.Equal(t, 2, lt)
}

func TestComputeDominance(t *testing.T) {
	g := _BuildTestGraph(t)

	dom, err := ComputeDominance(g, 1, 10)
	require.NoError(t, err)

	// 1 beats 2 in three dimensions and loses one
	assert.Equal(t, Dict[int32, structs.K]{2: 1}, dom.MapDominateObjects())
	// 3 beats 1 in three dimensions, 4 is out of range
	assert.Equal(t, Dict[int32, structs.K]{3: 1}, dom.MapDominatedByObjects())
	assert.Equal(t, List[int32]{2}, dom.Dominate[1])
	assert.Equal(t, List[int32]{3}, dom.DominatedBy[1])

	// the graph is restored
	assert.False(t, g.IsSubdivided())
	assert.False(t, g.IsNode(graph.ObjectNode(1)))
}

func TestDominanceSymmetry(t *testing.T) {
	g := _BuildTestGraph(t)

	dom_1, err := ComputeDominance(g, 1, 10)
	require.NoError(t, err)
	dom_2, err := ComputeDominance(g, 2, 10)
	require.NoError(t, err)

	k, ok := dom_1.MapDominateObjects()[2]
	require.True(t, ok)
	k_inv, ok := dom_2.MapDominatedByObjects()[1]
	require.True(t, ok)
	assert.Equal(t, k, k_inv)
}

func TestComputeDominanceUnknownObject(t *testing.T) {
	g := _BuildTestGraph(t)

	_, err := ComputeDominance(g, 100, 10)
	assert.True(t, errors.Is(err, graph.ErrObjectNotFound))
}

func TestDominanceOnLongEdge(t *testing.T) {
	nodes := List[structs.NodeRecord]{
		{ID: 1, Lng: 0, Lat: 0},
		{ID: 2, Lng: 100, Lat: 0},
	}
	edges := List[structs.EdgeRecord]{
		{ID: 10, NodeI: 1, NodeJ: 2},
	}
	objects := List[structs.ObjectRecord]{
		{ID: 1, EdgeID: 10, Dist: 0.5, Attrs: []float64{1, 1}},
		{ID: 2, EdgeID: 10, Dist: 0.55, Attrs: []float64{5, 5}},
	}
	g, err := graph.BuildGraph(nodes, edges, objects)
	require.NoError(t, err)

	// both halves of the edge exceed twice the max distance, object 2 is 5 away
	dom, err := ComputeDominance(g, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, Dict[int32, structs.K]{2: 0}, dom.MapDominatedByObjects())
	assert.Empty(t, dom.MapDominateObjects())

	dom, err = ComputeDominance(g, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, Dict[int32, structs.K]{1: 0}, dom.MapDominateObjects())
}
