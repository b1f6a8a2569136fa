package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
)

// 1 --(10)-- 2 --(5)-- 3, objects 7 @0.3 and 8 @0.7 on edge 10, object 9 @0.5 on edge 11
func _BuildTestGraph(t *testing.T) *Graph {
	nodes := List[structs.NodeRecord]{
		{ID: 1, Lng: 0, Lat: 0},
		{ID: 2, Lng: 10, Lat: 0},
		{ID: 3, Lng: 10, Lat: 5},
	}
	edges := List[structs.EdgeRecord]{
		{ID: 10, NodeI: 1, NodeJ: 2},
		{ID: 11, NodeI: 2, NodeJ: 3},
	}
	objects := List[structs.ObjectRecord]{
		{Action: structs.INSERTION, ID: 8, EdgeID: 10, Dist: 0.7, Attrs: []float64{1, 2}},
		{Action: structs.INSERTION, ID: 7, EdgeID: 10, Dist: 0.3, Attrs: []float64{2, 1}},
		{Action: structs.INSERTION, ID: 9, EdgeID: 11, Dist: 0.5, Attrs: []float64{3, 3}},
	}
	g, err := BuildGraph(nodes, edges, objects)
	require.NoError(t, err)
	return g
}

func TestBuildGraph(t *testing.T) {
	g := _BuildTestGraph(t)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, 3, g.ObjectCount())

	length, err := g.EdgeLength(RealNode(2), RealNode(1))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, length, 1e-9)

	objs := g.ObjectsOn(RealNode(1), RealNode(2))
	require.Equal(t, 2, objs.Length())
	assert.Equal(t, int32(7), objs[0].Object.ID)
	assert.Equal(t, int32(8), objs[1].Object.ID)

	neighbors := NewList[NodeID](2)
	for nb := range g.Neighbors(RealNode(2)) {
		neighbors.Add(nb)
	}
	assert.Equal(t, List[NodeID]{RealNode(1), RealNode(3)}, neighbors)
}

func TestBuildGraphUnknownNode(t *testing.T) {
	nodes := List[structs.NodeRecord]{{ID: 1}}
	edges := List[structs.EdgeRecord]{{ID: 10, NodeI: 1, NodeJ: 2}}
	_, err := BuildGraph(nodes, edges, nil)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestLookupErrors(t *testing.T) {
	g := _BuildTestGraph(t)

	_, err := g.Object(100)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
	_, err = g.EdgeLength(RealNode(1), RealNode(3))
	assert.True(t, errors.Is(err, ErrEdgeNotFound))
	assert.False(t, g.GetEdge(RealNode(1), RealNode(3)).HasValue())
	_, err = g.ConvertObjectAsNode(100)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestDuplicateEdge(t *testing.T) {
	g := _BuildTestGraph(t)
	err := g.AddEdge(&Edge{ID: RealEdge(12), NodeI: RealNode(2), NodeJ: RealNode(1), Length: 1})
	assert.True(t, errors.Is(err, ErrDuplicateEdge))
}

func TestNegativeEdgeLengthPanics(t *testing.T) {
	g := _BuildTestGraph(t)
	assert.Panics(t, func() {
		g.AddEdge(&Edge{ID: RealEdge(12), NodeI: RealNode(1), NodeJ: RealNode(3), Length: -1, Origin: 12})
	})
	assert.False(t, g.IsEdge(RealEdge(12)))
}

func TestInsertRemoveObject(t *testing.T) {
	g := _BuildTestGraph(t)

	obj := &Object{ID: 20, EdgeID: 10, Dist: 0.5, Attrs: []float64{0, 0}}
	require.NoError(t, g.InsertObject(obj))
	objs := g.ObjectsOn(RealNode(1), RealNode(2))
	require.Equal(t, 3, objs.Length())
	assert.Equal(t, int32(20), objs[1].Object.ID)

	assert.True(t, errors.Is(g.InsertObject(obj), ErrDuplicateObj))

	require.NoError(t, g.RemoveObject(20))
	assert.Equal(t, 2, g.ObjectsOn(RealNode(1), RealNode(2)).Length())
	assert.True(t, errors.Is(g.RemoveObject(20), ErrObjectNotFound))
}

func TestInsertObjectOnSubdividedEdge(t *testing.T) {
	g := _BuildTestGraph(t)
	_, err := g.ConvertObjectAsNode(7)
	require.NoError(t, err)

	err = g.InsertObject(&Object{ID: 20, EdgeID: 10, Dist: 0.5})
	assert.True(t, errors.Is(err, ErrSubdivided))
}

func TestMapEdges(t *testing.T) {
	g := _BuildTestGraph(t)
	_, err := g.ConvertObjectAsNode(9)
	require.NoError(t, err)

	lengths := g.MapEdges()
	assert.Equal(t, 2, lengths.Length())
	assert.InDelta(t, 10.0, lengths[10], 1e-9)
	assert.InDelta(t, 5.0, lengths[11], 1e-9)
}
