package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-netvoronoi/graph"
	"github.com/ttpr0/go-netvoronoi/query"
	"github.com/ttpr0/go-netvoronoi/result"
	"github.com/ttpr0/go-netvoronoi/structs"
	"github.com/ttpr0/go-netvoronoi/voronoi"
	. "github.com/ttpr0/go-netvoronoi/util"
)

// single edge of length 10, object 2 @8 dominates object 1 @2
func _BuildTestManager(t *testing.T) *VoronoiManager {
	nodes := List[structs.NodeRecord]{
		{ID: 1, Lng: 0, Lat: 0},
		{ID: 2, Lng: 10, Lat: 0},
	}
	edges := List[structs.EdgeRecord]{
		{ID: 10, NodeI: 1, NodeJ: 2},
	}
	objects := List[structs.ObjectRecord]{
		{Action: structs.INSERTION, ID: 1, EdgeID: 10, Dist: 0.2, Attrs: []float64{1, 1}},
		{Action: structs.INSERTION, ID: 2, EdgeID: 10, Dist: 0.8, Attrs: []float64{2, 2}},
	}
	g, err := graph.BuildGraph(nodes, edges, objects)
	require.NoError(t, err)

	queries := query.NewQueries(List[structs.QueryRecord]{
		{ID: 1, K: 0, Dimensions: []int{0, 1}},
		{ID: 2, K: 2, Dimensions: []int{0, 1}},
	})
	manager, err := NewVoronoiManager(g, queries, voronoi.Options{MaxDist: 100, MaxDim: 2})
	require.NoError(t, err)
	return manager
}

func _Owners(t *testing.T, manager *VoronoiManager, k structs.K, x float64) List[int32] {
	owners, err := manager.Result().Owners(10, k, x)
	require.NoError(t, err)
	return owners
}

func TestInvalidOptions(t *testing.T) {
	g := graph.NewGraph()
	_, err := NewVoronoiManager(g, query.NewQueries(nil), voronoi.Options{MaxDist: 0, MaxDim: 2})
	assert.Error(t, err)
}

func TestConstruct(t *testing.T) {
	manager := _BuildTestManager(t)

	stats := manager.Construct()
	assert.Equal(t, BatchStats{Processed: 2, Skipped: 0}, stats)
	assert.False(t, manager.Graph().IsSubdivided())

	assert.ElementsMatch(t, []int32{1, 2}, _Owners(t, manager, 0, 3))
	assert.ElementsMatch(t, []int32{2}, _Owners(t, manager, 0, 7))
	assert.ElementsMatch(t, []int32{1, 2}, _Owners(t, manager, 2, 7))
	assert.Equal(t, List[structs.K]{0, 2}, manager.Result().Levels(10))
}

func TestInsertRecomputesDominated(t *testing.T) {
	manager := _BuildTestManager(t)
	manager.Construct()

	object := &graph.Object{ID: 3, EdgeID: 10, Dist: 0.5, Attrs: []float64{3, 3}, Action: structs.INSERTION}
	require.NoError(t, manager.Insert(object))
	assert.False(t, manager.Graph().IsSubdivided())

	// bisectors at 3.5 and 6.5
	assert.ElementsMatch(t, []int32{1, 3}, _Owners(t, manager, 0, 1))
	assert.ElementsMatch(t, []int32{3}, _Owners(t, manager, 0, 4.5))
	assert.ElementsMatch(t, []int32{2, 3}, _Owners(t, manager, 0, 9))
}

func TestInsertUnknownEdge(t *testing.T) {
	manager := _BuildTestManager(t)
	manager.Construct()

	object := &graph.Object{ID: 3, EdgeID: 99, Dist: 0.5, Attrs: []float64{3, 3}}
	assert.Error(t, manager.Insert(object))
}

func TestInsertWrongAttributeCount(t *testing.T) {
	manager := _BuildTestManager(t)
	manager.Construct()

	object := &graph.Object{ID: 3, EdgeID: 10, Dist: 0.5, Attrs: []float64{3, 3, 3}}
	err := manager.Insert(object)
	assert.True(t, errors.Is(err, ErrAttributeCount))
	assert.Equal(t, 2, manager.Graph().ObjectCount())
}

func TestInsertDetachesOnFailure(t *testing.T) {
	manager := _BuildTestManager(t)
	// a store without edges rejects every range
	manager.result = result.FromEdges(NewDict[int32, float64](0))

	object := &graph.Object{ID: 3, EdgeID: 10, Dist: 0.5, Attrs: []float64{3, 3}}
	err := manager.Insert(object)
	assert.True(t, errors.Is(err, result.ErrUnknownEdge))

	_, err = manager.Graph().Object(3)
	assert.True(t, errors.Is(err, graph.ErrObjectNotFound))
	assert.Equal(t, 2, manager.Graph().ObjectCount())
	assert.False(t, manager.Graph().IsSubdivided())
}

func TestConstructSkipsWrongAttributeCount(t *testing.T) {
	manager := _BuildTestManager(t)
	require.NoError(t, manager.Graph().InsertObject(&graph.Object{ID: 9, EdgeID: 10, Dist: 0.5, Attrs: []float64{1}}))

	stats := manager.Construct()
	assert.Equal(t, BatchStats{Processed: 2, Skipped: 1}, stats)
}

func TestDeleteRecomputesDominated(t *testing.T) {
	manager := _BuildTestManager(t)
	manager.Construct()

	require.NoError(t, manager.Delete(2))
	assert.Equal(t, 1, manager.Graph().ObjectCount())

	assert.ElementsMatch(t, []int32{1}, _Owners(t, manager, 0, 3))
	assert.ElementsMatch(t, []int32{1}, _Owners(t, manager, 0, 7))

	assert.Error(t, manager.Delete(2))
}

func TestApply(t *testing.T) {
	manager := _BuildTestManager(t)
	manager.Construct()

	stats := manager.Apply(List[structs.ObjectRecord]{
		{Action: structs.DELETION, ID: 2},
		{Action: structs.DELETION, ID: 42},
		{Action: structs.INSERTION, ID: 5, EdgeID: 10, Dist: 0.9, Attrs: []float64{0, 0}},
	})
	assert.Equal(t, BatchStats{Processed: 2, Skipped: 1}, stats)
	assert.Equal(t, 2, manager.Graph().ObjectCount())
}
