package result

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
)

func TestEdgeResultInsert(t *testing.T) {
	edge_result := NewEdgeResult(10)
	ranges := List[structs.Range]{
		{Start: 0, End: 4, ObjectID: 1},
		{Start: 2, End: 4, ObjectID: 2},
		{Start: 1, End: 7, ObjectID: 3},
		{Start: 3, End: 9, ObjectID: 4},
	}
	for _, r := range ranges {
		edge_result.Insert(r)
	}

	// breakpoints at 0, 1, 2, 3, 4, 7, 9
	assert.Equal(t, 7, edge_result.Len())
	assert.ElementsMatch(t, []int32{1}, edge_result.Owners(0.5))
	assert.ElementsMatch(t, []int32{1, 2, 3, 4}, edge_result.Owners(3))
	assert.ElementsMatch(t, []int32{3, 4}, edge_result.Owners(4))
	assert.ElementsMatch(t, []int32{4}, edge_result.Owners(8.99))
	assert.Empty(t, edge_result.Owners(9))
	assert.Empty(t, edge_result.Owners(11))
}

func TestEdgeResultInsertClampsToEdge(t *testing.T) {
	edge_result := NewEdgeResult(10)
	edge_result.Insert(structs.Range{Start: -1e-12, End: 10 + 1e-12, ObjectID: 1})
	edge_result.Insert(structs.Range{Start: 10, End: 12, ObjectID: 2})

	points := edge_result.Breakpoints()
	require.Equal(t, 2, points.Length())
	assert.Equal(t, 0.0, points[0].Dist)
	assert.Equal(t, 10.0, points[1].Dist)
	assert.Empty(t, points[1].Owners)
	assert.Equal(t, List[structs.Range]{{Start: 0, End: 10, ObjectID: 1}}, edge_result.Ranges())
}

func TestEdgeResultRanges(t *testing.T) {
	edge_result := NewEdgeResult(10)
	edge_result.Insert(structs.Range{Start: 0, End: 5, ObjectID: 1})
	edge_result.Insert(structs.Range{Start: 5, End: 10, ObjectID: 2})
	edge_result.Insert(structs.Range{Start: 2, End: 8, ObjectID: 3})

	assert.Equal(t, List[structs.Range]{
		{Start: 0, End: 5, ObjectID: 1},
		{Start: 2, End: 8, ObjectID: 3},
		{Start: 5, End: 10, ObjectID: 2},
	}, edge_result.Ranges())
}

func TestEdgeResultRangesDisjoint(t *testing.T) {
	edge_result := NewEdgeResult(10)
	edge_result.Insert(structs.Range{Start: 0, End: 5, ObjectID: 1})
	edge_result.Insert(structs.Range{Start: 5, End: 10, ObjectID: 2})

	ranges := edge_result.Ranges()
	total := 0.0
	for i, r := range ranges {
		total += r.Length()
		if i > 0 {
			assert.LessOrEqual(t, ranges[i-1].End, r.Start)
		}
	}
	assert.InDelta(t, 10.0, total, 1e-9)
}

func TestEdgeResultRemove(t *testing.T) {
	edge_result := NewEdgeResult(10)
	edge_result.Insert(structs.Range{Start: 0, End: 4, ObjectID: 1})
	edge_result.Insert(structs.Range{Start: 2, End: 6, ObjectID: 2})

	edge_result.Remove(2)
	assert.Equal(t, List[Breakpoint]{
		{Dist: 0, Owners: List[int32]{1}},
		{Dist: 4, Owners: List[int32]{}},
	}, edge_result.Breakpoints())

	// idempotent
	edge_result.Remove(2)
	assert.Equal(t, 2, edge_result.Len())

	edge_result.Remove(1)
	assert.Equal(t, 1, edge_result.Len())
	assert.Empty(t, edge_result.Ranges())
}

func TestResultVoronoi(t *testing.T) {
	result := FromEdges(Dict[int32, float64]{10: 10, 11: 5})
	assert.Equal(t, 2, result.EdgeCount())

	require.NoError(t, result.Insert(1, 10, List[structs.Range]{{Start: 0, End: 5, ObjectID: 1}}))
	require.NoError(t, result.Insert(2, 10, List[structs.Range]{{Start: 0, End: 8, ObjectID: 1}}))
	require.NoError(t, result.Insert(1, 11, List[structs.Range]{{Start: 1, End: 5, ObjectID: 2}}))

	err := result.Insert(1, 12, List[structs.Range]{{Start: 0, End: 1, ObjectID: 1}})
	assert.True(t, errors.Is(err, ErrUnknownEdge))
	_, err = result.Owners(12, 1, 0)
	assert.True(t, errors.Is(err, ErrUnknownEdge))

	owners, err := result.Owners(10, 1, 6)
	require.NoError(t, err)
	assert.Empty(t, owners)
	owners, err = result.Owners(10, 2, 6)
	require.NoError(t, err)
	assert.Equal(t, List[int32]{1}, owners)
	assert.Equal(t, List[structs.K]{1, 2}, result.Levels(10))

	result.Remove(1, 1)
	ranges, err := result.Ranges(10, 1)
	require.NoError(t, err)
	assert.Empty(t, ranges)
	ranges, err = result.Ranges(10, 2)
	require.NoError(t, err)
	assert.Equal(t, List[structs.Range]{{Start: 0, End: 8, ObjectID: 1}}, ranges)

	result.RemoveAll(1)
	ranges, err = result.Ranges(10, 2)
	require.NoError(t, err)
	assert.Empty(t, ranges)
	ranges, err = result.Ranges(11, 1)
	require.NoError(t, err)
	assert.Equal(t, List[structs.Range]{{Start: 1, End: 5, ObjectID: 2}}, ranges)
}

func TestExport(t *testing.T) {
	result := FromEdges(Dict[int32, float64]{10: 10, 11: 5})
	require.NoError(t, result.Insert(1, 11, List[structs.Range]{{Start: 1, End: 5, ObjectID: 2}}))

	file := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, result.WriteToFile(file))
	export, err := ReadJSONFromFile[[]EdgeRanges](file)
	require.NoError(t, err)
	require.Len(t, export, 1)
	assert.Equal(t, int32(11), export[0].EdgeID)
	assert.Equal(t, []structs.Range{{Start: 1, End: 5, ObjectID: 2}}, export[0].Ranges)
}
