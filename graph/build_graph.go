package graph

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// build graph
//*******************************************

// Builds the network from reader records, edge lengths are the euclidean distance of their end nodes.
func BuildGraph(nodes List[structs.NodeRecord], edges List[structs.EdgeRecord], objects List[structs.ObjectRecord]) (*Graph, error) {
	g := NewGraph()
	for _, node := range nodes {
		if err := g.AddNode(RealNode(node.ID), orb.Point{node.Lng, node.Lat}); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		node_i, err := g.GetNode(RealNode(e.NodeI))
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", e.ID, err)
		}
		node_j, err := g.GetNode(RealNode(e.NodeJ))
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", e.ID, err)
		}
		edge := &Edge{
			ID:      RealEdge(e.ID),
			NodeI:   node_i.ID,
			NodeJ:   node_j.ID,
			Length:  planar.Distance(node_i.Point, node_j.Point),
			Objects: NewList[ObjectPos](0),
			Origin:  e.ID,
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, err
		}
	}
	for _, o := range objects {
		if err := g.InsertObject(NewObject(o)); err != nil {
			return nil, err
		}
	}
	slog.Debug("built graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "objects", g.ObjectCount())
	return g, nil
}

func NewObject(record structs.ObjectRecord) *Object {
	return &Object{
		ID:     record.ID,
		EdgeID: record.EdgeID,
		Dist:   record.Dist,
		Attrs:  record.Attrs,
		Action: record.Action,
	}
}
