package main

import (
	"fmt"

	"github.com/ttpr0/go-netvoronoi/engine"
	"github.com/ttpr0/go-netvoronoi/graph"
	"github.com/ttpr0/go-netvoronoi/parser"
	"github.com/ttpr0/go-netvoronoi/query"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// dataset
//**********************************************************

// Reads the network from the OSM extract if given, else from the node and edge files.
func LoadNetwork(config Config) (List[structs.NodeRecord], List[structs.EdgeRecord], error) {
	source := config.Source
	if source.OSM != "" {
		decoder, err := parser.DecoderFromString(source.Network)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("parsing osm network", "file", source.OSM, "network", source.Network)
		return parser.ParseOSMNetwork(source.OSM, decoder)
	}
	reader := parser.NewReader(config.ReaderOptions())
	nodes, err := reader.ReadNodes(source.Nodes)
	if err != nil {
		return nil, nil, err
	}
	edges, err := reader.ReadEdges(source.Edges)
	if err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

func LoadGraph(config Config) (*graph.Graph, error) {
	nodes, edges, err := LoadNetwork(config)
	if err != nil {
		return nil, err
	}
	reader := parser.NewReader(config.ReaderOptions())
	objects, err := reader.ReadObjects(config.Source.Objects)
	if err != nil {
		return nil, err
	}
	g, err := graph.BuildGraph(nodes, edges, objects)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	slog.Info("loaded graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "objects", g.ObjectCount())
	return g, nil
}

// Loads graph and queries and constructs the initial voronoi.
func BuildManager(config Config) (*engine.VoronoiManager, error) {
	g, err := LoadGraph(config)
	if err != nil {
		return nil, err
	}
	reader := parser.NewReader(config.ReaderOptions())
	records, err := reader.ReadQueries(config.Source.Queries)
	if err != nil {
		return nil, err
	}
	queries := query.NewQueries(records)
	slog.Info("loaded queries", "queries", records.Length(), "groups", queries.Length())

	manager, err := engine.NewVoronoiManager(g, queries, config.VoronoiOptions())
	if err != nil {
		return nil, err
	}
	manager.Construct()
	return manager, nil
}

func WriteResult(config Config, manager *engine.VoronoiManager) error {
	if config.Output == "" {
		return nil
	}
	if err := manager.Result().WriteToFile(config.Output); err != nil {
		return err
	}
	slog.Info("written result", "file", config.Output)
	return nil
}
