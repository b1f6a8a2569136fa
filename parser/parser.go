package parser

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// osm network
//*******************************************

// Builds node and edge records from the highways of an osm pbf extract.
//
// Ways are split at junctions, only junction and end nodes become network nodes.
func ParseOSMNetwork(pbf_file string, decoder IOSMDecoder) (List[structs.NodeRecord], List[structs.EdgeRecord], error) {
	file, err := os.Open(pbf_file)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	osm_nodes := NewDict[int64, TempNode](1000)
	if err := _Scan(file, true, func(scanner *osmpbf.Scanner) { _InitWayHandler(scanner, decoder, osm_nodes) }); err != nil {
		return nil, nil, err
	}
	index_mapping := NewDict[int64, int32](1000)
	nodes := NewList[structs.NodeRecord](1000)
	if err := _Scan(file, false, func(scanner *osmpbf.Scanner) { _NodeHandler(scanner, osm_nodes, &nodes, index_mapping) }); err != nil {
		return nil, nil, err
	}
	edges := NewList[structs.EdgeRecord](1000)
	if err := _Scan(file, true, func(scanner *osmpbf.Scanner) { _WayHandler(scanner, decoder, osm_nodes, index_mapping, &edges) }); err != nil {
		return nil, nil, err
	}
	slog.Info("parsed osm network", "nodes", nodes.Length(), "edges", edges.Length())
	return nodes, edges, nil
}

func _Scan(file *os.File, ways bool, handler func(scanner *osmpbf.Scanner)) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	defer scanner.Close()
	scanner.SkipRelations = true
	if ways {
		scanner.SkipNodes = true
	} else {
		scanner.SkipWays = true
	}
	handler(scanner)
	return scanner.Err()
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode]) {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			refs := _WayRefs(object)
			if len(refs) < 2 {
				continue
			}
			_CountRefs(refs, osm_nodes)
		default:
			continue
		}
	}
}

func _NodeHandler(scanner *osmpbf.Scanner, osm_nodes Dict[int64, TempNode], nodes *List[structs.NodeRecord], index_mapping Dict[int64, int32]) {
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			on := osm_nodes.Get(id)
			on.Point = orb.Point{object.Lon, object.Lat}
			osm_nodes.Set(id, on)
			if on.Count > 1 {
				index := int32(nodes.Length())
				nodes.Add(structs.NodeRecord{ID: index, Lng: object.Lon, Lat: object.Lat})
				index_mapping.Set(id, index)
			}
		default:
			continue
		}
	}
}

func _WayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, TempNode], index_mapping Dict[int64, int32], edges *List[structs.EdgeRecord]) {
	seen := NewDict[Tuple[int32, int32], bool](1000)
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			for _, pair := range _SplitWay(_WayRefs(object), osm_nodes) {
				node_a, ok_a := index_mapping[pair.A]
				node_b, ok_b := index_mapping[pair.B]
				if !ok_a || !ok_b || node_a == node_b {
					continue
				}
				key := MakeTuple(min(node_a, node_b), max(node_a, node_b))
				// network allows a single edge per node pair
				if seen[key] {
					continue
				}
				seen[key] = true
				edges.Add(structs.EdgeRecord{ID: int32(edges.Length()), NodeI: node_a, NodeJ: node_b})
			}
		default:
			continue
		}
	}
}

func _WayRefs(way *osm.Way) []int64 {
	ids := way.Nodes.NodeIDs()
	refs := make([]int64, len(ids))
	for i, id := range ids {
		refs[i] = id.FeatureID().Ref()
	}
	return refs
}

// Counts way references, both ends of a way are counted an extra time.
func _CountRefs(refs []int64, osm_nodes Dict[int64, TempNode]) {
	for _, ref := range refs {
		node := osm_nodes[ref]
		node.Count += 1
		osm_nodes[ref] = node
	}
	for _, ref := range [2]int64{refs[0], refs[len(refs)-1]} {
		node := osm_nodes[ref]
		node.Count += 1
		osm_nodes[ref] = node
	}
}

// Splits a way into segments between consecutive junction nodes.
func _SplitWay(refs []int64, osm_nodes Dict[int64, TempNode]) List[Tuple[int64, int64]] {
	segments := NewList[Tuple[int64, int64]](2)
	if len(refs) < 2 {
		return segments
	}
	start := refs[0]
	for _, curr := range refs[1:] {
		if osm_nodes[curr].Count > 1 && curr != start {
			segments.Add(MakeTuple(start, curr))
			start = curr
		}
	}
	return segments
}

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
}
