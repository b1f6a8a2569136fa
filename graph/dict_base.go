package graph

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	. "github.com/ttpr0/go-netvoronoi/util"
)

var (
	ErrNodeNotFound   = errors.New("node not found")
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrObjectNotFound = errors.New("object not found")
	ErrDuplicateNode  = errors.New("node already exists")
	ErrDuplicateEdge  = errors.New("edge already exists")
	ErrDuplicateObj   = errors.New("object already exists")
)

//*******************************************
// dictionary graph
//******************************************

// Undirected network graph stored in dictionaries.
//
// Objects can temporarily be materialized as nodes by subdividing their edges,
// Clean reverts all subdivisions.
type Graph struct {
	nodes      Dict[NodeID, Node]
	edges      Dict[EdgeID, *Edge]
	adjacency  Dict[NodeID, List[EdgeID]]
	edge_index Dict[_NodePair, EdgeID]
	objects    Dict[int32, *Object]

	// original edge id -> mini-edges ordered from NodeI to NodeJ
	map_new_edge Dict[int32, List[EdgeID]]
	// original edge id -> object nodes ordered from NodeI to NodeJ
	map_new_node Dict[int32, List[NodeID]]
	// original edges replaced by a chain of mini-edges
	removed_edges Dict[int32, *Edge]
}

func NewGraph() *Graph {
	return &Graph{
		nodes:      NewDict[NodeID, Node](10),
		edges:      NewDict[EdgeID, *Edge](10),
		adjacency:  NewDict[NodeID, List[EdgeID]](10),
		edge_index: NewDict[_NodePair, EdgeID](10),
		objects:    NewDict[int32, *Object](10),

		map_new_edge:  NewDict[int32, List[EdgeID]](10),
		map_new_node:  NewDict[int32, List[NodeID]](10),
		removed_edges: NewDict[int32, *Edge](10),
	}
}

func (self *Graph) NodeCount() int {
	return self.nodes.Length()
}
func (self *Graph) EdgeCount() int {
	return self.edges.Length()
}
func (self *Graph) IsNode(node NodeID) bool {
	return self.nodes.ContainsKey(node)
}
func (self *Graph) GetNode(node NodeID) (Node, error) {
	n, ok := self.nodes[node]
	if !ok {
		return Node{}, fmt.Errorf("%w: %v", ErrNodeNotFound, node)
	}
	return n, nil
}
func (self *Graph) IsEdge(edge EdgeID) bool {
	return self.edges.ContainsKey(edge)
}

func (self *Graph) AddNode(id NodeID, point orb.Point) error {
	if self.nodes.ContainsKey(id) {
		return fmt.Errorf("%w: %v", ErrDuplicateNode, id)
	}
	self.nodes[id] = Node{ID: id, Point: point}
	self.adjacency[id] = NewList[EdgeID](2)
	return nil
}

// Adds an undirected edge, at most one edge may connect a pair of nodes.
func (self *Graph) AddEdge(edge *Edge) error {
	if edge.Length < 0 {
		panic(fmt.Sprintf("negative length on edge %v", edge.ID))
	}
	if self.edges.ContainsKey(edge.ID) {
		return fmt.Errorf("%w: %v", ErrDuplicateEdge, edge.ID)
	}
	if !self.nodes.ContainsKey(edge.NodeI) {
		return fmt.Errorf("%w: %v", ErrNodeNotFound, edge.NodeI)
	}
	if !self.nodes.ContainsKey(edge.NodeJ) {
		return fmt.Errorf("%w: %v", ErrNodeNotFound, edge.NodeJ)
	}
	pair := _MakeNodePair(edge.NodeI, edge.NodeJ)
	if self.edge_index.ContainsKey(pair) {
		return fmt.Errorf("%w: between %v and %v", ErrDuplicateEdge, edge.NodeI, edge.NodeJ)
	}
	self.edges[edge.ID] = edge
	self.edge_index[pair] = edge.ID
	refs := self.adjacency[edge.NodeI]
	refs.Add(edge.ID)
	self.adjacency[edge.NodeI] = refs
	if edge.NodeJ != edge.NodeI {
		refs = self.adjacency[edge.NodeJ]
		refs.Add(edge.ID)
		self.adjacency[edge.NodeJ] = refs
	}
	return nil
}

// Removes the node and all its edges.
func (self *Graph) RemoveNode(id NodeID) error {
	if !self.nodes.ContainsKey(id) {
		return fmt.Errorf("%w: %v", ErrNodeNotFound, id)
	}
	for _, ref := range self.adjacency[id].Copy() {
		if err := self.RemoveEdge(ref); err != nil {
			return err
		}
	}
	self.adjacency.Delete(id)
	self.nodes.Delete(id)
	return nil
}

// Removes the edge from the adjacency of both end nodes.
func (self *Graph) RemoveEdge(id EdgeID) error {
	edge, ok := self.edges[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrEdgeNotFound, id)
	}
	for _, node := range [2]NodeID{edge.NodeI, edge.NodeJ} {
		refs := self.adjacency[node]
		refs.RemoveWhere(func(ref EdgeID) bool { return ref == id })
		self.adjacency[node] = refs
	}
	self.edge_index.Delete(_MakeNodePair(edge.NodeI, edge.NodeJ))
	self.edges.Delete(id)
	return nil
}
