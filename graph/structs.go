package graph

import (
	"github.com/paulmach/orb"
	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
)

//*******************************************
// graph structs
//*******************************************

type Node struct {
	ID    NodeID
	Point orb.Point
}

// Undirected edge, positions of attached objects are measured from NodeI.
type Edge struct {
	ID      EdgeID
	NodeI   NodeID
	NodeJ   NodeID
	Length  float64
	Objects List[ObjectPos]
	// id of the original edge this edge was cut from (own id for original edges)
	Origin int32
}

// Returns the node on the other side of the edge.
func (self *Edge) Other(node NodeID) NodeID {
	if self.NodeI == node {
		return self.NodeJ
	}
	return self.NodeI
}

type Object struct {
	ID     int32
	EdgeID int32
	// fraction of the original edge measured from its first node
	Dist   float64
	Attrs  []float64
	Action structs.Action
}

// Object on an edge at the local fraction Pos.
type ObjectPos struct {
	Object *Object
	Pos    float64
}

//*******************************************
// node pair
//*******************************************

type _NodePair struct {
	A NodeID
	B NodeID
}

func _MakeNodePair(a, b NodeID) _NodePair {
	if CompareNodes(b, a) < 0 {
		a, b = b, a
	}
	return _NodePair{A: a, B: b}
}

// Orders node ids by kind, then by id.
func CompareNodes(a, b NodeID) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	return int(a.ID) - int(b.ID)
}
