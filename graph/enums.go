package graph

import "fmt"

//*******************************************
// enums
//*******************************************

type NodeKind byte

const (
	// zero value, marks an unset/unclaimed node id
	NO_NODE     NodeKind = 0
	REAL_NODE   NodeKind = 1
	OBJECT_NODE NodeKind = 2
)

func (self NodeKind) String() string {
	switch self {
	case NO_NODE:
		return "none"
	case REAL_NODE:
		return "node"
	case OBJECT_NODE:
		return "object"
	default:
		panic("unknown node kind")
	}
}

type EdgeKind byte

const (
	REAL_EDGE EdgeKind = 0
	// mini-edge ending at the object node
	BEFORE_OBJECT EdgeKind = 1
	// mini-edge starting at the object node
	AFTER_OBJECT EdgeKind = 2
)

func (self EdgeKind) String() string {
	switch self {
	case REAL_EDGE:
		return "edge"
	case BEFORE_OBJECT:
		return "before"
	case AFTER_OBJECT:
		return "after"
	default:
		panic("unknown edge kind")
	}
}

//*******************************************
// ids
//*******************************************

// Tagged node id, either a real network node or an object materialized as a node.
type NodeID struct {
	ID   int32
	Kind NodeKind
}

func RealNode(id int32) NodeID {
	return NodeID{ID: id, Kind: REAL_NODE}
}
func ObjectNode(object_id int32) NodeID {
	return NodeID{ID: object_id, Kind: OBJECT_NODE}
}

func (self NodeID) IsValid() bool {
	return self.Kind != NO_NODE
}
func (self NodeID) IsObject() bool {
	return self.Kind == OBJECT_NODE
}
func (self NodeID) String() string {
	return fmt.Sprintf("%v(%d)", self.Kind, self.ID)
}

// Tagged edge id, either an original edge or a mini-edge flanking an object node.
type EdgeID struct {
	ID   int32
	Kind EdgeKind
}

func RealEdge(id int32) EdgeID {
	return EdgeID{ID: id, Kind: REAL_EDGE}
}
func BeforeObject(object_id int32) EdgeID {
	return EdgeID{ID: object_id, Kind: BEFORE_OBJECT}
}
func AfterObject(object_id int32) EdgeID {
	return EdgeID{ID: object_id, Kind: AFTER_OBJECT}
}

func (self EdgeID) IsOriginal() bool {
	return self.Kind == REAL_EDGE
}
func (self EdgeID) String() string {
	return fmt.Sprintf("%v(%d)", self.Kind, self.ID)
}
