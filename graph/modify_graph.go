package graph

import (
	"errors"
	"fmt"

	. "github.com/ttpr0/go-netvoronoi/util"
)

var ErrSubdivided = errors.New("edge is subdivided")

//*******************************************
// modification methods
//*******************************************

// Attaches a new object to its original edge.
//
// The edge must not be subdivided, call Clean first.
func (self *Graph) InsertObject(obj *Object) error {
	if self.objects.ContainsKey(obj.ID) {
		return fmt.Errorf("%w: %d", ErrDuplicateObj, obj.ID)
	}
	if obj.Dist < 0 || obj.Dist > 1 {
		return fmt.Errorf("object %d: distance %g outside [0, 1]", obj.ID, obj.Dist)
	}
	edge, err := self._AttachableEdge(obj.EdgeID)
	if err != nil {
		return err
	}
	_InsertSorted(&edge.Objects, ObjectPos{Object: obj, Pos: obj.Dist})
	self.objects[obj.ID] = obj
	return nil
}

// Detaches the object from its edge and removes it from the object index.
func (self *Graph) RemoveObject(id int32) error {
	obj, err := self.Object(id)
	if err != nil {
		return err
	}
	edge, err := self._AttachableEdge(obj.EdgeID)
	if err != nil {
		return err
	}
	edge.Objects.RemoveWhere(func(pos ObjectPos) bool { return pos.Object.ID == id })
	self.objects.Delete(id)
	return nil
}

func (self *Graph) _AttachableEdge(orig int32) (*Edge, error) {
	if self.removed_edges.ContainsKey(orig) {
		return nil, fmt.Errorf("%w: %d", ErrSubdivided, orig)
	}
	edge, ok := self.edges[RealEdge(orig)]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEdgeNotFound, orig)
	}
	return edge, nil
}

// Inserts keeping objects ordered by position, ties by id.
func _InsertSorted(objects *List[ObjectPos], item ObjectPos) {
	l := *objects
	index := len(l)
	for i, other := range l {
		if _LessPos(item, other) {
			index = i
			break
		}
	}
	l = append(l, ObjectPos{})
	copy(l[index+1:], l[index:])
	l[index] = item
	*objects = l
}

func _LessPos(a, b ObjectPos) bool {
	if a.Pos != b.Pos {
		return a.Pos < b.Pos
	}
	return a.Object.ID < b.Object.ID
}
