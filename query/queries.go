package query

import (
	"fmt"

	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// query group
//*******************************************

// Queries over the same dimensions ordered by ascending k.
type Group struct {
	Dimensions []int
	Queries    List[structs.QueryRecord]
}

func (self Group) Copy() Group {
	return Group{
		Dimensions: slices.Clone(self.Dimensions),
		Queries:    self.Queries.Copy(),
	}
}

func (self Group) Length() int {
	return self.Queries.Length()
}

// Removes and returns the query with the smallest k.
func (self *Group) PopFirst() Optional[structs.QueryRecord] {
	if self.Queries.Length() == 0 {
		return None[structs.QueryRecord]()
	}
	first := self.Queries[0]
	self.Queries.Remove(0)
	return Some(first)
}

// Drops all queries with a k smaller than k.
func (self *Group) RemoveLessK(k structs.K) {
	self.Queries.RemoveWhere(func(q structs.QueryRecord) bool { return q.K < k })
}

// Distinct ks of the group in ascending order.
func (self Group) Ks() List[structs.K] {
	ks := NewList[structs.K](self.Queries.Length())
	for _, q := range self.Queries {
		if ks.Length() > 0 && ks[ks.Length()-1] == q.K {
			continue
		}
		ks.Add(q.K)
	}
	return ks
}

//*******************************************
// queries
//*******************************************

type Queries struct {
	groups List[Group]
}

// Groups queries by their sorted dimension set, groups are ordered by dimensions.
func NewQueries(records List[structs.QueryRecord]) Queries {
	index := NewDict[string, int](4)
	groups := NewList[Group](4)
	for _, q := range records {
		dims := slices.Clone(q.Dimensions)
		slices.Sort(dims)
		q.Dimensions = dims
		key := fmt.Sprint(dims)
		i, ok := index[key]
		if !ok {
			i = groups.Length()
			index[key] = i
			groups.Add(Group{Dimensions: dims, Queries: NewList[structs.QueryRecord](4)})
		}
		groups[i].Queries.Add(q)
	}
	for _, g := range groups {
		slices.SortStableFunc(g.Queries, func(a, b structs.QueryRecord) int {
			return int(a.K) - int(b.K)
		})
	}
	slices.SortFunc(groups, func(a, b Group) int {
		return slices.Compare(a.Dimensions, b.Dimensions)
	})
	return Queries{groups: groups}
}

func (self Queries) Length() int {
	return self.groups.Length()
}

// Copies of all groups, callers may pop from them freely.
func (self Queries) Groups() List[Group] {
	groups := NewList[Group](self.groups.Length())
	for _, g := range self.groups {
		groups.Add(g.Copy())
	}
	return groups
}
