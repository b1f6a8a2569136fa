package engine

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-netvoronoi/algorithm"
	"github.com/ttpr0/go-netvoronoi/graph"
	"github.com/ttpr0/go-netvoronoi/query"
	"github.com/ttpr0/go-netvoronoi/result"
	"github.com/ttpr0/go-netvoronoi/structs"
	"github.com/ttpr0/go-netvoronoi/voronoi"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slog"
)

var ErrAttributeCount = errors.New("wrong number of attributes")

//*******************************************
// voronoi manager
//*******************************************

// Outcome of a batch, failed items are logged and skipped.
type BatchStats struct {
	Processed int
	Skipped   int
}

func (self *BatchStats) _Record(err error) {
	if err != nil {
		self.Skipped += 1
	} else {
		self.Processed += 1
	}
}

// Maintains the per-k scopes of all objects of a graph.
type VoronoiManager struct {
	g       *graph.Graph
	queries query.Queries
	result  *result.ResultVoronoi
	opts    voronoi.Options
}

func NewVoronoiManager(g *graph.Graph, queries query.Queries, opts voronoi.Options) (*VoronoiManager, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &VoronoiManager{
		g:       g,
		queries: queries,
		result:  result.FromEdges(g.MapEdges()),
		opts:    opts,
	}, nil
}

func (self *VoronoiManager) Graph() *graph.Graph {
	return self.g
}
func (self *VoronoiManager) Result() *result.ResultVoronoi {
	return self.result
}

// Computes the scope of every object for every query group.
func (self *VoronoiManager) Construct() BatchStats {
	stats := BatchStats{}
	for _, object := range self.g.AllObjects() {
		err := self._CheckAttributes(object)
		if err == nil {
			err = self._ComputeScopes(object.ID)
		}
		if err != nil {
			slog.Warn("skipping object", "object", object.ID, "err", err)
		}
		stats._Record(err)
	}
	slog.Info("constructed voronoi", "processed", stats.Processed, "skipped", stats.Skipped)
	return stats
}

// Inserts or deletes objects according to their action.
func (self *VoronoiManager) Apply(records List[structs.ObjectRecord]) BatchStats {
	stats := BatchStats{}
	for _, record := range records {
		var err error
		switch record.Action {
		case structs.INSERTION:
			err = self.Insert(graph.NewObject(record))
		case structs.DELETION:
			err = self.Delete(record.ID)
		}
		if err != nil {
			slog.Warn("skipping object", "object", record.ID, "action", record.Action, "err", err)
		}
		stats._Record(err)
	}
	slog.Info("applied objects", "processed", stats.Processed, "skipped", stats.Skipped)
	return stats
}

// Adds an object and recomputes the scopes of the objects it dominates.
//
// Scopes of a dominated object only change at levels from the dominance k upwards.
// If dominance or the object's own scope fail the object is detached again.
func (self *VoronoiManager) Insert(object *graph.Object) error {
	if err := self._CheckAttributes(object); err != nil {
		return err
	}
	if err := self.g.InsertObject(object); err != nil {
		return err
	}
	dom, err := algorithm.ComputeDominance(self.g, object.ID, self.opts.MaxDist)
	if err == nil {
		err = self._ComputeScopes(object.ID)
	}
	if err != nil {
		self.result.RemoveAll(object.ID)
		if rm_err := self.g.RemoveObject(object.ID); rm_err != nil {
			slog.Error("failed to detach object", "object", object.ID, "err", rm_err)
		}
		return err
	}
	dominate := dom.MapDominateObjects()
	for _, id := range SortedKeys(dominate) {
		k := dominate[id]
		for _, group := range self.queries.Groups() {
			group.RemoveLessK(k)
			if err := self._ComputeScope(id, group.Ks(), true); err != nil {
				return fmt.Errorf("dominated object %d: %w", id, err)
			}
		}
	}
	slog.Debug("inserted object", "object", object.ID, "recomputed", dominate.Length())
	return nil
}

// Removes an object and its ranges, then recomputes the objects it dominated.
func (self *VoronoiManager) Delete(object_id int32) error {
	dom, err := algorithm.ComputeDominance(self.g, object_id, self.opts.MaxDist)
	if err != nil {
		return err
	}
	if err := self.g.RemoveObject(object_id); err != nil {
		return err
	}
	self.result.RemoveAll(object_id)
	dominate := dom.MapDominateObjects()
	for _, id := range SortedKeys(dominate) {
		self.result.RemoveAll(id)
		if err := self._ComputeScopes(id); err != nil {
			return fmt.Errorf("dominated object %d: %w", id, err)
		}
	}
	slog.Debug("deleted object", "object", object_id, "recomputed", dominate.Length())
	return nil
}

func (self *VoronoiManager) _CheckAttributes(object *graph.Object) error {
	if len(object.Attrs) != int(self.opts.MaxDim) {
		return fmt.Errorf("%w: object %d has %d attributes, expected %d", ErrAttributeCount, object.ID, len(object.Attrs), self.opts.MaxDim)
	}
	return nil
}

func (self *VoronoiManager) _ComputeScopes(object_id int32) error {
	for _, group := range self.queries.Groups() {
		if err := self._ComputeScope(object_id, group.Ks(), false); err != nil {
			return err
		}
	}
	return nil
}

// Runs the initial scope at the first k and continues for the others.
// With replace set the previous ranges of each level are removed first.
func (self *VoronoiManager) _ComputeScope(object_id int32, ks List[structs.K], replace bool) error {
	if ks.Length() == 0 {
		return nil
	}
	defer self.g.Clean()
	save := func(v *voronoi.Voronoi, k structs.K) error {
		if replace {
			self.result.Remove(object_id, k)
		}
		return v.SaveToResult(self.result, k)
	}
	v, err := voronoi.InitialVoronoi(self.g, object_id, ks[0], self.opts)
	if err != nil {
		return err
	}
	if err := save(v, ks[0]); err != nil {
		return err
	}
	for _, k := range ks[1:] {
		if err := v.ContinueVoronoi(k); err != nil {
			return err
		}
		if err := save(v, k); err != nil {
			return err
		}
	}
	return nil
}
