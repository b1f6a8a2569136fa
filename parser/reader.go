package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ttpr0/go-netvoronoi/structs"
	. "github.com/ttpr0/go-netvoronoi/util"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

var ErrBadRecord = errors.New("bad record")

//*******************************************
// dataset reader
//*******************************************

type ReaderOptions struct {
	Delimiter rune
	Header    bool
	// number of attributes per object
	Dims int
}

// Reads delimited node, edge, object and query files.
//
// Bad node and edge rows abort reading, bad object and query rows are logged and skipped.
type Reader struct {
	opts ReaderOptions
}

func NewReader(opts ReaderOptions) *Reader {
	if opts.Delimiter == 0 {
		opts.Delimiter = ' '
	}
	return &Reader{opts: opts}
}

func (self *Reader) _CSVOptions() CSVOptions {
	return CSVOptions{Delimiter: self.opts.Delimiter, Header: self.opts.Header}
}

// Nodes `id lng lat` ordered by id.
func (self *Reader) ReadNodes(file string) (List[structs.NodeRecord], error) {
	nodes := NewList[structs.NodeRecord](100)
	for node, err := range ReadCSVFromFile[structs.NodeRecord](file, self._CSVOptions()) {
		if err != nil {
			return nil, _WrapBadRecord(file, err)
		}
		nodes.Add(node)
	}
	slices.SortFunc(nodes, func(a, b structs.NodeRecord) int {
		return int(a.ID) - int(b.ID)
	})
	return nodes, nil
}

// Edges `id ni nj`.
func (self *Reader) ReadEdges(file string) (List[structs.EdgeRecord], error) {
	edges := NewList[structs.EdgeRecord](100)
	for edge, err := range ReadCSVFromFile[structs.EdgeRecord](file, self._CSVOptions()) {
		if err != nil {
			return nil, _WrapBadRecord(file, err)
		}
		edges.Add(edge)
	}
	return edges, nil
}

// Objects `action id edge_id dist attr_1 .. attr_d`, action 1 marks an insertion.
func (self *Reader) ReadObjects(file string) (List[structs.ObjectRecord], error) {
	objects := NewList[structs.ObjectRecord](100)
	row := 0
	for fields, err := range ReadRecordsFromFile(file, self._CSVOptions()) {
		if err != nil {
			return nil, err
		}
		row += 1
		object, err := ParseObject(fields, self.opts.Dims)
		if err != nil {
			slog.Warn("skipping object", "file", file, "row", row, "err", err)
			continue
		}
		objects.Add(object)
	}
	return objects, nil
}

// Queries `k dim_1 .. dim_n`, dimensions are sorted and ids assigned in file order.
func (self *Reader) ReadQueries(file string) (List[structs.QueryRecord], error) {
	queries := NewList[structs.QueryRecord](10)
	row := 0
	for fields, err := range ReadRecordsFromFile(file, self._CSVOptions()) {
		if err != nil {
			return nil, err
		}
		row += 1
		query, err := ParseQuery(fields)
		if err != nil {
			slog.Warn("skipping query", "file", file, "row", row, "err", err)
			continue
		}
		query.ID = row
		queries.Add(query)
	}
	return queries, nil
}

func ParseObject(fields []string, dims int) (structs.ObjectRecord, error) {
	var object structs.ObjectRecord
	if len(fields) < 4+dims {
		return object, fmt.Errorf("%w: expected %d fields, got %d", ErrBadRecord, 4+dims, len(fields))
	}
	action, err := strconv.Atoi(fields[0])
	if err != nil {
		return object, fmt.Errorf("%w: action: %v", ErrBadRecord, err)
	}
	if action == 1 {
		object.Action = structs.INSERTION
	} else {
		object.Action = structs.DELETION
	}
	id, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return object, fmt.Errorf("%w: id: %v", ErrBadRecord, err)
	}
	object.ID = int32(id)
	edge_id, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return object, fmt.Errorf("%w: edge id: %v", ErrBadRecord, err)
	}
	object.EdgeID = int32(edge_id)
	object.Dist, err = strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return object, fmt.Errorf("%w: dist: %v", ErrBadRecord, err)
	}
	if object.Dist < 0 || object.Dist > 1 {
		return object, fmt.Errorf("%w: dist %g outside [0, 1]", ErrBadRecord, object.Dist)
	}
	object.Attrs = make([]float64, dims)
	for i := 0; i < dims; i++ {
		object.Attrs[i], err = strconv.ParseFloat(fields[4+i], 64)
		if err != nil {
			return object, fmt.Errorf("%w: attribute %d: %v", ErrBadRecord, i, err)
		}
	}
	return object, nil
}

func ParseQuery(fields []string) (structs.QueryRecord, error) {
	var query structs.QueryRecord
	if len(fields) == 0 {
		return query, fmt.Errorf("%w: empty query", ErrBadRecord)
	}
	k, err := strconv.ParseUint(fields[0], 10, 8)
	if err != nil {
		return query, fmt.Errorf("%w: k: %v", ErrBadRecord, err)
	}
	query.K = structs.K(k)
	query.Dimensions = make([]int, 0, len(fields)-1)
	for _, field := range fields[1:] {
		dim, err := strconv.Atoi(field)
		if err != nil {
			return query, fmt.Errorf("%w: dimension: %v", ErrBadRecord, err)
		}
		query.Dimensions = append(query.Dimensions, dim)
	}
	slices.Sort(query.Dimensions)
	return query, nil
}

func _WrapBadRecord(file string, err error) error {
	if errors.Is(err, ErrMalformedRow) {
		return fmt.Errorf("%s: %w: %w", file, ErrBadRecord, err)
	}
	return err
}
