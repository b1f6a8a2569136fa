package structs

import "fmt"

//*******************************************
// dominance strength
//*******************************************

// Number of attribute dimensions by which one object loses to another.
type K uint8

//*******************************************
// range
//*******************************************

// Half-open interval [Start, End) on an edge owned by an object.
type Range struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	ObjectID int32   `json:"object"`
}

func (self Range) Length() float64 {
	return self.End - self.Start
}
func (self Range) IsEmpty() bool {
	return self.End <= self.Start
}
func (self Range) Contains(x float64) bool {
	return x >= self.Start && x < self.End
}
func (self Range) String() string {
	return fmt.Sprintf("[%g, %g) -> %d", self.Start, self.End, self.ObjectID)
}

//*******************************************
// action
//*******************************************

type Action byte

const (
	DELETION  Action = 0
	INSERTION Action = 1
)

func (self Action) String() string {
	switch self {
	case INSERTION:
		return "insertion"
	case DELETION:
		return "deletion"
	default:
		panic("unknown action")
	}
}

//*******************************************
// records
//*******************************************

type NodeRecord struct {
	ID  int32   `csv:"0"`
	Lng float64 `csv:"1"`
	Lat float64 `csv:"2"`
}

type EdgeRecord struct {
	ID    int32 `csv:"0"`
	NodeI int32 `csv:"1"`
	NodeJ int32 `csv:"2"`
}

// Object positioned at fraction Dist along edge EdgeID (measured from the edges first node).
type ObjectRecord struct {
	Action Action
	ID     int32
	EdgeID int32
	Dist   float64
	Attrs  []float64
}

// Query for dominance level K over a subset of attribute dimensions.
type QueryRecord struct {
	ID         int
	K          K
	Dimensions []int
}
