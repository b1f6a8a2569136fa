package parser

import (
	"github.com/paulmach/orb"
)

//*******************************************
// parser structs
//*******************************************

type TempNode struct {
	Point orb.Point
	// number of ways referencing the node, ends of ways count twice
	Count int32
}
