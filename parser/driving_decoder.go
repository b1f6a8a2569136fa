package parser

import (
	"fmt"

	. "github.com/ttpr0/go-netvoronoi/util"
)

type DrivingDecoder struct {
}

var driving_types = Dict[string, bool]{"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true, "secondary": true, "secondary_link": true, "tertiary": true, "tertiary_link": true,
	"residential": true, "living_street": true, "service": true, "track": true, "unclassified": true, "road": true}

func (self *DrivingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !driving_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	return true
}

type WalkingDecoder struct {
}

var walking_types = Dict[string, bool]{"primary": true, "primary_link": true, "secondary": true, "secondary_link": true,
	"tertiary": true, "tertiary_link": true, "residential": true, "living_street": true, "service": true, "track": true,
	"unclassified": true, "road": true, "footway": true, "path": true, "pedestrian": true, "steps": true}

func (self *WalkingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if tags.Get("foot") == "no" {
		return false
	}
	return walking_types.ContainsKey(tags.Get("highway"))
}

func DecoderFromString(s string) (IOSMDecoder, error) {
	switch s {
	case "", "driving":
		return &DrivingDecoder{}, nil
	case "walking":
		return &WalkingDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown network type %q", s)
	}
}
