package model

import "fmt"

// Direction is the facing of spawned instances. DirectionUndefined means the
// simulation picks a random facing per instance.
type Direction uint8

const (
	DirectionUndefined Direction = iota
	DirectionWest
	DirectionSouthWest
	DirectionSouth
	DirectionSouthEast
	DirectionEast
	DirectionNorthEast
	DirectionNorth
	DirectionNorthWest
)

var directionNames = [...]string{
	DirectionUndefined: "undefined",
	DirectionWest:      "west",
	DirectionSouthWest: "south_west",
	DirectionSouth:     "south",
	DirectionSouthEast: "south_east",
	DirectionEast:      "east",
	DirectionNorthEast: "north_east",
	DirectionNorth:     "north",
	DirectionNorthWest: "north_west",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// IsRandom reports whether the facing is left to the simulation.
func (d Direction) IsRandom() bool {
	return d == DirectionUndefined
}

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return int(d) < len(directionNames)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("unknown direction %d", uint8(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text means undefined.
func (d *Direction) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = DirectionUndefined
		return nil
	}
	for i, name := range directionNames {
		if name == string(text) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", text)
}
