package model

import "fmt"

// SpawnArea is one placement rule of a map: which monster, how many, where,
// facing which way and under which trigger. Inert data, consumed by the simulation.
type SpawnArea struct {
	MapNumber int16
	MonsterID int32
	Monster   *MonsterTemplate

	Quantity  int16
	Direction Direction
	Trigger   SpawnTrigger
	Area      Rectangle

	// WaveNumber is meaningful only for wave-bound triggers.
	WaveNumber uint8
}

// Validate checks the rectangle, quantity and that the monster reference is bound.
func (s *SpawnArea) Validate() error {
	if s.Quantity < 1 {
		return fmt.Errorf("%w: quantity %d", ErrMalformedSpawn, s.Quantity)
	}
	if err := s.Area.Validate(); err != nil {
		return err
	}
	if !s.Direction.Valid() {
		return fmt.Errorf("%w: direction %d", ErrMalformedSpawn, s.Direction)
	}
	if !s.Trigger.Valid() {
		return fmt.Errorf("%w: trigger %d", ErrMalformedSpawn, s.Trigger)
	}
	if s.Monster == nil || s.Monster.ID != s.MonsterID {
		return fmt.Errorf("%w: monster %d not bound", ErrMalformedSpawn, s.MonsterID)
	}
	return nil
}

// IsFixed reports whether all instances spawn on a single cell.
func (s *SpawnArea) IsFixed() bool {
	return s.Area.IsPoint()
}

func (s *SpawnArea) String() string {
	return fmt.Sprintf("map %d: %dx monster %d at %s (%s, %s)",
		s.MapNumber, s.Quantity, s.MonsterID, s.Area, s.Direction, s.Trigger)
}
