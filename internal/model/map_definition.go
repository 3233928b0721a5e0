package model

// MapDefinition holds a seeded map: identity, entry requirements and spawn areas
// in declaration order.
type MapDefinition struct {
	Number        int16
	Name          string
	Discriminator int32
	ExpMultiplier float64

	// Requirements gate entry to the map (e.g. CanFly for sky maps).
	Requirements AttributeSet

	Spawns []*SpawnArea
}

// SpawnsOf returns the spawn areas referencing monsterID.
func (m *MapDefinition) SpawnsOf(monsterID int32) []*SpawnArea {
	var out []*SpawnArea
	for _, s := range m.Spawns {
		if s.MonsterID == monsterID {
			out = append(out, s)
		}
	}
	return out
}

// InstanceCount sums the quantities of all spawn areas.
func (m *MapDefinition) InstanceCount() int {
	n := 0
	for _, s := range m.Spawns {
		n += int(s.Quantity)
	}
	return n
}
