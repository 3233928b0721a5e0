package model

import (
	"fmt"
	"slices"
)

// WorldConfiguration is the aggregate root of seeded reference data.
// It is mutated only during seeding; after Seal every mutator fails
// with ErrConfigurationSealed.
type WorldConfiguration struct {
	catalog *AttributeCatalog

	monsters     map[int32]*MonsterTemplate
	monsterOrder []int32

	maps     map[int16]*MapDefinition
	mapOrder []int16
	seeded   map[int16]struct{}

	sealed bool
}

// NewWorldConfiguration creates an empty aggregate bound to catalog.
func NewWorldConfiguration(catalog *AttributeCatalog) *WorldConfiguration {
	return &WorldConfiguration{
		catalog:  catalog,
		monsters: make(map[int32]*MonsterTemplate, 256),
		maps:     make(map[int16]*MapDefinition, 64),
		seeded:   make(map[int16]struct{}, 64),
	}
}

// Catalog returns the attribute catalog.
func (w *WorldConfiguration) Catalog() *AttributeCatalog {
	return w.catalog
}

// RegisterMonster adds t under t.ID. Ids are unique across the whole world.
func (w *WorldConfiguration) RegisterMonster(t *MonsterTemplate) error {
	if w.sealed {
		return ErrConfigurationSealed
	}
	if _, ok := w.monsters[t.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateMonster, t.ID)
	}
	w.monsters[t.ID] = t
	w.monsterOrder = append(w.monsterOrder, t.ID)
	return nil
}

// Monster returns the template registered under id.
func (w *WorldConfiguration) Monster(id int32) (*MonsterTemplate, bool) {
	t, ok := w.monsters[id]
	return t, ok
}

// Monsters returns templates in registration order.
func (w *WorldConfiguration) Monsters() []*MonsterTemplate {
	out := make([]*MonsterTemplate, 0, len(w.monsterOrder))
	for _, id := range w.monsterOrder {
		out = append(out, w.monsters[id])
	}
	return out
}

// MonsterCount returns the number of registered templates.
func (w *WorldConfiguration) MonsterCount() int {
	return len(w.monsters)
}

// RegisterMap adds a seeded map definition.
func (w *WorldConfiguration) RegisterMap(m *MapDefinition) error {
	if w.sealed {
		return ErrConfigurationSealed
	}
	if _, ok := w.maps[m.Number]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateMap, m.Number)
	}
	w.maps[m.Number] = m
	w.mapOrder = append(w.mapOrder, m.Number)
	return nil
}

// Map returns the map registered under number.
func (w *WorldConfiguration) Map(number int16) (*MapDefinition, bool) {
	m, ok := w.maps[number]
	return m, ok
}

// Maps returns maps sorted by number.
func (w *WorldConfiguration) Maps() []*MapDefinition {
	numbers := slices.Clone(w.mapOrder)
	slices.Sort(numbers)
	out := make([]*MapDefinition, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, w.maps[n])
	}
	return out
}

// MarkSeeded records that a map finished seeding.
func (w *WorldConfiguration) MarkSeeded(number int16) error {
	if w.sealed {
		return ErrConfigurationSealed
	}
	w.seeded[number] = struct{}{}
	return nil
}

// IsSeeded reports whether a map already finished seeding.
func (w *WorldConfiguration) IsSeeded(number int16) bool {
	_, ok := w.seeded[number]
	return ok
}

// Seal forbids further mutation.
func (w *WorldConfiguration) Seal() {
	w.sealed = true
}

// Sealed reports whether Seal was called.
func (w *WorldConfiguration) Sealed() bool {
	return w.sealed
}
