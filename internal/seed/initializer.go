package seed

import (
	"iter"
	"log/slog"

	"github.com/udisondev/worldseed/internal/data"
	"github.com/udisondev/worldseed/internal/entity"
	"github.com/udisondev/worldseed/internal/model"
)

// MapInitializer seeds one map.
//
// CreateMonsters must have run for every initializer whose monsters a map
// references before that map's CreateSpawns is consumed.
type MapInitializer interface {
	MapNumber() int16
	MapName() string

	// CreateMonsters creates the map's monster templates and registers them in world.
	CreateMonsters(t entity.Tracker, world *model.WorldConfiguration) error

	// CreateRequirements binds the map-wide entry requirements onto m.
	CreateRequirements(t entity.Tracker, m *model.MapDefinition) error

	// CreateSpawns returns the map's spawn areas in declaration order. The
	// sequence is lazy and one-shot; the first error ends it.
	CreateSpawns(t entity.Tracker, m *model.MapDefinition, world *model.WorldConfiguration) iter.Seq2[*model.SpawnArea, error]
}

// MapDescriber is implemented by initializers that carry extra map properties.
type MapDescriber interface {
	Describe(m *model.MapDefinition)
}

// ContentInitializer is the MapInitializer for a declarative map file.
type ContentInitializer struct {
	file   *data.MapFile
	binder *Binder
}

// NewContentInitializer creates an initializer for file.
func NewContentInitializer(file *data.MapFile, binder *Binder) *ContentInitializer {
	return &ContentInitializer{file: file, binder: binder}
}

// NewContentInitializers wraps every file, keeping order.
func NewContentInitializers(files []*data.MapFile, binder *Binder) []MapInitializer {
	out := make([]MapInitializer, 0, len(files))
	for _, f := range files {
		out = append(out, NewContentInitializer(f, binder))
	}
	return out
}

func (i *ContentInitializer) MapNumber() int16 { return i.file.Number }
func (i *ContentInitializer) MapName() string  { return i.file.Name }

// File returns the underlying map file.
func (i *ContentInitializer) File() *data.MapFile { return i.file }

// Describe copies discriminator and experience multiplier onto m.
func (i *ContentInitializer) Describe(m *model.MapDefinition) {
	m.Discriminator = i.file.Discriminator
	m.ExpMultiplier = i.file.Experience()
}

// CreateMonsters implements MapInitializer.
func (i *ContentInitializer) CreateMonsters(t entity.Tracker, world *model.WorldConfiguration) error {
	for _, def := range i.file.Monsters {
		if _, exists := world.Monster(def.ID); exists {
			return &MonsterError{Map: i.file.Number, MonsterID: def.ID, Err: model.ErrDuplicateMonster}
		}

		monster := entity.New[model.MonsterTemplate](t)
		monster.ID = def.ID
		monster.Designation = def.Designation
		monster.Kind = def.Kind
		monster.MoveRange = def.MoveRange
		monster.AttackRange = def.AttackRange
		monster.ViewRange = def.ViewRange
		monster.MoveDelay = def.MoveDelay
		monster.AttackDelay = def.AttackDelay
		monster.RespawnDelay = def.RespawnDelay
		monster.AttributeFlags = def.AttributeFlags
		monster.MaxItemDrops = def.MaxItemDrops

		if err := i.binder.Bind(t, &monster.Attributes, def.Stats); err != nil {
			return &MonsterError{Map: i.file.Number, MonsterID: def.ID, Err: err}
		}

		// регистрируем только полностью собранный шаблон
		if err := world.RegisterMonster(monster); err != nil {
			return &MonsterError{Map: i.file.Number, MonsterID: def.ID, Err: err}
		}

		slog.Debug("monster created",
			"map", i.file.Number,
			"id", monster.ID,
			"designation", monster.Designation,
			"stats", monster.Attributes.Len())
	}
	return nil
}

// CreateRequirements implements MapInitializer.
func (i *ContentInitializer) CreateRequirements(t entity.Tracker, m *model.MapDefinition) error {
	return i.binder.Bind(t, &m.Requirements, i.file.Requirements)
}

// CreateSpawns implements MapInitializer.
func (i *ContentInitializer) CreateSpawns(t entity.Tracker, m *model.MapDefinition, world *model.WorldConfiguration) iter.Seq2[*model.SpawnArea, error] {
	consumed := false
	return func(yield func(*model.SpawnArea, error) bool) {
		if consumed {
			yield(nil, ErrSequenceConsumed)
			return
		}
		consumed = true

		for idx := range i.file.Spawns {
			def := &i.file.Spawns[idx]
			fail := func(err error) {
				yield(nil, &SpawnError{Map: m.Number, Index: idx, MonsterID: def.Monster, Err: err})
			}

			monster, ok := world.Monster(def.Monster)
			if !ok {
				fail(ErrUnknownMonster)
				return
			}

			candidate := model.SpawnArea{
				MapNumber:  m.Number,
				MonsterID:  monster.ID,
				Monster:    monster,
				Quantity:   def.Quantity,
				Direction:  def.Direction,
				Trigger:    def.Trigger,
				Area:       def.Area(),
				WaveNumber: def.Wave,
			}
			if err := candidate.Validate(); err != nil {
				fail(err)
				return
			}

			area := entity.New[model.SpawnArea](t)
			*area = candidate
			if !yield(area, nil) {
				return
			}
		}
	}
}
