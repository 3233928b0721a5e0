package seed

import (
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/worldseed/internal/data"
	"github.com/udisondev/worldseed/internal/entity"
	"github.com/udisondev/worldseed/internal/model"
	"github.com/udisondev/worldseed/internal/testutil"
)

// failingInitializer returns testutil.ErrSimulated from the configured phase.
type failingInitializer struct {
	number        int16
	failMonsters  bool
	failSpawns    bool
	spawnsStarted bool
}

func (f *failingInitializer) MapNumber() int16 { return f.number }
func (f *failingInitializer) MapName() string  { return "Broken" }

func (f *failingInitializer) CreateMonsters(entity.Tracker, *model.WorldConfiguration) error {
	if f.failMonsters {
		return testutil.ErrSimulated
	}
	return nil
}

func (f *failingInitializer) CreateRequirements(entity.Tracker, *model.MapDefinition) error {
	return nil
}

func (f *failingInitializer) CreateSpawns(entity.Tracker, *model.MapDefinition, *model.WorldConfiguration) iter.Seq2[*model.SpawnArea, error] {
	return func(yield func(*model.SpawnArea, error) bool) {
		f.spawnsStarted = true
		if f.failSpawns {
			yield(nil, testutil.ErrSimulated)
		}
	}
}

func embeddedInitializers(t *testing.T, binder *Binder) []MapInitializer {
	t.Helper()
	files, err := data.LoadMaps(context.Background(), data.EmbeddedMaps())
	require.NoError(t, err)
	return NewContentInitializers(files, binder)
}

func TestSeeder_RunEmbeddedContent(t *testing.T) {
	f := newFixture()
	inits := embeddedInitializers(t, f.binder)

	report, err := NewSeeder(Options{}).Run(f.ec, f.world, inits)
	require.NoError(t, err)

	assert.Len(t, report.Maps, len(inits))
	assert.Empty(t, report.Skipped)
	assert.Equal(t, f.world.MonsterCount(), report.Monsters)

	spawns := 0
	for _, m := range f.world.Maps() {
		assert.True(t, f.world.IsSeeded(m.Number))
		for _, s := range m.Spawns {
			// every produced spawn resolves to a registered template
			monster, ok := f.world.Monster(s.MonsterID)
			require.True(t, ok, "map %d references %d", m.Number, s.MonsterID)
			assert.Same(t, monster, s.Monster)
			assert.NoError(t, s.Area.Validate())
			assert.GreaterOrEqual(t, s.Quantity, int16(1))
		}
		spawns += len(m.Spawns)
	}
	assert.Equal(t, spawns, report.Spawns)

	icarus, ok := f.world.Map(10)
	require.True(t, ok)
	assert.True(t, icarus.Requirements.Has(f.catalog.MustLookup(data.StatCanFly)))

	devilSquare, ok := f.world.Map(9)
	require.True(t, ok)
	assert.Equal(t, 2.0, devilSquare.ExpMultiplier)
	assert.Equal(t, model.TriggerAutomaticDuringEvent, devilSquare.Spawns[0].Trigger)

	bahamut, ok := f.world.Monster(45)
	require.True(t, ok)
	level, _ := bahamut.Stat(f.catalog.MustLookup(data.StatLevel))
	assert.Equal(t, float32(43), level)
}

func TestSeeder_RunTwiceIsIdempotent(t *testing.T) {
	f := newFixture()
	inits := embeddedInitializers(t, f.binder)
	s := NewSeeder(Options{})

	first, err := s.Run(f.ec, f.world, inits)
	require.NoError(t, err)
	monsters := f.world.MonsterCount()
	created := f.ec.Len()

	second, err := s.Run(f.ec, f.world, inits)
	require.NoError(t, err)

	assert.Empty(t, second.Maps)
	assert.Len(t, second.Skipped, len(first.Maps))
	assert.Equal(t, monsters, f.world.MonsterCount())
	assert.Equal(t, created, f.ec.Len(), "skipped maps create nothing")
}

func TestSeeder_SealOnFinish(t *testing.T) {
	f := newFixture()
	_, err := NewSeeder(Options{SealOnFinish: true}).Run(f.ec, f.world, embeddedInitializers(t, f.binder))
	require.NoError(t, err)

	assert.True(t, f.world.Sealed())
	assert.ErrorIs(t, f.world.RegisterMonster(&model.MonsterTemplate{ID: 9999}), model.ErrConfigurationSealed)
}

func TestSeeder_CrossMapReference(t *testing.T) {
	f := newFixture()

	// Map 1 spawns a monster that only map 10 defines; phase one makes it visible.
	dungeon := &data.MapFile{
		Number: 1,
		Name:   "Dungeon",
		Spawns: []data.SpawnDef{{Monster: 45, Quantity: 2, X1: 1, X2: 5, Y1: 1, Y2: 5}},
	}
	inits := []MapInitializer{
		NewContentInitializer(dungeon, f.binder),
		NewContentInitializer(icarusFile(), f.binder),
	}

	_, err := NewSeeder(Options{}).Run(f.ec, f.world, inits)
	require.NoError(t, err)

	m, ok := f.world.Map(1)
	require.True(t, ok)
	require.Len(t, m.Spawns, 1)
	assert.Equal(t, int32(45), m.Spawns[0].MonsterID)
}

func TestSeeder_UnknownMonsterAbortsMap(t *testing.T) {
	f := newFixture()
	file := icarusFile(
		data.SpawnDef{Monster: 45, Quantity: 1, X1: 1, X2: 1, Y1: 1, Y2: 1},
		data.SpawnDef{Monster: 4500, Quantity: 1, X1: 1, X2: 1, Y1: 1, Y2: 1},
	)

	_, err := NewSeeder(Options{}).Run(f.ec, f.world, []MapInitializer{NewContentInitializer(file, f.binder)})

	require.ErrorIs(t, err, ErrUnknownMonster)
	assert.Contains(t, err.Error(), "map 10 (Icarus)")
	assert.Contains(t, err.Error(), "monster 4500")

	_, registered := f.world.Map(10)
	assert.False(t, registered, "partial spawn data must not be registered")
	assert.False(t, f.world.IsSeeded(10))
}

func TestSeeder_UnresolvedRequirement(t *testing.T) {
	f := newFixture()
	file := icarusFile()
	file.Requirements = data.StatList{{Key: "CanSwim", Value: 1}}

	_, err := NewSeeder(Options{}).Run(f.ec, f.world, []MapInitializer{NewContentInitializer(file, f.binder)})

	require.ErrorIs(t, err, ErrUnresolvedAttribute)
	assert.Contains(t, err.Error(), "CanSwim")
}

func TestSeeder_DuplicateMonsterAcrossMaps(t *testing.T) {
	f := newFixture()
	other := icarusFile()
	other.Number = 11
	other.Name = "Icarus Copy"

	_, err := NewSeeder(Options{}).Run(f.ec, f.world, []MapInitializer{
		NewContentInitializer(icarusFile(), f.binder),
		NewContentInitializer(other, f.binder),
	})

	require.ErrorIs(t, err, model.ErrDuplicateMonster)
	assert.Contains(t, err.Error(), "map 11")
}

func TestSeeder_FailingMonsterPhaseStopsBeforeSpawns(t *testing.T) {
	f := newFixture()
	broken := &failingInitializer{number: 20, failMonsters: true}
	healthy := &failingInitializer{number: 21}

	_, err := NewSeeder(Options{}).Run(f.ec, f.world, []MapInitializer{healthy, broken})

	require.ErrorIs(t, err, testutil.ErrSimulated)
	assert.False(t, healthy.spawnsStarted, "no spawns before all monsters exist")
}

func TestSeeder_FailingSpawnPhase(t *testing.T) {
	f := newFixture()
	broken := &failingInitializer{number: 20, failSpawns: true}

	_, err := NewSeeder(Options{}).Run(f.ec, f.world, []MapInitializer{broken})

	require.ErrorIs(t, err, testutil.ErrSimulated)
	assert.Contains(t, err.Error(), "map 20 (Broken)")
}
