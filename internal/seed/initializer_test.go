package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/worldseed/internal/data"
	"github.com/udisondev/worldseed/internal/entity"
	"github.com/udisondev/worldseed/internal/model"
)

func bahamutDef() data.MonsterDef {
	return data.MonsterDef{
		ID:             45,
		Designation:    "Bahamut",
		MoveRange:      3,
		AttackRange:    1,
		ViewRange:      5,
		MoveDelay:      400 * time.Millisecond,
		AttackDelay:    1600 * time.Millisecond,
		RespawnDelay:   10 * time.Second,
		AttributeFlags: 2,
		MaxItemDrops:   1,
		Stats: data.StatList{
			{Key: data.StatLevel, Value: 43},
			{Key: data.StatMaximumHealth, Value: 2400},
		},
	}
}

func icarusFile(spawns ...data.SpawnDef) *data.MapFile {
	return &data.MapFile{
		Number:       10,
		Name:         "Icarus",
		Requirements: data.StatList{{Key: data.StatCanFly, Value: 1}},
		Monsters:     []data.MonsterDef{bahamutDef()},
		Spawns:       spawns,
	}
}

type fixture struct {
	catalog *model.AttributeCatalog
	binder  *Binder
	ec      *entity.Context
	world   *model.WorldConfiguration
}

func newFixture() *fixture {
	catalog := data.NewAttributeCatalog()
	return &fixture{
		catalog: catalog,
		binder:  NewBinder(catalog),
		ec:      entity.NewContext(),
		world:   model.NewWorldConfiguration(catalog),
	}
}

func collect(t *testing.T, f *fixture, mi *ContentInitializer) ([]*model.SpawnArea, error) {
	t.Helper()
	m := &model.MapDefinition{Number: mi.MapNumber(), Name: mi.MapName()}
	var out []*model.SpawnArea
	for area, err := range mi.CreateSpawns(f.ec, m, f.world) {
		if err != nil {
			return out, err
		}
		out = append(out, area)
	}
	return out, nil
}

func TestContentInitializer_CreateMonsters(t *testing.T) {
	f := newFixture()
	mi := NewContentInitializer(icarusFile(), f.binder)

	require.NoError(t, mi.CreateMonsters(f.ec, f.world))

	bahamut, ok := f.world.Monster(45)
	require.True(t, ok)
	assert.Equal(t, "Bahamut", bahamut.Designation)
	assert.Equal(t, int32(5), bahamut.ViewRange)
	assert.Equal(t, 1600*time.Millisecond, bahamut.AttackDelay)
	assert.Equal(t, uint8(2), bahamut.AttributeFlags)
	assert.True(t, f.ec.IsTracked(bahamut), "template must come from the entity context")

	require.Equal(t, 2, bahamut.Attributes.Len())
	level, ok := bahamut.Stat(f.catalog.MustLookup(data.StatLevel))
	require.True(t, ok)
	assert.Equal(t, float32(43), level)
	hp, ok := bahamut.Stat(f.catalog.MustLookup(data.StatMaximumHealth))
	require.True(t, ok)
	assert.Equal(t, float32(2400), hp)
	for _, b := range bahamut.Attributes.All() {
		def, _ := f.catalog.Lookup(b.Definition.Key)
		assert.Same(t, def, b.Definition)
	}
}

func TestContentInitializer_CreateMonsters_UnresolvedAttribute(t *testing.T) {
	f := newFixture()
	file := icarusFile()
	file.Monsters[0].Stats = append(file.Monsters[0].Stats, model.AttributeValue{Key: "Lvel", Value: 1})

	err := NewContentInitializer(file, f.binder).CreateMonsters(f.ec, f.world)

	require.ErrorIs(t, err, ErrUnresolvedAttribute)
	var monErr *MonsterError
	require.ErrorAs(t, err, &monErr)
	assert.Equal(t, int32(45), monErr.MonsterID)
	assert.Equal(t, int16(10), monErr.Map)
	assert.Contains(t, err.Error(), "Lvel")

	_, registered := f.world.Monster(45)
	assert.False(t, registered, "half-built template must not reach the world")
	assert.Zero(t, f.world.MonsterCount())
}

func TestContentInitializer_CreateMonsters_DuplicateID(t *testing.T) {
	f := newFixture()
	file := icarusFile()
	file.Monsters = append(file.Monsters, bahamutDef())

	err := NewContentInitializer(file, f.binder).CreateMonsters(f.ec, f.world)
	require.ErrorIs(t, err, model.ErrDuplicateMonster)
}

func TestContentInitializer_CreateSpawns(t *testing.T) {
	f := newFixture()
	mi := NewContentInitializer(icarusFile(
		data.SpawnDef{Monster: 45, Quantity: 15, X1: 12, X2: 60, Y1: 20, Y2: 90},
		data.SpawnDef{Monster: 45, Quantity: 1, Direction: model.DirectionWest, At: &model.Point{X: 230, Y: 10}},
	), f.binder)
	require.NoError(t, mi.CreateMonsters(f.ec, f.world))

	spawns, err := collect(t, f, mi)
	require.NoError(t, err)
	require.Len(t, spawns, 2)

	first := spawns[0]
	assert.Equal(t, int32(45), first.MonsterID)
	assert.Equal(t, int16(10), first.MapNumber)
	assert.Equal(t, int16(15), first.Quantity)
	assert.Equal(t, model.NewRectangle(12, 60, 20, 90), first.Area)
	assert.True(t, first.Direction.IsRandom())
	bahamut, _ := f.world.Monster(45)
	assert.Same(t, bahamut, first.Monster)

	second := spawns[1]
	assert.True(t, second.IsFixed())
	assert.Equal(t, model.DirectionWest, second.Direction)
	assert.True(t, f.ec.IsTracked(second))
}

func TestContentInitializer_CreateSpawns_UnknownMonster(t *testing.T) {
	f := newFixture()
	mi := NewContentInitializer(icarusFile(
		data.SpawnDef{Monster: 45, Quantity: 2, X1: 1, X2: 2, Y1: 1, Y2: 2},
		data.SpawnDef{Monster: 54, Quantity: 2, X1: 1, X2: 2, Y1: 1, Y2: 2},
		data.SpawnDef{Monster: 45, Quantity: 2, X1: 3, X2: 4, Y1: 3, Y2: 4},
	), f.binder)
	require.NoError(t, mi.CreateMonsters(f.ec, f.world))

	spawns, err := collect(t, f, mi)

	require.ErrorIs(t, err, ErrUnknownMonster)
	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, 1, spawnErr.Index)
	assert.Equal(t, int32(54), spawnErr.MonsterID)

	require.Len(t, spawns, 1, "sequence stops at the first error")
	for _, s := range spawns {
		assert.NotEqual(t, int32(54), s.MonsterID)
	}
	assert.Equal(t, 1, entity.CountOf[model.SpawnArea](f.ec), "rejected rows are never created")
}

func TestContentInitializer_CreateSpawns_BeforeMonsters(t *testing.T) {
	f := newFixture()
	mi := NewContentInitializer(icarusFile(
		data.SpawnDef{Monster: 45, Quantity: 1, X1: 1, X2: 1, Y1: 1, Y2: 1},
	), f.binder)

	_, err := collect(t, f, mi)
	require.ErrorIs(t, err, ErrUnknownMonster)
}

func TestContentInitializer_CreateSpawns_KeepsTrigger(t *testing.T) {
	f := newFixture()
	mi := NewContentInitializer(icarusFile(
		data.SpawnDef{Monster: 45, Quantity: 4, Trigger: model.TriggerAutomaticDuringEvent, X1: 5, X2: 9, Y1: 5, Y2: 9},
		data.SpawnDef{Monster: 45, Quantity: 1, Trigger: model.TriggerOnceAtWaveStart, Wave: 3, X1: 5, X2: 5, Y1: 5, Y2: 5},
	), f.binder)
	require.NoError(t, mi.CreateMonsters(f.ec, f.world))

	spawns, err := collect(t, f, mi)
	require.NoError(t, err)
	require.Len(t, spawns, 2)
	assert.Equal(t, model.TriggerAutomaticDuringEvent, spawns[0].Trigger)
	assert.Equal(t, model.TriggerOnceAtWaveStart, spawns[1].Trigger)
	assert.Equal(t, uint8(3), spawns[1].WaveNumber)
}

func TestContentInitializer_CreateSpawns_Malformed(t *testing.T) {
	tests := []struct {
		name string
		def  data.SpawnDef
	}{
		{"inverted x", data.SpawnDef{Monster: 45, Quantity: 1, X1: 10, X2: 9, Y1: 0, Y2: 0}},
		{"inverted y", data.SpawnDef{Monster: 45, Quantity: 1, X1: 0, X2: 0, Y1: 10, Y2: 9}},
		{"zero quantity", data.SpawnDef{Monster: 45, Quantity: 0, X1: 0, X2: 0, Y1: 0, Y2: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			mi := NewContentInitializer(icarusFile(tt.def), f.binder)
			require.NoError(t, mi.CreateMonsters(f.ec, f.world))

			spawns, err := collect(t, f, mi)
			require.ErrorIs(t, err, ErrMalformedSpawn)
			assert.Empty(t, spawns)
		})
	}
}

func TestContentInitializer_CreateSpawns_LazyAndOneShot(t *testing.T) {
	f := newFixture()
	mi := NewContentInitializer(icarusFile(
		data.SpawnDef{Monster: 45, Quantity: 1, X1: 1, X2: 1, Y1: 1, Y2: 1},
		data.SpawnDef{Monster: 45, Quantity: 1, X1: 2, X2: 2, Y1: 2, Y2: 2},
		data.SpawnDef{Monster: 45, Quantity: 1, X1: 3, X2: 3, Y1: 3, Y2: 3},
	), f.binder)
	require.NoError(t, mi.CreateMonsters(f.ec, f.world))

	seq := mi.CreateSpawns(f.ec, &model.MapDefinition{Number: 10}, f.world)
	assert.Zero(t, entity.CountOf[model.SpawnArea](f.ec), "nothing is built before iteration")

	for area, err := range seq {
		require.NoError(t, err)
		assert.Equal(t, uint8(1), area.Area.X1)
		break
	}
	assert.Equal(t, 1, entity.CountOf[model.SpawnArea](f.ec), "early break stops production")

	for _, err := range seq {
		assert.ErrorIs(t, err, ErrSequenceConsumed)
	}
}

func TestContentInitializer_CreateRequirements(t *testing.T) {
	f := newFixture()
	mi := NewContentInitializer(icarusFile(), f.binder)

	m := &model.MapDefinition{Number: 10}
	require.NoError(t, mi.CreateRequirements(f.ec, m))

	v, ok := m.Requirements.Value(f.catalog.MustLookup(data.StatCanFly))
	require.True(t, ok)
	assert.Equal(t, float32(1), v)
}

func TestContentInitializer_Describe(t *testing.T) {
	exp := 2.5
	file := icarusFile()
	file.Discriminator = 3
	file.ExpMultiplier = &exp

	m := &model.MapDefinition{}
	NewContentInitializer(file, NewBinder(data.NewAttributeCatalog())).Describe(m)
	assert.Equal(t, int32(3), m.Discriminator)
	assert.Equal(t, 2.5, m.ExpMultiplier)
}
