package seed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/worldseed/internal/entity"
	"github.com/udisondev/worldseed/internal/model"
)

// Options configures a Seeder.
type Options struct {
	// SealOnFinish seals the world configuration after a successful run.
	SealOnFinish bool
}

// Seeder runs every MapInitializer against one world configuration.
// A run is sequential and owns the tracker and the world exclusively.
type Seeder struct {
	opts Options
}

// NewSeeder creates a Seeder.
func NewSeeder(opts Options) *Seeder {
	return &Seeder{opts: opts}
}

// MapReport summarises one seeded map.
type MapReport struct {
	Number    int16
	Name      string
	Monsters  int
	Spawns    int
	Instances int
}

// Report summarises a run.
type Report struct {
	Maps     []MapReport
	Skipped  []int16 // maps already seeded before the run
	Monsters int
	Spawns   int
	Duration time.Duration
}

// Run seeds all maps in two phases: first every initializer creates its
// monsters, then each map is built with requirements and spawns.
//
// Maps the world already marks as seeded are skipped, so running the same
// initializers twice against one world is a no-op. Any error aborts the run;
// the world is then partially populated and must be discarded.
func (s *Seeder) Run(t entity.Tracker, world *model.WorldConfiguration, inits []MapInitializer) (*Report, error) {
	start := time.Now()
	report := &Report{}

	pending := make([]MapInitializer, 0, len(inits))
	for _, mi := range inits {
		if world.IsSeeded(mi.MapNumber()) {
			slog.Info("map already seeded, skipping", "map", mi.MapNumber(), "name", mi.MapName())
			report.Skipped = append(report.Skipped, mi.MapNumber())
			continue
		}
		pending = append(pending, mi)
	}

	created := make([]int, len(pending))
	for i, mi := range pending {
		before := world.MonsterCount()
		if err := mi.CreateMonsters(t, world); err != nil {
			return nil, fmt.Errorf("creating monsters for map %d (%s): %w", mi.MapNumber(), mi.MapName(), err)
		}
		created[i] = world.MonsterCount() - before
		slog.Info("monsters created", "map", mi.MapNumber(), "name", mi.MapName(), "count", created[i])
	}

	for i, mi := range pending {
		m, err := s.seedMap(t, world, mi)
		if err != nil {
			return nil, fmt.Errorf("seeding map %d (%s): %w", mi.MapNumber(), mi.MapName(), err)
		}

		mr := MapReport{
			Number:    m.Number,
			Name:      m.Name,
			Monsters:  created[i],
			Spawns:    len(m.Spawns),
			Instances: m.InstanceCount(),
		}
		report.Maps = append(report.Maps, mr)
		report.Monsters += mr.Monsters
		report.Spawns += mr.Spawns

		slog.Info("map seeded",
			"map", m.Number,
			"name", m.Name,
			"spawns", mr.Spawns,
			"instances", mr.Instances,
			"requirements", m.Requirements.Len())
	}

	if s.opts.SealOnFinish {
		world.Seal()
	}

	report.Duration = time.Since(start)
	slog.Info("world seeded",
		"maps", len(report.Maps),
		"skipped", len(report.Skipped),
		"monsters", report.Monsters,
		"spawns", report.Spawns,
		"duration", report.Duration)
	return report, nil
}

// seedMap builds one map definition. Nothing is registered in world unless
// every spawn area of the map was built.
func (s *Seeder) seedMap(t entity.Tracker, world *model.WorldConfiguration, mi MapInitializer) (*model.MapDefinition, error) {
	m := entity.New[model.MapDefinition](t)
	m.Number = mi.MapNumber()
	m.Name = mi.MapName()
	m.ExpMultiplier = 1
	if d, ok := mi.(MapDescriber); ok {
		d.Describe(m)
	}

	if err := mi.CreateRequirements(t, m); err != nil {
		return nil, fmt.Errorf("binding requirements: %w", err)
	}

	var spawns []*model.SpawnArea
	for area, err := range mi.CreateSpawns(t, m, world) {
		if err != nil {
			return nil, err
		}
		spawns = append(spawns, area)
	}
	m.Spawns = spawns

	if err := world.RegisterMap(m); err != nil {
		return nil, err
	}
	if err := world.MarkSeeded(m.Number); err != nil {
		return nil, err
	}
	return m, nil
}
