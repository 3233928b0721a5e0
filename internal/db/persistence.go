package db

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/worldseed/internal/model"
)

// SaveStats summarizes one WorldRepository.Save call.
type SaveStats struct {
	Attributes int
	Monsters   int
	Maps       int
	Unchanged  []int16
}

// WorldRepository persists a seeded WorldConfiguration and reads it back.
type WorldRepository struct {
	pool     *pgxpool.Pool
	monsters *MonsterRepository
	maps     *MapRepository
}

// NewWorldRepository создаёт репозиторий поверх общего пула.
func NewWorldRepository(pool *pgxpool.Pool) *WorldRepository {
	return &WorldRepository{
		pool:     pool,
		monsters: NewMonsterRepository(pool),
		maps:     NewMapRepository(pool),
	}
}

// Save writes the catalog, every monster template and every registered map in
// a single transaction. digests holds the content fingerprint per map number;
// a map whose stored fingerprint equals the new one is left untouched unless
// force is set. Maps missing from digests are always written.
func (r *WorldRepository) Save(ctx context.Context, world *model.WorldConfiguration, digests map[int16][]byte, force bool) (SaveStats, error) {
	var stats SaveStats

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("begin transaction for world save: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("rollback failed", "error", err)
		}
	}()

	// 1. Catalog first: monster_attributes and map_requirements reference it
	catalog := world.Catalog()
	if err := r.monsters.SaveCatalogTx(ctx, tx, catalog); err != nil {
		return stats, err
	}
	stats.Attributes = catalog.Len()

	// 2. Monsters before spawns, same order as seeding
	monsters := world.Monsters()
	if err := r.monsters.UpsertTx(ctx, tx, monsters); err != nil {
		return stats, err
	}
	stats.Monsters = len(monsters)

	// 3. Maps
	for _, m := range world.Maps() {
		digest, known := digests[m.Number]
		if known && !force {
			stored, err := r.maps.digestTx(ctx, tx, m.Number)
			if err != nil {
				return stats, err
			}
			if stored != nil && bytes.Equal(stored, digest) {
				stats.Unchanged = append(stats.Unchanged, m.Number)
				continue
			}
		}

		if err := r.maps.ReplaceTx(ctx, tx, m, digest); err != nil {
			return stats, fmt.Errorf("saving map %d (%s): %w", m.Number, m.Name, err)
		}
		stats.Maps++
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("commit transaction for world save: %w", err)
	}

	slog.Info("world saved",
		"attributes", stats.Attributes,
		"monsters", stats.Monsters,
		"maps", stats.Maps,
		"unchanged", len(stats.Unchanged))

	return stats, nil
}

// LoadMonsters загружает шаблоны монстров, связывая атрибуты с catalog.
func (r *WorldRepository) LoadMonsters(ctx context.Context, catalog *model.AttributeCatalog) ([]*model.MonsterTemplate, error) {
	return r.monsters.LoadAll(ctx, catalog)
}

// LoadSpawns загружает спавны карты; монстры должны быть уже зарегистрированы в world.
func (r *WorldRepository) LoadSpawns(ctx context.Context, world *model.WorldConfiguration, number int16) ([]*model.SpawnArea, error) {
	return r.maps.LoadSpawns(ctx, world, number)
}

// MapDigest returns the stored content fingerprint of a map.
func (r *WorldRepository) MapDigest(ctx context.Context, number int16) ([]byte, bool, error) {
	return r.maps.MapDigest(ctx, number)
}
