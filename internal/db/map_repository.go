package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/worldseed/internal/model"
)

// MapRepository handles maps, their entry requirements and spawn areas.
type MapRepository struct {
	pool *pgxpool.Pool
}

// NewMapRepository creates a new map repository
func NewMapRepository(pool *pgxpool.Pool) *MapRepository {
	return &MapRepository{pool: pool}
}

// ReplaceTx upserts the map row and fully replaces its requirements and spawns.
// Spawn ordinals follow the order of m.Spawns.
func (r *MapRepository) ReplaceTx(ctx context.Context, tx pgx.Tx, m *model.MapDefinition, digest []byte) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO maps (number, name, discriminator, exp_multiplier, content_digest, seeded_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (number) DO UPDATE SET
			name = EXCLUDED.name,
			discriminator = EXCLUDED.discriminator,
			exp_multiplier = EXCLUDED.exp_multiplier,
			content_digest = EXCLUDED.content_digest,
			seeded_at = EXCLUDED.seeded_at`,
		m.Number, m.Name, m.Discriminator, m.ExpMultiplier, digest,
	)
	if err != nil {
		return fmt.Errorf("upserting map %d: %w", m.Number, err)
	}

	// spawn_areas и map_requirements пересоздаются целиком
	if _, err := tx.Exec(ctx, `DELETE FROM spawn_areas WHERE map_number = $1`, m.Number); err != nil {
		return fmt.Errorf("deleting old spawns for map %d: %w", m.Number, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM map_requirements WHERE map_number = $1`, m.Number); err != nil {
		return fmt.Errorf("deleting old requirements for map %d: %w", m.Number, err)
	}

	if reqs := m.Requirements.All(); len(reqs) > 0 {
		rows := make([][]any, 0, len(reqs))
		for i, b := range reqs {
			rows = append(rows, []any{m.Number, b.Definition.Key, int32(i), b.Value})
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"map_requirements"},
			[]string{"map_number", "attribute_key", "ordinal", "value"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("inserting requirements for map %d: %w", m.Number, err)
		}
	}

	if len(m.Spawns) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(m.Spawns))
	for i, s := range m.Spawns {
		rows = append(rows, []any{
			m.Number, int32(i), s.MonsterID, s.Quantity,
			int16(s.Direction), int16(s.Trigger), int16(s.WaveNumber),
			int16(s.Area.X1), int16(s.Area.X2), int16(s.Area.Y1), int16(s.Area.Y2),
		})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"spawn_areas"},
		[]string{"map_number", "ordinal", "monster_id", "quantity", "direction", "spawn_trigger", "wave_number", "x1", "x2", "y1", "y2"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting spawns for map %d: %w", m.Number, err)
	}

	slog.Debug("saved map",
		"map", m.Number,
		"requirements", m.Requirements.Len(),
		"spawns", len(m.Spawns))

	return nil
}

// LoadSpawns loads the stored spawn areas of a map. Every row must reference
// a monster already registered in world.
func (r *MapRepository) LoadSpawns(ctx context.Context, world *model.WorldConfiguration, number int16) ([]*model.SpawnArea, error) {
	query := `
		SELECT monster_id, quantity, direction, spawn_trigger, wave_number, x1, x2, y1, y2
		FROM spawn_areas
		WHERE map_number = $1
		ORDER BY ordinal
	`

	rows, err := r.pool.Query(ctx, query, number)
	if err != nil {
		return nil, fmt.Errorf("loading spawns for map %d: %w", number, err)
	}
	defer rows.Close()

	spawns := make([]*model.SpawnArea, 0, 32)
	for rows.Next() {
		var (
			monsterID                int32
			quantity                 int16
			direction, trigger, wave int16
			x1, x2, y1, y2           int16
		)
		if err := rows.Scan(&monsterID, &quantity, &direction, &trigger, &wave, &x1, &x2, &y1, &y2); err != nil {
			return nil, fmt.Errorf("scanning spawn row: %w", err)
		}

		monster, ok := world.Monster(monsterID)
		if !ok {
			return nil, fmt.Errorf("map %d: stored spawn references unregistered monster %d", number, monsterID)
		}

		area := &model.SpawnArea{
			MapNumber:  number,
			MonsterID:  monsterID,
			Monster:    monster,
			Quantity:   quantity,
			Direction:  model.Direction(direction),
			Trigger:    model.SpawnTrigger(trigger),
			WaveNumber: uint8(wave),
			Area:       model.NewRectangle(uint8(x1), uint8(x2), uint8(y1), uint8(y2)),
		}
		if direction < 0 || trigger < 0 || wave < 0 || direction > 255 || trigger > 255 || wave > 255 {
			return nil, fmt.Errorf("map %d: stored spawn #%d: %w: enum value out of range", number, len(spawns), model.ErrMalformedSpawn)
		}
		if err := area.Validate(); err != nil {
			return nil, fmt.Errorf("map %d: stored spawn #%d: %w", number, len(spawns), err)
		}
		spawns = append(spawns, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spawn rows: %w", err)
	}

	return spawns, nil
}

// MapDigest returns the content digest stored with the map. The boolean is
// false when the map was never saved or was saved without a digest.
func (r *MapRepository) MapDigest(ctx context.Context, number int16) ([]byte, bool, error) {
	var digest []byte
	err := r.pool.QueryRow(ctx, `SELECT content_digest FROM maps WHERE number = $1`, number).Scan(&digest)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading digest of map %d: %w", number, err)
	}
	return digest, digest != nil, nil
}

// digestTx is MapDigest inside a running transaction.
func (r *MapRepository) digestTx(ctx context.Context, tx pgx.Tx, number int16) ([]byte, error) {
	var digest []byte
	err := tx.QueryRow(ctx, `SELECT content_digest FROM maps WHERE number = $1`, number).Scan(&digest)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading digest of map %d: %w", number, err)
	}
	return digest, nil
}
