package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/worldseed/internal/model"
)

// MonsterRepository handles attribute definitions and monster templates.
type MonsterRepository struct {
	pool *pgxpool.Pool
}

// NewMonsterRepository creates a new monster repository
func NewMonsterRepository(pool *pgxpool.Pool) *MonsterRepository {
	return &MonsterRepository{pool: pool}
}

// SaveCatalogTx upserts every definition of catalog.
func (r *MonsterRepository) SaveCatalogTx(ctx context.Context, tx pgx.Tx, catalog *model.AttributeCatalog) error {
	batch := &pgx.Batch{}
	for _, def := range catalog.All() {
		batch.Queue(`
			INSERT INTO attribute_definitions (key, designation, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE
			SET designation = EXCLUDED.designation, description = EXCLUDED.description`,
			def.Key, def.Designation, def.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("saving attribute catalog: %w", err)
	}
	return nil
}

// UpsertTx writes templates by id. Existing rows are overwritten and their
// attribute bindings replaced, so saving the same world twice is harmless.
func (r *MonsterRepository) UpsertTx(ctx context.Context, tx pgx.Tx, monsters []*model.MonsterTemplate) error {
	batch := &pgx.Batch{}
	for _, m := range monsters {
		batch.Queue(`
			INSERT INTO monster_templates (
				id, designation, kind, move_range, attack_range, view_range,
				move_delay_ms, attack_delay_ms, respawn_delay_ms, attribute_flags, max_item_drops
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				designation = EXCLUDED.designation,
				kind = EXCLUDED.kind,
				move_range = EXCLUDED.move_range,
				attack_range = EXCLUDED.attack_range,
				view_range = EXCLUDED.view_range,
				move_delay_ms = EXCLUDED.move_delay_ms,
				attack_delay_ms = EXCLUDED.attack_delay_ms,
				respawn_delay_ms = EXCLUDED.respawn_delay_ms,
				attribute_flags = EXCLUDED.attribute_flags,
				max_item_drops = EXCLUDED.max_item_drops`,
			m.ID, m.Designation, int16(m.Kind), m.MoveRange, m.AttackRange, m.ViewRange,
			m.MoveDelay.Milliseconds(), m.AttackDelay.Milliseconds(), m.RespawnDelay.Milliseconds(),
			int16(m.AttributeFlags), m.MaxItemDrops,
		)
		batch.Queue(`DELETE FROM monster_attributes WHERE monster_id = $1`, m.ID)
		for i, b := range m.Attributes.All() {
			batch.Queue(`
				INSERT INTO monster_attributes (monster_id, attribute_key, ordinal, value)
				VALUES ($1, $2, $3, $4)`,
				m.ID, b.Definition.Key, i, b.Value,
			)
		}
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("upserting %d monster templates: %w", len(monsters), err)
	}
	return nil
}

// LoadAll loads every template ordered by id. Bindings are resolved against
// catalog, so loaded templates share definition instances with it.
func (r *MonsterRepository) LoadAll(ctx context.Context, catalog *model.AttributeCatalog) ([]*model.MonsterTemplate, error) {
	query := `
		SELECT id, designation, kind, move_range, attack_range, view_range,
		       move_delay_ms, attack_delay_ms, respawn_delay_ms, attribute_flags, max_item_drops
		FROM monster_templates
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading monster templates: %w", err)
	}
	defer rows.Close()

	monsters := make([]*model.MonsterTemplate, 0, 128)
	byID := make(map[int32]*model.MonsterTemplate, 128)

	for rows.Next() {
		var (
			m                                 model.MonsterTemplate
			kind, flags                       int16
			moveDelay, attackDelay, respawnMs int64
		)
		if err := rows.Scan(
			&m.ID, &m.Designation, &kind, &m.MoveRange, &m.AttackRange, &m.ViewRange,
			&moveDelay, &attackDelay, &respawnMs, &flags, &m.MaxItemDrops,
		); err != nil {
			return nil, fmt.Errorf("scanning monster template row: %w", err)
		}
		m.Kind = model.ObjectKind(kind)
		m.AttributeFlags = uint8(flags)
		m.MoveDelay = time.Duration(moveDelay) * time.Millisecond
		m.AttackDelay = time.Duration(attackDelay) * time.Millisecond
		m.RespawnDelay = time.Duration(respawnMs) * time.Millisecond

		tmpl := &m
		monsters = append(monsters, tmpl)
		byID[tmpl.ID] = tmpl
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monster template rows: %w", err)
	}

	attrRows, err := r.pool.Query(ctx, `
		SELECT monster_id, attribute_key, value
		FROM monster_attributes
		ORDER BY monster_id, ordinal
	`)
	if err != nil {
		return nil, fmt.Errorf("loading monster attributes: %w", err)
	}
	defer attrRows.Close()

	for attrRows.Next() {
		var (
			monsterID int32
			key       string
			value     float32
		)
		if err := attrRows.Scan(&monsterID, &key, &value); err != nil {
			return nil, fmt.Errorf("scanning monster attribute row: %w", err)
		}
		m, ok := byID[monsterID]
		if !ok {
			continue
		}
		if err := bindStored(&m.Attributes, catalog, key, value); err != nil {
			return nil, fmt.Errorf("monster %d: %w", monsterID, err)
		}
	}
	if err := attrRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monster attribute rows: %w", err)
	}

	return monsters, nil
}

// bindStored re-creates a stored binding with the catalog's definition.
func bindStored(set *model.AttributeSet, catalog *model.AttributeCatalog, key string, value float32) error {
	def, ok := catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("stored attribute %q not in catalog", key)
	}
	return set.Add(&model.AttributeBinding{Definition: def, Value: value})
}
