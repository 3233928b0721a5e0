package model

import (
	"fmt"
	"time"
)

// ObjectKind classifies what a template spawns as.
type ObjectKind uint8

const (
	KindMonster ObjectKind = iota
	KindNpc
	KindGuard
	KindTrap
	KindDestructible
)

var objectKindNames = [...]string{
	KindMonster:      "monster",
	KindNpc:          "npc",
	KindGuard:        "guard",
	KindTrap:         "trap",
	KindDestructible: "destructible",
}

func (k ObjectKind) String() string {
	if int(k) < len(objectKindNames) {
		return objectKindNames[k]
	}
	return fmt.Sprintf("ObjectKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k ObjectKind) MarshalText() ([]byte, error) {
	if int(k) >= len(objectKindNames) {
		return nil, fmt.Errorf("unknown object kind %d", uint8(k))
	}
	return []byte(objectKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ObjectKind) UnmarshalText(text []byte) error {
	for i, name := range objectKindNames {
		if name == string(text) {
			*k = ObjectKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown object kind %q", text)
}

// MonsterTemplate describes one monster species: ranges, timings and bound stats.
// Created once during seeding; treat as read-only afterwards.
type MonsterTemplate struct {
	ID          int32
	Designation string
	Kind        ObjectKind

	MoveRange   int32
	AttackRange int32
	ViewRange   int32

	MoveDelay    time.Duration
	AttackDelay  time.Duration
	RespawnDelay time.Duration

	// AttributeFlags classifies behaviour (aggressive, passive...), interpreted by the simulation.
	AttributeFlags uint8
	MaxItemDrops   int32

	Attributes AttributeSet
}

// Stat returns the value bound to def.
func (t *MonsterTemplate) Stat(def *AttributeDefinition) (float32, bool) {
	return t.Attributes.Value(def)
}

func (t *MonsterTemplate) String() string {
	return fmt.Sprintf("%d (%s)", t.ID, t.Designation)
}
