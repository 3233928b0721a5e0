package data

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/worldseed/internal/model"
)

// MapFile: содержимое одного файла карты: монстры, требования входа и спавны.
// Одна карта = один YAML-файл, никакого кода на карту.
type MapFile struct {
	Number        int16    `yaml:"number"`
	Name          string   `yaml:"name"`
	Discriminator int32    `yaml:"discriminator"`
	ExpMultiplier *float64 `yaml:"exp_multiplier"`

	Requirements StatList     `yaml:"requirements"`
	Monsters     []MonsterDef `yaml:"monsters"`
	Spawns       []SpawnDef   `yaml:"spawns"`

	// Source is the file name the map was read from.
	Source string `yaml:"-"`
	// Digest is the BLAKE2b-256 sum of the raw file.
	Digest [32]byte `yaml:"-"`
}

// Experience returns the map experience multiplier, 1 when not authored.
func (f *MapFile) Experience() float64 {
	if f.ExpMultiplier == nil {
		return 1
	}
	return *f.ExpMultiplier
}

// MonsterDef is one authored monster species.
type MonsterDef struct {
	ID          int32            `yaml:"id"`
	Designation string           `yaml:"designation"`
	Kind        model.ObjectKind `yaml:"kind"`

	MoveRange   int32 `yaml:"move_range"`
	AttackRange int32 `yaml:"attack_range"`
	ViewRange   int32 `yaml:"view_range"`

	MoveDelay    time.Duration `yaml:"move_delay"`
	AttackDelay  time.Duration `yaml:"attack_delay"`
	RespawnDelay time.Duration `yaml:"respawn_delay"`

	AttributeFlags uint8 `yaml:"attribute"`
	MaxItemDrops   int32 `yaml:"max_item_drops"`

	Stats StatList `yaml:"stats"`
}

// SpawnDef is one row of a map's spawn table.
type SpawnDef struct {
	Monster   int32              `yaml:"monster"`
	Quantity  int16              `yaml:"quantity"`
	Direction model.Direction    `yaml:"direction"`
	Trigger   model.SpawnTrigger `yaml:"trigger"`
	Wave      uint8              `yaml:"wave"`

	// Either At (fixed point) or the X1..Y2 rectangle.
	At *model.Point `yaml:"at"`
	X1 uint8        `yaml:"x1"`
	X2 uint8        `yaml:"x2"`
	Y1 uint8        `yaml:"y1"`
	Y2 uint8        `yaml:"y2"`
}

// Area returns the authored rectangle.
func (s *SpawnDef) Area() model.Rectangle {
	if s.At != nil {
		return model.PointRectangle(*s.At)
	}
	return model.NewRectangle(s.X1, s.X2, s.Y1, s.Y2)
}

// checkPlacement rejects rows that author both a fixed point and a rectangle.
func (s *SpawnDef) checkPlacement() error {
	if s.At != nil && (s.X1 != 0 || s.X2 != 0 || s.Y1 != 0 || s.Y2 != 0) {
		return errors.New("both at and x1/x2/y1/y2 given")
	}
	return nil
}

// StatList is an ordered list of (attribute key, value) pairs.
//
// In YAML it is written as a mapping ("Level: 43"). Order is kept and
// repeated keys are preserved so that the binder, not the parser, decides
// how to treat them.
type StatList []model.AttributeValue

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StatList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(StatList, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := parseStat(node.Content[i], node.Content[i+1])
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		*l = out
		return nil

	case yaml.SequenceNode:
		// "- Level: 43" form, one pair per item.
		out := make(StatList, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
				return fmt.Errorf("line %d: stat list item must be a single key: value pair", item.Line)
			}
			v, err := parseStat(item.Content[0], item.Content[1])
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		*l = out
		return nil

	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
	}
	return fmt.Errorf("line %d: stats must be a mapping", node.Line)
}

func parseStat(key, value *yaml.Node) (model.AttributeValue, error) {
	if key.Kind != yaml.ScalarNode || key.Value == "" {
		return model.AttributeValue{}, fmt.Errorf("line %d: stat key must be a name", key.Line)
	}
	if value.Kind != yaml.ScalarNode {
		return model.AttributeValue{}, fmt.Errorf("line %d: stat %s: value must be a number", value.Line, key.Value)
	}
	f, err := strconv.ParseFloat(value.Value, 32)
	if err != nil {
		return model.AttributeValue{}, fmt.Errorf("line %d: stat %s: %w", value.Line, key.Value, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return model.AttributeValue{}, fmt.Errorf("line %d: stat %s: value must be finite", value.Line, key.Value)
	}
	return model.AttributeValue{Key: key.Value, Value: float32(f)}, nil
}
