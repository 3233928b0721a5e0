package seed

import (
	"errors"
	"fmt"

	"github.com/udisondev/worldseed/internal/model"
)

var (
	// ErrUnresolvedAttribute: ключ атрибута отсутствует в каталоге.
	ErrUnresolvedAttribute = errors.New("unresolved attribute")

	// ErrDuplicateAttribute: один и тот же атрибут указан дважды для одного владельца.
	ErrDuplicateAttribute = model.ErrDuplicateAttribute

	// ErrUnknownMonster: спавн ссылается на несуществующий шаблон монстра.
	ErrUnknownMonster = errors.New("spawn references unknown monster")

	// ErrMalformedSpawn: перевёрнутый прямоугольник или quantity < 1.
	ErrMalformedSpawn = model.ErrMalformedSpawn

	// ErrSequenceConsumed is yielded when a spawn sequence is ranged over twice.
	ErrSequenceConsumed = errors.New("spawn sequence already consumed")
)

// AttributeError names the attribute key that could not be bound.
type AttributeError struct {
	Key string
	Err error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute %q: %v", e.Key, e.Err)
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}

// MonsterError names the map and monster whose construction failed.
type MonsterError struct {
	Map       int16
	MonsterID int32
	Err       error
}

func (e *MonsterError) Error() string {
	return fmt.Sprintf("map %d: monster %d: %v", e.Map, e.MonsterID, e.Err)
}

func (e *MonsterError) Unwrap() error {
	return e.Err
}

// SpawnError names the map, the spawn row (0-based, declaration order) and
// the referenced monster of a rejected spawn area.
type SpawnError struct {
	Map       int16
	Index     int
	MonsterID int32
	Err       error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("map %d: spawn #%d (monster %d): %v", e.Map, e.Index, e.MonsterID, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
