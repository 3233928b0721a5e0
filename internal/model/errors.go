package model

import "errors"

var (
	// ErrDuplicateAttribute: одно и то же определение атрибута привязано дважды.
	ErrDuplicateAttribute = errors.New("duplicate attribute binding")

	// ErrDuplicateMonster is returned when a monster id is registered twice.
	ErrDuplicateMonster = errors.New("duplicate monster id")

	// ErrDuplicateMap is returned when a map number is registered twice.
	ErrDuplicateMap = errors.New("duplicate map number")

	// ErrConfigurationSealed is returned by mutators after Seal.
	ErrConfigurationSealed = errors.New("world configuration is sealed")

	// ErrMalformedSpawn covers inverted rectangles and non-positive quantities.
	ErrMalformedSpawn = errors.New("malformed spawn area")
)
