package model

import "fmt"

// AttributeDefinition describes a named numeric stat ("Level", "PoisonResistance").
// Definitions are owned by an AttributeCatalog and compared by pointer identity:
// two bindings refer to the same stat only if they share the same *AttributeDefinition.
type AttributeDefinition struct {
	Key         string
	Designation string
	Description string
}

func (d *AttributeDefinition) String() string {
	return d.Key
}

// AttributeCatalog: реестр определений атрибутов, ключ это стабильный строковый идентификатор.
// Каталог заполняется хостом один раз; после этого используется только для чтения.
type AttributeCatalog struct {
	byKey map[string]*AttributeDefinition
	order []*AttributeDefinition
}

// NewAttributeCatalog creates an empty catalog with room for size definitions.
func NewAttributeCatalog(size int) *AttributeCatalog {
	return &AttributeCatalog{
		byKey: make(map[string]*AttributeDefinition, size),
		order: make([]*AttributeDefinition, 0, size),
	}
}

// Add registers a definition. Keys must be unique and non-empty.
func (c *AttributeCatalog) Add(def *AttributeDefinition) error {
	if def == nil || def.Key == "" {
		return fmt.Errorf("attribute definition without key")
	}
	if _, ok := c.byKey[def.Key]; ok {
		return fmt.Errorf("attribute %q already in catalog", def.Key)
	}
	c.byKey[def.Key] = def
	c.order = append(c.order, def)
	return nil
}

// Lookup returns the canonical definition instance for key.
func (c *AttributeCatalog) Lookup(key string) (*AttributeDefinition, bool) {
	def, ok := c.byKey[key]
	return def, ok
}

// MustLookup is Lookup for keys known at compile time. Panics on a missing key.
func (c *AttributeCatalog) MustLookup(key string) *AttributeDefinition {
	def, ok := c.byKey[key]
	if !ok {
		panic(fmt.Sprintf("attribute %q not in catalog", key))
	}
	return def
}

// All returns definitions in registration order.
func (c *AttributeCatalog) All() []*AttributeDefinition {
	out := make([]*AttributeDefinition, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of definitions.
func (c *AttributeCatalog) Len() int {
	return len(c.order)
}

// AttributeBinding is a (definition, value) pair owned by a single AttributeSet.
type AttributeBinding struct {
	Definition *AttributeDefinition
	Value      float32
}

// AttributeSet holds bindings in insertion order, at most one per definition.
// Used for monster stats and for map entry requirements.
type AttributeSet struct {
	bindings []*AttributeBinding
	index    map[*AttributeDefinition]int
}

// Add appends a binding. A second binding for the same definition is rejected
// with ErrDuplicateAttribute.
func (s *AttributeSet) Add(b *AttributeBinding) error {
	if b == nil || b.Definition == nil {
		return fmt.Errorf("binding without definition")
	}
	if s.index == nil {
		s.index = make(map[*AttributeDefinition]int, 8)
	}
	if _, ok := s.index[b.Definition]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAttribute, b.Definition.Key)
	}
	s.index[b.Definition] = len(s.bindings)
	s.bindings = append(s.bindings, b)
	return nil
}

// Value returns the value bound to def (looked up by identity).
func (s *AttributeSet) Value(def *AttributeDefinition) (float32, bool) {
	i, ok := s.index[def]
	if !ok {
		return 0, false
	}
	return s.bindings[i].Value, true
}

// Binding returns the binding for def, or nil.
func (s *AttributeSet) Binding(def *AttributeDefinition) *AttributeBinding {
	i, ok := s.index[def]
	if !ok {
		return nil
	}
	return s.bindings[i]
}

// Has reports whether def is bound.
func (s *AttributeSet) Has(def *AttributeDefinition) bool {
	_, ok := s.index[def]
	return ok
}

// All returns a copy of the bindings in insertion order.
func (s *AttributeSet) All() []*AttributeBinding {
	out := make([]*AttributeBinding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// Len returns the number of bindings.
func (s *AttributeSet) Len() int {
	return len(s.bindings)
}

// AttributeValue is an unresolved (key, value) input pair, as authored in content.
// Slices of AttributeValue keep the author's order, unlike Go maps.
type AttributeValue struct {
	Key   string
	Value float32
}
