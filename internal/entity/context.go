// Package entity is the single origin of seeded domain objects.
//
// Every template, binding and spawn area is created through New, which hands
// the fresh instance to a Tracker. The tracker assigns an identity and keeps
// creation order so the host persistence layer can later find everything that
// was created during a seed run.
package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Tracker records newly created entities.
type Tracker interface {
	Track(v any) uuid.UUID
}

// New allocates a zero T, registers it with t and returns it.
// Creation never fails; business validation is the caller's job.
func New[T any](t Tracker) *T {
	v := new(T)
	t.Track(v)
	return v
}

// Record describes one tracked entity.
type Record struct {
	ID    uuid.UUID
	Seq   uint32 // per-kind sequence, starting at 1
	Kind  string
	Value any
}

// Context is the default Tracker. Not safe for concurrent use: a seed run
// owns its context exclusively.
type Context struct {
	records []Record
	byValue map[any]int
	seq     map[string]uint32
	newID   func() uuid.UUID
}

// Option configures a Context.
type Option func(*Context)

// WithIDSource overrides identity generation (tests, deterministic seeds).
func WithIDSource(fn func() uuid.UUID) Option {
	return func(c *Context) {
		c.newID = fn
	}
}

// WithNamespace derives deterministic ids from namespace and creation order,
// so that re-running the same seed yields the same identities.
func WithNamespace(namespace uuid.UUID) Option {
	return func(c *Context) {
		n := 0
		c.newID = func() uuid.UUID {
			n++
			return uuid.NewSHA1(namespace, fmt.Appendf(nil, "%d", n))
		}
	}
}

// NewContext creates an empty Context.
func NewContext(opts ...Option) *Context {
	c := &Context{
		records: make([]Record, 0, 1024),
		byValue: make(map[any]int, 1024),
		seq:     make(map[string]uint32, 8),
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Track implements Tracker. Tracking the same pointer twice returns the
// identity assigned the first time.
func (c *Context) Track(v any) uuid.UUID {
	if i, ok := c.byValue[v]; ok {
		return c.records[i].ID
	}
	kind := fmt.Sprintf("%T", v)
	c.seq[kind]++
	rec := Record{
		ID:    c.newID(),
		Seq:   c.seq[kind],
		Kind:  kind,
		Value: v,
	}
	c.byValue[v] = len(c.records)
	c.records = append(c.records, rec)
	return rec.ID
}

// IDOf returns the identity assigned to v.
func (c *Context) IDOf(v any) (uuid.UUID, bool) {
	i, ok := c.byValue[v]
	if !ok {
		return uuid.Nil, false
	}
	return c.records[i].ID, true
}

// IsTracked reports whether v was created through this context.
func (c *Context) IsTracked(v any) bool {
	_, ok := c.byValue[v]
	return ok
}

// Created returns all records in creation order.
func (c *Context) Created() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Count returns how many entities of kind (as printed by %T, e.g.
// "*model.MonsterTemplate") were created.
func (c *Context) Count(kind string) int {
	return int(c.seq[kind])
}

// Len returns the number of tracked entities.
func (c *Context) Len() int {
	return len(c.records)
}

// CountOf returns how many *T entities were created.
func CountOf[T any](c *Context) int {
	return c.Count(fmt.Sprintf("%T", (*T)(nil)))
}
