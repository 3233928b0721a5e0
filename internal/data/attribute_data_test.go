package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttributeCatalog(t *testing.T) {
	c := NewAttributeCatalog()
	require.Equal(t, len(attributeDefs), c.Len())

	level, ok := c.Lookup(StatLevel)
	require.True(t, ok)
	assert.Equal(t, "Level", level.Designation)

	again, _ := c.Lookup(StatLevel)
	assert.Same(t, level, again)
}

func TestNewAttributeCatalog_FreshInstances(t *testing.T) {
	a := NewAttributeCatalog()
	b := NewAttributeCatalog()

	// Separate catalogs never share definitions.
	assert.NotSame(t, a.MustLookup(StatLevel), b.MustLookup(StatLevel))
}
