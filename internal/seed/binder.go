package seed

import (
	"github.com/udisondev/worldseed/internal/entity"
	"github.com/udisondev/worldseed/internal/model"
)

// Binder resolves authored (key, value) pairs into bindings that reference
// the catalog's own definition instances.
type Binder struct {
	catalog *model.AttributeCatalog
}

// NewBinder creates a Binder over catalog.
func NewBinder(catalog *model.AttributeCatalog) *Binder {
	return &Binder{catalog: catalog}
}

// Catalog returns the catalog used for resolution.
func (b *Binder) Catalog() *model.AttributeCatalog {
	return b.catalog
}

// Bind creates one binding per value, in input order, and appends it to set.
//
// Every key is resolved before anything is created, so a failure leaves set
// untouched. Unknown keys fail with ErrUnresolvedAttribute; a key repeated in
// values, or already present in set, fails with ErrDuplicateAttribute.
func (b *Binder) Bind(t entity.Tracker, set *model.AttributeSet, values []model.AttributeValue) error {
	defs := make([]*model.AttributeDefinition, len(values))
	seen := make(map[*model.AttributeDefinition]struct{}, len(values))

	for i, v := range values {
		def, ok := b.catalog.Lookup(v.Key)
		if !ok {
			return &AttributeError{Key: v.Key, Err: ErrUnresolvedAttribute}
		}
		if _, dup := seen[def]; dup || set.Has(def) {
			return &AttributeError{Key: v.Key, Err: ErrDuplicateAttribute}
		}
		seen[def] = struct{}{}
		defs[i] = def
	}

	for i, v := range values {
		binding := entity.New[model.AttributeBinding](t)
		binding.Definition = defs[i]
		binding.Value = v.Value
		if err := set.Add(binding); err != nil {
			return &AttributeError{Key: v.Key, Err: err}
		}
	}
	return nil
}
