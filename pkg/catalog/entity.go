package catalog

import (
	"context"
	"sync"
)

// Item is implemented by every entity kind.
type Item interface {
	ID() string
	Kind() Kind
	URI() string
	entity() *Entity
}

// Entity holds the fields known about one catalog object. A field that is
// absent has not been fetched yet; a present field may hold JSON null.
// Entities are safe for concurrent use.
type Entity struct {
	schema *schema
	id     string

	mu     sync.RWMutex
	fields Object
}

// newEntity returns an entity holding only its id and, for kinds whose
// objects carry one, the implied type field.
func newEntity(s *schema, id string) *Entity {
	e := &Entity{schema: s, id: id, fields: Object{"id": id}}
	if s.known("type") {
		e.fields["type"] = string(s.kind)
	}
	return e
}

// entityFromObject copies every schema field present in obj. Unknown fields
// are ignored.
func entityFromObject(s *schema, obj Object) (*Entity, error) {
	op := "new " + string(s.kind)
	if obj == nil {
		return nil, invalid(op, "invalid data")
	}
	if t, _ := obj["type"].(string); t != "" && t != string(s.kind) {
		return nil, invalid(op, "object of type %q", t)
	}
	id := objectID(obj)
	if id == "" {
		return nil, invalid(op, "no ID provided")
	}
	e := newEntity(s, id)
	for _, k := range s.fields {
		if v, ok := obj[k]; ok {
			e.fields[k] = deepCopy(v)
		}
	}
	for _, k := range s.sidecar {
		if v, ok := obj[k]; ok {
			e.fields[k] = deepCopy(v)
		}
	}
	e.fields["id"] = id
	if s.known("type") {
		e.fields["type"] = string(s.kind)
	}
	return e, nil
}

func entityFromRef(s *schema, r Ref) (*Entity, error) {
	op := "new " + string(s.kind)
	switch r.variant {
	case refID:
		if r.id == "" {
			return nil, invalid(op, "no ID provided")
		}
		return newEntity(s, r.id), nil
	case refObject:
		return entityFromObject(s, unwrap(s, r.obj))
	case refItem:
		if r.item == nil || r.item.entity() == nil {
			return nil, invalid(op, "invalid data")
		}
		if r.item.Kind() != s.kind {
			return nil, invalid(op, "cannot build from a %s", r.item.Kind())
		}
		src := r.item.entity()
		src.mu.RLock()
		defer src.mu.RUnlock()
		e := newEntity(s, src.id)
		for k, v := range src.fields {
			e.fields[k] = deepCopy(v)
		}
		return e, nil
	}
	return nil, invalid(op, "invalid data")
}

func (e *Entity) entity() *Entity { return e }

// ID returns the identifier. Local items use their uri.
func (e *Entity) ID() string { return e.id }

// Kind returns the entity kind.
func (e *Entity) Kind() Kind { return e.schema.kind }

// URI returns the uri field when known and spotify:<kind>:<id> otherwise.
func (e *Entity) URI() string {
	if uri := str(e.value("uri")); uri != "" {
		return uri
	}
	return "spotify:" + string(e.schema.kind) + ":" + e.id
}

// Name returns the name, or the display name for users.
func (e *Entity) Name() string {
	if name := str(e.value("name")); name != "" {
		return name
	}
	return str(e.value("display_name"))
}

// IsLocal reports whether the item is hosted on the user's device.
func (e *Entity) IsLocal() bool {
	local, _ := e.value("is_local").(bool)
	return local
}

// Get returns a copy of a top-level field. The second result is false when
// the field has not been fetched.
func (e *Entity) Get(field string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.fields[field]
	return deepCopy(v), ok
}

// Lookup returns a copy of the value at a dotted path such as "album.name".
func (e *Entity) Lookup(path string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := lookupPath(e.fields, path)
	return deepCopy(v), ok
}

func (e *Entity) value(field string) any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fields[field]
}

func (e *Entity) set(field string, v any) {
	e.mu.Lock()
	e.fields[field] = v
	e.mu.Unlock()
}

// Contains reports whether every field of tier t is present. Unknown tiers
// are never satisfied.
func (e *Entity) Contains(t Tier) bool {
	keys, ok := e.schema.tier(t)
	if !ok {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, k := range keys {
		if _, ok := e.fields[k]; !ok {
			return false
		}
	}
	return true
}

// ContainsFullObject reports whether the full tier is loaded.
func (e *Entity) ContainsFullObject() bool { return e.Contains(TierFull) }

// ContainsSimplifiedObject reports whether the simplified tier is loaded.
func (e *Entity) ContainsSimplifiedObject() bool { return e.Contains(TierSimplified) }

// Load overwrites the fields of tier t with obj. Tier fields missing from obj
// are cleared; fields outside the tier are kept.
func (e *Entity) Load(t Tier, obj Object) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if key, ok := e.schema.nested[t]; ok {
		e.fields[key] = deepCopy(obj)
		return
	}
	keys, ok := e.schema.tier(t)
	if !ok {
		return
	}
	for _, k := range keys {
		if k == "id" || k == "type" {
			continue
		}
		if v, present := obj[k]; present {
			e.fields[k] = deepCopy(v)
		} else {
			delete(e.fields, k)
		}
	}
	for _, k := range e.schema.sidecar {
		if v, present := obj[k]; present {
			e.fields[k] = deepCopy(v)
		}
	}
}

// LoadFullObject loads obj as the full tier.
func (e *Entity) LoadFullObject(obj Object) { e.Load(TierFull, obj) }

// LoadSimplifiedObject loads obj as the simplified tier.
func (e *Entity) LoadSimplifiedObject(obj Object) { e.Load(TierSimplified, obj) }

// Snapshot returns a detached copy of the fields of tier t tagged with the
// kind. Nested tiers return the stored sub-object.
func (e *Entity) Snapshot(t Tier) Object {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if key, ok := e.schema.nested[t]; ok {
		sub, _ := deepCopy(e.fields[key]).(map[string]any)
		return sub
	}
	out := Object{}
	keys, _ := e.schema.tier(t)
	for _, k := range keys {
		if v, ok := e.fields[k]; ok {
			out[k] = deepCopy(v)
		}
	}
	out["type"] = string(e.schema.kind)
	return out
}

// CurrentData returns a detached copy of every known field.
func (e *Entity) CurrentData() Object {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(Object, len(e.fields)+1)
	for k, v := range e.fields {
		out[k] = deepCopy(v)
	}
	out["type"] = string(e.schema.kind)
	return out
}

// hydrate runs retrieve when tier t is incomplete and returns its snapshot.
// Local items are never retrieved.
func (e *Entity) hydrate(ctx context.Context, t Tier, retrieve func(context.Context) error) (Object, error) {
	if !e.Contains(t) && !e.IsLocal() {
		if err := retrieve(ctx); err != nil {
			return nil, err
		}
	}
	return e.Snapshot(t), nil
}

// retrieve performs one single-entity request and loads the result into
// tier t. Local items are skipped.
func (e *Entity) retrieve(ctx context.Context, t Tier, fetch func(ctx context.Context, id string) (Object, error)) error {
	if e.IsLocal() {
		return nil
	}
	obj, err := fetch(ctx, e.id)
	if err != nil {
		return err
	}
	e.Load(t, obj)
	return nil
}
