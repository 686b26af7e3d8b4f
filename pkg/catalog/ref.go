package catalog

type refVariant uint8

const (
	refNone refVariant = iota
	refID
	refObject
	refItem
)

// Ref points at an entity in one of three ways: by bare id, by a raw API
// object, or by an entity that already exists. The zero Ref is invalid.
type Ref struct {
	variant refVariant
	id      string
	obj     Object
	item    Item
}

// ByID refers to an entity by its identifier.
func ByID(id string) Ref { return Ref{variant: refID, id: id} }

// FromObject refers to an entity by a raw API object. Wrapped shapes such as
// saved-item and playlist entries ({"track": {...}, "added_at": ...}) are
// accepted.
func FromObject(obj Object) Ref { return Ref{variant: refObject, obj: obj} }

// FromItem refers to an existing entity.
func FromItem(item Item) Ref { return Ref{variant: refItem, item: item} }

// RefsByID converts ids to refs.
func RefsByID(ids ...string) []Ref {
	refs := make([]Ref, len(ids))
	for i, id := range ids {
		refs[i] = ByID(id)
	}
	return refs
}

// RefsFromObjects converts raw objects to refs.
func RefsFromObjects(objs []Object) []Ref {
	refs := make([]Ref, len(objs))
	for i, obj := range objs {
		refs[i] = FromObject(obj)
	}
	return refs
}

// ID returns the identifier the ref points at.
func (r Ref) ID() (string, error) {
	switch r.variant {
	case refID:
		if r.id == "" {
			return "", invalid("ref", "no ID provided")
		}
		return r.id, nil
	case refObject:
		if r.obj == nil {
			return "", invalid("ref", "invalid data")
		}
		obj := r.obj
		if objectID(obj) == "" {
			for _, key := range wrapperKeys {
				if inner, ok := obj[key].(map[string]any); ok {
					obj = inner
					break
				}
			}
		}
		id := objectID(obj)
		if id == "" {
			return "", invalid("ref", "no ID provided")
		}
		return id, nil
	case refItem:
		if r.item == nil || r.item.entity() == nil {
			return "", invalid("ref", "invalid data")
		}
		return r.item.ID(), nil
	}
	return "", invalid("ref", "invalid data")
}

var wrapperKeys = []string{"track", "album", "show", "episode"}

// unwrap strips a saved-item or playlist-entry wrapper. The returned object
// carries the wrapper's side-car fields when the inner object lacks them.
func unwrap(s *schema, obj Object) Object {
	if objectID(obj) != "" {
		return obj
	}
	keys := []string{string(s.kind)}
	if s.kind == KindEpisode {
		// playlist entries hold episodes under "track"
		keys = append(keys, "track")
	}
	for _, key := range keys {
		inner, ok := obj[key].(map[string]any)
		if !ok {
			continue
		}
		merged := make(Object, len(inner)+len(s.sidecar))
		for k, v := range inner {
			merged[k] = v
		}
		for _, k := range s.sidecar {
			if _, present := merged[k]; present {
				continue
			}
			if v, ok := obj[k]; ok {
				merged[k] = v
			}
		}
		return merged
	}
	return obj
}
