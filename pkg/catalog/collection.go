package catalog

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// Collection is an ordered registry of entities of one kind. Every id is
// stored once in the registry while the order may reference it several
// times; duplicate positions share a single entity. A Collection is not safe
// for concurrent mutation.
type Collection[E Item] struct {
	schema  *schema
	wrap    func(*Entity) E
	members map[string]E
	order   []string
}

func newCollection[E Item](s *schema, wrap func(*Entity) E) *Collection[E] {
	return &Collection[E]{schema: s, wrap: wrap, members: make(map[string]E)}
}

func (c *Collection[E]) empty() *Collection[E] {
	return newCollection(c.schema, c.wrap)
}

// normalize turns a ref into an entity of this collection's kind. Existing
// entities of the same kind are kept as they are.
func (c *Collection[E]) normalize(r Ref) (E, error) {
	var zero E
	op := "push " + string(c.schema.kind)
	switch r.variant {
	case refItem:
		if r.item == nil || r.item.entity() == nil {
			return zero, invalid(op, "invalid data")
		}
		if e, ok := r.item.(E); ok {
			return e, nil
		}
		if r.item.Kind() != c.schema.kind {
			return zero, invalid(op, "cannot add a %s", r.item.Kind())
		}
		return c.wrap(r.item.entity()), nil
	case refObject:
		if r.obj == nil {
			return zero, invalid(op, "invalid data")
		}
		ent, err := entityFromObject(c.schema, unwrap(c.schema, r.obj))
		if err != nil {
			return zero, err
		}
		return c.wrap(ent), nil
	case refID:
		ent, err := entityFromRef(c.schema, r)
		if err != nil {
			return zero, err
		}
		return c.wrap(ent), nil
	}
	return zero, invalid(op, "invalid data")
}

func (c *Collection[E]) add(item E) {
	id := item.ID()
	if _, ok := c.members[id]; !ok {
		c.members[id] = item
	}
	c.order = append(c.order, id)
}

// evict drops id from the registry once no position references it.
func (c *Collection[E]) evict(id string) {
	if !slices.Contains(c.order, id) {
		delete(c.members, id)
	}
}

// Push appends one entity. A known id is appended to the order again and
// resolves to the entity already stored.
func (c *Collection[E]) Push(r Ref) error {
	item, err := c.normalize(r)
	if err != nil {
		return err
	}
	c.add(item)
	return nil
}

// PushAll appends every ref. Nothing is added when any ref is invalid.
func (c *Collection[E]) PushAll(refs ...Ref) error {
	items := make([]E, 0, len(refs))
	for _, r := range refs {
		item, err := c.normalize(r)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	for _, item := range items {
		c.add(item)
	}
	return nil
}

// Concat appends every distinct member of other in its order.
func (c *Collection[E]) Concat(other *Collection[E]) {
	if other == nil {
		return
	}
	for _, id := range other.IDsNoRepeats() {
		c.add(other.members[id])
	}
}

// Remove deletes every occurrence of the referenced entity.
func (c *Collection[E]) Remove(r Ref) error {
	id, err := r.ID()
	if err != nil {
		return err
	}
	c.order = slices.DeleteFunc(c.order, func(v string) bool { return v == id })
	delete(c.members, id)
	return nil
}

// Pop removes and returns the last position.
func (c *Collection[E]) Pop() (E, bool) {
	var zero E
	if len(c.order) == 0 {
		return zero, false
	}
	id := c.order[len(c.order)-1]
	item := c.members[id]
	c.order = c.order[:len(c.order)-1]
	c.evict(id)
	return item, true
}

// Shift removes and returns the first position.
func (c *Collection[E]) Shift() (E, bool) {
	var zero E
	if len(c.order) == 0 {
		return zero, false
	}
	id := c.order[0]
	item := c.members[id]
	c.order = slices.Clone(c.order[1:])
	c.evict(id)
	return item, true
}

// Slice keeps positions [start, end) and drops the rest. Negative values
// count from the end and out of range values are clamped.
func (c *Collection[E]) Slice(start, end int) {
	n := len(c.order)
	start, end = clamp(start, n), clamp(end, n)
	if end < start {
		end = start
	}
	dropped := slices.Concat(c.order[:start], c.order[end:])
	c.order = slices.Clone(c.order[start:end])
	for _, id := range lo.Uniq(dropped) {
		c.evict(id)
	}
}

func clamp(i, n int) int {
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}

// Reverse reverses the order in place.
func (c *Collection[E]) Reverse() {
	slices.Reverse(c.order)
}

// Sort orders the distinct members with cmp. Duplicate positions collapse
// into one.
func (c *Collection[E]) Sort(cmp func(a, b E) int) error {
	if cmp == nil {
		return invalid("sort", "no compare function provided")
	}
	items := c.Unique()
	slices.SortStableFunc(items, cmp)
	c.order = lo.Map(items, func(item E, _ int) string { return item.ID() })
	return nil
}

func (c *Collection[E]) filter(keep func(E) bool) (*Collection[E], error) {
	if keep == nil {
		return nil, invalid("filter", "no filter function provided")
	}
	out := c.empty()
	for _, id := range c.order {
		if item := c.members[id]; keep(item) {
			out.add(item)
		}
	}
	return out, nil
}

// ForEach calls fn for every position.
func (c *Collection[E]) ForEach(fn func(i int, item E)) error {
	if fn == nil {
		return invalid("forEach", "no function provided")
	}
	for i, id := range c.order {
		fn(i, c.members[id])
	}
	return nil
}

// Get returns the entity at position i.
func (c *Collection[E]) Get(i int) (E, error) {
	var zero E
	if i < 0 || i >= len(c.order) {
		return zero, invalid("get", "index %d out of range [0, %d)", i, len(c.order))
	}
	return c.members[c.order[i]], nil
}

// IndexOf returns the first position at or after startAt holding the
// referenced entity, or -1.
func (c *Collection[E]) IndexOf(r Ref, startAt int) (int, error) {
	if startAt < 0 || (startAt > 0 && startAt >= len(c.order)) {
		return -1, invalid("indexOf", "start %d out of range [0, %d)", startAt, len(c.order))
	}
	id, err := r.ID()
	if err != nil {
		return -1, err
	}
	for i := startAt; i < len(c.order); i++ {
		if c.order[i] == id {
			return i, nil
		}
	}
	return -1, nil
}

// Includes reports whether the referenced entity is a member.
func (c *Collection[E]) Includes(r Ref) bool {
	id, err := r.ID()
	if err != nil {
		return false
	}
	_, ok := c.members[id]
	return ok
}

// Size returns the number of positions, counting duplicates.
func (c *Collection[E]) Size() int { return len(c.order) }

// IDs returns the ids in order, duplicates included.
func (c *Collection[E]) IDs() []string { return slices.Clone(c.order) }

// IDsNoRepeats returns the distinct ids in order of first appearance.
func (c *Collection[E]) IDsNoRepeats() []string { return lo.Uniq(c.order) }

// URIs returns the uri of every position.
func (c *Collection[E]) URIs() []string {
	return lo.Map(c.order, func(id string, _ int) string { return c.members[id].URI() })
}

// Items returns the entity at every position.
func (c *Collection[E]) Items() []E {
	return lo.Map(c.order, func(id string, _ int) E { return c.members[id] })
}

// Unique returns every distinct entity in order of first appearance.
func (c *Collection[E]) Unique() []E {
	return lo.Map(c.IDsNoRepeats(), func(id string, _ int) E { return c.members[id] })
}

// Member returns the entity stored under id.
func (c *Collection[E]) Member(id string) (E, bool) {
	item, ok := c.members[id]
	return item, ok
}

func (c *Collection[E]) clone() *Collection[E] {
	out := c.empty()
	for _, id := range c.order {
		out.add(c.members[id])
	}
	return out
}

// CurrentData returns the known fields of every position.
func (c *Collection[E]) CurrentData() []Object {
	return lo.Map(c.order, func(id string, _ int) Object { return c.members[id].entity().CurrentData() })
}

// fuzzyFind ranks the distinct members whose name matches query.
func (c *Collection[E]) fuzzyFind(query string) *Collection[E] {
	if strings.TrimSpace(query) == "" {
		return c.clone()
	}
	uniq := c.Unique()
	names := lo.Map(uniq, func(item E, _ int) string { return strings.ToLower(item.entity().Name()) })
	out := c.empty()
	for _, m := range fuzzy.Find(strings.ToLower(query), names) {
		out.add(uniq[m.Index])
	}
	return out
}

// missing lists the distinct members lacking tier t. Local items are never
// reported since they cannot be fetched.
func (c *Collection[E]) missing(t Tier) []string {
	var ids []string
	for _, id := range c.IDsNoRepeats() {
		e := c.members[id].entity()
		if !e.Contains(t) && !e.IsLocal() {
			ids = append(ids, id)
		}
	}
	return ids
}

// snapshots returns the tier snapshot of every position.
func (c *Collection[E]) snapshots(t Tier) []Object {
	return lo.Map(c.order, func(id string, _ int) Object { return c.members[id].entity().Snapshot(t) })
}

// pushObjects appends listing items. Items without an id and items of
// another kind, such as episodes in a playlist of tracks, are skipped.
func (c *Collection[E]) pushObjects(objs []Object) error {
	for _, obj := range objs {
		inner := unwrap(c.schema, obj)
		if objectID(inner) == "" {
			continue
		}
		if t, _ := inner["type"].(string); t != "" && t != string(c.schema.kind) {
			continue
		}
		if err := c.Push(FromObject(obj)); err != nil {
			return err
		}
	}
	return nil
}
