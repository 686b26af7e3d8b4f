package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction selects ascending or descending order.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// sortSafe returns a new collection of the distinct members ordered by the
// value at path. When the top-level field belongs to the full tier the full
// objects are resolved first; otherwise every member must already hold the
// field.
func (c *Collection[E]) sortSafe(ctx context.Context, dir Direction, path string, fetch bulkFetch) (*Collection[E], error) {
	if dir != Ascending && dir != Descending {
		return nil, invalid("sortSafe", "direction must be 1 or -1, got %d", dir)
	}
	if path == "" {
		return nil, invalid("sortSafe", "no field provided")
	}
	top, _, _ := strings.Cut(path, ".")
	if fetch != nil && c.schema.inTier(TierFull, top) {
		if err := c.resolve(ctx, TierFull, TierFull, fetch); err != nil {
			return nil, err
		}
	}
	items := c.Unique()
	values := make(map[string]any, len(items))
	for _, item := range items {
		v, ok := item.entity().Lookup(path)
		if !ok {
			return nil, invalid("sortSafe", "%s %s has no field %q", c.schema.kind, item.ID(), path)
		}
		values[item.ID()] = v
	}
	col := collate.New(language.Und)
	slices.SortStableFunc(items, func(a, b E) int {
		return int(dir) * compareValues(col, values[a.ID()], values[b.ID()])
	})
	out := c.empty()
	for _, item := range items {
		out.add(item)
	}
	return out, nil
}

// compareValues compares strings with the collator and numbers by
// difference. Nulls sort first; other values compare by their text.
func compareValues(col *collate.Collator, a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return col.CompareString(as, bs)
		}
	}
	if an, ok := number(a); ok {
		if bn, ok := number(b); ok {
			switch d := an - bn; {
			case d < 0:
				return -1
			case d > 0:
				return 1
			}
			return 0
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			}
			return 1
		}
	}
	return col.CompareString(fmt.Sprint(a), fmt.Sprint(b))
}
