package catalog

import (
	"context"
)

// Category is a browse category. Its simplified and full objects are the
// same.
type Category struct{ *Entity }

func wrapCategory(e *Entity) *Category { return &Category{e} }

// NewCategory returns a category built from r.
func NewCategory(r Ref) (*Category, error) {
	e, err := entityFromRef(categorySchema, r)
	if err != nil {
		return nil, err
	}
	return wrapCategory(e), nil
}

// URI has no meaning for categories; the href is returned instead.
func (cat *Category) URI() string {
	if href := str(cat.value("href")); href != "" {
		return href
	}
	return "spotify:category:" + cat.id
}

func fetchCategory(c CategoryAPI) func(ctx context.Context, id string) (Object, error) {
	return func(ctx context.Context, id string) (Object, error) {
		return c.GetCategory(ctx, id, Options{})
	}
}

// RetrieveFullObject fetches the full category and loads it, replacing stale fields.
func (cat *Category) RetrieveFullObject(ctx context.Context, c CategoryAPI) error {
	return cat.retrieve(ctx, TierFull, fetchCategory(c))
}

// GetFullObject returns the full category, fetching it only when a field is missing.
func (cat *Category) GetFullObject(ctx context.Context, c CategoryAPI) (Object, error) {
	return cat.hydrate(ctx, TierFull, func(ctx context.Context) error { return cat.RetrieveFullObject(ctx, c) })
}

// GetSimplifiedObject returns the simplified category. A missing field triggers a full fetch.
func (cat *Category) GetSimplifiedObject(ctx context.Context, c CategoryAPI) (Object, error) {
	return cat.GetFullObject(ctx, c)
}

// GetPlaylists returns one page of the category's playlists.
func (cat *Category) GetPlaylists(ctx context.Context, c CategoryAPI, opts Options) (*Playlists, error) {
	page, err := c.GetCategoryPlaylists(ctx, cat.id, opts)
	if err != nil {
		return nil, err
	}
	out := newPlaylists()
	return out, out.pushObjects(page.Items)
}

// GetAllPlaylists pages through every playlist of the category.
func (cat *Category) GetAllPlaylists(ctx context.Context, c CategoryAPI) (*Playlists, error) {
	items, err := cat.allPlaylists(ctx, c)
	if err != nil {
		return nil, err
	}
	out := newPlaylists()
	return out, out.pushObjects(items)
}

func (cat *Category) allPlaylists(ctx context.Context, c CategoryAPI) ([]Object, error) {
	return collectPages(ctx, Options{}, PageSize, func(ctx context.Context, opts Options) (Page, error) {
		return c.GetCategoryPlaylists(ctx, cat.id, opts)
	})
}

// Categories is an ordered collection of categories.
type Categories struct{ *Collection[*Category] }

func newCategories() *Categories { return &Categories{newCollection(categorySchema, wrapCategory)} }

// NewCategories returns a collection of the refs in order.
func NewCategories(refs ...Ref) (*Categories, error) {
	cs := newCategories()
	if err := cs.PushAll(refs...); err != nil {
		return nil, err
	}
	return cs, nil
}

// Filter returns a new collection of the members for which keep returns true.
func (cs *Categories) Filter(keep func(*Category) bool) (*Categories, error) {
	c, err := cs.filter(keep)
	if err != nil {
		return nil, err
	}
	return &Categories{c}, nil
}

// Clone returns a copy of the collection sharing its entities.
func (cs *Categories) Clone() *Categories { return &Categories{cs.clone()} }

// FuzzyFind returns the distinct members whose name matches query, best match
// first.
func (cs *Categories) FuzzyFind(query string) *Categories { return &Categories{cs.fuzzyFind(query)} }

// RetrieveFullObjects fetches the full object of every member lacking one, in batches.
func (cs *Categories) RetrieveFullObjects(ctx context.Context, c CategoryAPI) error {
	return cs.resolve(ctx, TierFull, TierFull, perItem(fetchCategory(c)))
}

// GetFullObjects returns the full object of every position, fetching only what is
// missing.
func (cs *Categories) GetFullObjects(ctx context.Context, c CategoryAPI) ([]Object, error) {
	if err := cs.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return cs.snapshots(TierFull), nil
}

// GetSimplifiedObjects returns the simplified object of every position.
func (cs *Categories) GetSimplifiedObjects(ctx context.Context, c CategoryAPI) ([]Object, error) {
	return cs.GetFullObjects(ctx, c)
}

// SortSafe returns the distinct members ordered by the value at path,
// resolving full objects first when path needs them.
func (cs *Categories) SortSafe(ctx context.Context, c CategoryAPI, dir Direction, path string) (*Categories, error) {
	out, err := cs.sortSafe(ctx, dir, path, perItem(fetchCategory(c)))
	if err != nil {
		return nil, err
	}
	return &Categories{out}, nil
}

// GetAllPlaylists concatenates the playlists of every member, in member order.
func (cs *Categories) GetAllPlaylists(ctx context.Context, c CategoryAPI) (*Playlists, error) {
	items, err := gatherPages(ctx, cs.Collection, func(ctx context.Context, cat *Category) ([]Object, error) {
		return cat.allPlaylists(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := newPlaylists()
	return out, out.pushObjects(items)
}

// GetCategory fetches a category.
func GetCategory(ctx context.Context, c CategoryAPI, id string) (*Category, error) {
	cat, err := NewCategory(ByID(id))
	if err != nil {
		return nil, err
	}
	if err := cat.RetrieveFullObject(ctx, c); err != nil {
		return nil, err
	}
	return cat, nil
}
