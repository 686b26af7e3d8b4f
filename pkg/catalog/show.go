package catalog

import (
	"context"
)

// Show is a podcast show. Its full object embeds the first page of episodes.
type Show struct{ *Entity }

func wrapShow(e *Entity) *Show { return &Show{e} }

// NewShow returns a show built from r.
func NewShow(r Ref) (*Show, error) {
	e, err := entityFromRef(showSchema, r)
	if err != nil {
		return nil, err
	}
	return wrapShow(e), nil
}

// RetrieveFullObject fetches the full show and loads it, replacing stale fields.
func (s *Show) RetrieveFullObject(ctx context.Context, c ShowAPI) error {
	return s.retrieve(ctx, TierFull, func(ctx context.Context, id string) (Object, error) {
		return c.GetShow(ctx, id, Options{})
	})
}

// GetFullObject returns the full show, fetching it only when a field is missing.
func (s *Show) GetFullObject(ctx context.Context, c ShowAPI) (Object, error) {
	return s.hydrate(ctx, TierFull, func(ctx context.Context) error { return s.RetrieveFullObject(ctx, c) })
}

// GetSimplifiedObject returns the simplified show. A missing field triggers a full fetch.
func (s *Show) GetSimplifiedObject(ctx context.Context, c ShowAPI) (Object, error) {
	return s.hydrate(ctx, TierSimplified, func(ctx context.Context) error { return s.RetrieveFullObject(ctx, c) })
}

// GetEpisodes returns one page of the show's episodes.
func (s *Show) GetEpisodes(ctx context.Context, c ShowAPI, opts Options) (*Episodes, error) {
	page, err := c.GetShowEpisodes(ctx, s.id, opts)
	if err != nil {
		return nil, err
	}
	out := newEpisodes()
	return out, out.pushObjects(s.withShow(page.Items))
}

// GetAllEpisodes pages through every episode of the show.
func (s *Show) GetAllEpisodes(ctx context.Context, c ShowAPI) (*Episodes, error) {
	items, err := s.allEpisodes(ctx, c)
	if err != nil {
		return nil, err
	}
	out := newEpisodes()
	return out, out.pushObjects(items)
}

func (s *Show) allEpisodes(ctx context.Context, c ShowAPI) ([]Object, error) {
	items, err := collectPages(ctx, Options{}, PageSize, func(ctx context.Context, opts Options) (Page, error) {
		return c.GetShowEpisodes(ctx, s.id, opts)
	})
	if err != nil {
		return nil, err
	}
	return s.withShow(items), nil
}

// withShow attaches the show to episodes listed under it.
func (s *Show) withShow(items []Object) []Object {
	show := s.Snapshot(TierSimplified)
	out := make([]Object, len(items))
	for i, item := range items {
		cp := make(Object, len(item)+1)
		for k, v := range item {
			cp[k] = v
		}
		if !identified(cp["show"]) {
			cp["show"] = show
		}
		out[i] = cp
	}
	return out
}

// Like saves the show to the user's library.
func (s *Show) Like(ctx context.Context, c ShowAPI) error {
	return c.AddToMySavedShows(ctx, []string{s.id})
}

// Unlike removes the show from the user's library.
func (s *Show) Unlike(ctx context.Context, c ShowAPI) error {
	return c.RemoveFromMySavedShows(ctx, []string{s.id})
}

// IsLiked reports whether the show is in the user's library.
func (s *Show) IsLiked(ctx context.Context, c ShowAPI) (bool, error) {
	res, err := c.ContainsMySavedShows(ctx, []string{s.id})
	if err != nil {
		return false, err
	}
	return len(res) > 0 && res[0], nil
}

// Play starts playback of the show.
func (s *Show) Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	opts.URIs = nil
	opts.ContextURI = s.URI()
	return c.Play(ctx, opts)
}

// Shows is an ordered collection of shows.
type Shows struct{ *Collection[*Show] }

func newShows() *Shows { return &Shows{newCollection(showSchema, wrapShow)} }

// NewShows returns a collection of the refs in order.
func NewShows(refs ...Ref) (*Shows, error) {
	ss := newShows()
	if err := ss.PushAll(refs...); err != nil {
		return nil, err
	}
	return ss, nil
}

// Filter returns a new collection of the members for which keep returns true.
func (ss *Shows) Filter(keep func(*Show) bool) (*Shows, error) {
	c, err := ss.filter(keep)
	if err != nil {
		return nil, err
	}
	return &Shows{c}, nil
}

// Clone returns a copy of the collection sharing its entities.
func (ss *Shows) Clone() *Shows { return &Shows{ss.clone()} }

// FuzzyFind returns the distinct members whose name matches query, best match
// first.
func (ss *Shows) FuzzyFind(query string) *Shows { return &Shows{ss.fuzzyFind(query)} }

func fetchShows(c ShowAPI) bulkFetch {
	return func(ctx context.Context, ids []string) ([]Object, error) {
		return c.GetShows(ctx, ids, Options{})
	}
}

// RetrieveFullObjects fetches the full object of every member lacking one, in batches.
func (ss *Shows) RetrieveFullObjects(ctx context.Context, c ShowAPI) error {
	return ss.resolve(ctx, TierFull, TierFull, fetchShows(c))
}

// GetFullObjects returns the full object of every position, fetching only what is
// missing.
func (ss *Shows) GetFullObjects(ctx context.Context, c ShowAPI) ([]Object, error) {
	if err := ss.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return ss.snapshots(TierFull), nil
}

// GetSimplifiedObjects returns the simplified object of every position.
func (ss *Shows) GetSimplifiedObjects(ctx context.Context, c ShowAPI) ([]Object, error) {
	if err := ss.resolve(ctx, TierSimplified, TierFull, fetchShows(c)); err != nil {
		return nil, err
	}
	return ss.snapshots(TierSimplified), nil
}

// SortSafe returns the distinct members ordered by the value at path,
// resolving full objects first when path needs them.
func (ss *Shows) SortSafe(ctx context.Context, c ShowAPI, dir Direction, path string) (*Shows, error) {
	out, err := ss.sortSafe(ctx, dir, path, fetchShows(c))
	if err != nil {
		return nil, err
	}
	return &Shows{out}, nil
}

// GetAllEpisodes pages through the episodes of every show.
func (ss *Shows) GetAllEpisodes(ctx context.Context, c ShowAPI) (*Episodes, error) {
	items, err := gatherPages(ctx, ss.Collection, func(ctx context.Context, s *Show) ([]Object, error) {
		return s.allEpisodes(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := newEpisodes()
	return out, out.pushObjects(items)
}

// LikeAll saves every distinct member to the user's library.
func (ss *Shows) LikeAll(ctx context.Context, c ShowAPI) error {
	return ss.apply(ctx, c.AddToMySavedShows)
}

// UnlikeAll removes every distinct member from the user's library.
func (ss *Shows) UnlikeAll(ctx context.Context, c ShowAPI) error {
	return ss.apply(ctx, c.RemoveFromMySavedShows)
}

// AreLiked reports, per id, whether the member is in the user's library.
func (ss *Shows) AreLiked(ctx context.Context, c ShowAPI) (map[string]bool, error) {
	return ss.flags(ctx, c.ContainsMySavedShows)
}

// GetShows fetches the full shows for ids.
func GetShows(ctx context.Context, c ShowAPI, ids ...string) (*Shows, error) {
	ss, err := NewShows(RefsByID(ids...)...)
	if err != nil {
		return nil, err
	}
	if err := ss.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return ss, nil
}
