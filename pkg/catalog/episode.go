package catalog

import (
	"context"
)

// Episode is a podcast episode.
type Episode struct{ *Entity }

func wrapEpisode(e *Entity) *Episode { return &Episode{e} }

// NewEpisode returns a episode built from r.
func NewEpisode(r Ref) (*Episode, error) {
	e, err := entityFromRef(episodeSchema, r)
	if err != nil {
		return nil, err
	}
	return wrapEpisode(e), nil
}

// RetrieveFullObject fetches the full episode. It is a no-op for local
// episodes.
func (e *Episode) RetrieveFullObject(ctx context.Context, c EpisodeAPI) error {
	return e.retrieve(ctx, TierFull, func(ctx context.Context, id string) (Object, error) {
		return c.GetEpisode(ctx, id, Options{})
	})
}

// GetFullObject returns the full episode, fetching it only when a field is missing.
func (e *Episode) GetFullObject(ctx context.Context, c EpisodeAPI) (Object, error) {
	return e.hydrate(ctx, TierFull, func(ctx context.Context) error { return e.RetrieveFullObject(ctx, c) })
}

// GetSimplifiedObject returns the simplified episode. A missing field triggers a full fetch.
func (e *Episode) GetSimplifiedObject(ctx context.Context, c EpisodeAPI) (Object, error) {
	return e.hydrate(ctx, TierSimplified, func(ctx context.Context) error { return e.RetrieveFullObject(ctx, c) })
}

// GetShow returns the show the episode belongs to, or nil when unknown.
func (e *Episode) GetShow(ctx context.Context, c EpisodeAPI) (*Show, error) {
	if !identified(e.value("show")) {
		if err := e.RetrieveFullObject(ctx, c); err != nil {
			return nil, err
		}
	}
	return e.show()
}

func (e *Episode) show() (*Show, error) {
	obj := e.value("show")
	if !identified(obj) {
		return nil, nil
	}
	return NewShow(FromObject(obj.(map[string]any)))
}

// Like saves the episode to the user's library.
func (e *Episode) Like(ctx context.Context, c EpisodeAPI) error {
	return c.AddToMySavedEpisodes(ctx, []string{e.id})
}

// Unlike removes the episode from the user's library.
func (e *Episode) Unlike(ctx context.Context, c EpisodeAPI) error {
	return c.RemoveFromMySavedEpisodes(ctx, []string{e.id})
}

// IsLiked reports whether the episode is in the user's library.
func (e *Episode) IsLiked(ctx context.Context, c EpisodeAPI) (bool, error) {
	res, err := c.ContainsMySavedEpisodes(ctx, []string{e.id})
	if err != nil {
		return false, err
	}
	return len(res) > 0 && res[0], nil
}

// Play starts playback of the episode.
func (e *Episode) Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	opts.ContextURI = ""
	opts.URIs = []string{e.URI()}
	return c.Play(ctx, opts)
}

// Episodes is an ordered collection of episodes.
type Episodes struct{ *Collection[*Episode] }

func newEpisodes() *Episodes { return &Episodes{newCollection(episodeSchema, wrapEpisode)} }

// NewEpisodes returns a collection of the refs in order.
func NewEpisodes(refs ...Ref) (*Episodes, error) {
	es := newEpisodes()
	if err := es.PushAll(refs...); err != nil {
		return nil, err
	}
	return es, nil
}

// Filter returns a new collection of the members for which keep returns true.
func (es *Episodes) Filter(keep func(*Episode) bool) (*Episodes, error) {
	c, err := es.filter(keep)
	if err != nil {
		return nil, err
	}
	return &Episodes{c}, nil
}

// Clone returns a copy of the collection sharing its entities.
func (es *Episodes) Clone() *Episodes { return &Episodes{es.clone()} }

// FuzzyFind returns the distinct members whose name matches query, best match
// first.
func (es *Episodes) FuzzyFind(query string) *Episodes { return &Episodes{es.fuzzyFind(query)} }

func fetchEpisodes(c EpisodeAPI) bulkFetch {
	return func(ctx context.Context, ids []string) ([]Object, error) {
		return c.GetEpisodes(ctx, ids, Options{})
	}
}

// RetrieveFullObjects fetches the full object of every member lacking one, in batches.
func (es *Episodes) RetrieveFullObjects(ctx context.Context, c EpisodeAPI) error {
	return es.resolve(ctx, TierFull, TierFull, fetchEpisodes(c))
}

// GetFullObjects returns the full object of every position, fetching only what is
// missing.
func (es *Episodes) GetFullObjects(ctx context.Context, c EpisodeAPI) ([]Object, error) {
	if err := es.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return es.snapshots(TierFull), nil
}

// GetSimplifiedObjects returns the simplified object of every position.
func (es *Episodes) GetSimplifiedObjects(ctx context.Context, c EpisodeAPI) ([]Object, error) {
	if err := es.resolve(ctx, TierSimplified, TierFull, fetchEpisodes(c)); err != nil {
		return nil, err
	}
	return es.snapshots(TierSimplified), nil
}

// SortSafe returns the distinct members ordered by the value at path,
// resolving full objects first when path needs them.
func (es *Episodes) SortSafe(ctx context.Context, c EpisodeAPI, dir Direction, path string) (*Episodes, error) {
	out, err := es.sortSafe(ctx, dir, path, fetchEpisodes(c))
	if err != nil {
		return nil, err
	}
	return &Episodes{out}, nil
}

// GetShows returns the show of every episode.
func (es *Episodes) GetShows(ctx context.Context, c EpisodeAPI) (*Shows, error) {
	if err := es.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	out := newShows()
	for _, e := range es.Unique() {
		s, err := e.show()
		if err != nil {
			return nil, err
		}
		if s != nil {
			out.add(s)
		}
	}
	return out, nil
}

// LikeAll saves every distinct member to the user's library.
func (es *Episodes) LikeAll(ctx context.Context, c EpisodeAPI) error {
	return es.apply(ctx, c.AddToMySavedEpisodes)
}

// UnlikeAll removes every distinct member from the user's library.
func (es *Episodes) UnlikeAll(ctx context.Context, c EpisodeAPI) error {
	return es.apply(ctx, c.RemoveFromMySavedEpisodes)
}

// AreLiked reports, per id, whether the member is in the user's library.
func (es *Episodes) AreLiked(ctx context.Context, c EpisodeAPI) (map[string]bool, error) {
	return es.flags(ctx, c.ContainsMySavedEpisodes)
}

// Play plays the episodes in collection order.
func (es *Episodes) Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	if es.Size() == 0 {
		return invalid("play", "no episodes")
	}
	opts.ContextURI = ""
	opts.URIs = es.URIs()
	return c.Play(ctx, opts)
}

// GetEpisodes fetches the full episodes for ids.
func GetEpisodes(ctx context.Context, c EpisodeAPI, ids ...string) (*Episodes, error) {
	es, err := NewEpisodes(RefsByID(ids...)...)
	if err != nil {
		return nil, err
	}
	if err := es.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return es, nil
}
