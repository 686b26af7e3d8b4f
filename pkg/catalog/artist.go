package catalog

import (
	"context"
)

// Artist is a single artist.
type Artist struct{ *Entity }

func wrapArtist(e *Entity) *Artist { return &Artist{e} }

// NewArtist returns a artist built from r.
func NewArtist(r Ref) (*Artist, error) {
	e, err := entityFromRef(artistSchema, r)
	if err != nil {
		return nil, err
	}
	return wrapArtist(e), nil
}

// RetrieveFullObject fetches the full artist and loads it, replacing stale fields.
func (a *Artist) RetrieveFullObject(ctx context.Context, c ArtistAPI) error {
	return a.retrieve(ctx, TierFull, c.GetArtist)
}

// GetFullObject returns the full artist, fetching it only when a field is missing.
func (a *Artist) GetFullObject(ctx context.Context, c ArtistAPI) (Object, error) {
	return a.hydrate(ctx, TierFull, func(ctx context.Context) error { return a.RetrieveFullObject(ctx, c) })
}

// GetSimplifiedObject returns the simplified artist. A missing field triggers a full fetch.
func (a *Artist) GetSimplifiedObject(ctx context.Context, c ArtistAPI) (Object, error) {
	return a.hydrate(ctx, TierSimplified, func(ctx context.Context) error { return a.RetrieveFullObject(ctx, c) })
}

// GetAlbums returns one page of the artist's albums.
func (a *Artist) GetAlbums(ctx context.Context, c ArtistAPI, opts Options) (*Albums, error) {
	page, err := c.GetArtistAlbums(ctx, a.id, opts)
	if err != nil {
		return nil, err
	}
	out := newAlbums()
	return out, out.pushObjects(page.Items)
}

// GetAllAlbums pages through every album of the artist.
func (a *Artist) GetAllAlbums(ctx context.Context, c ArtistAPI) (*Albums, error) {
	items, err := a.allAlbums(ctx, c)
	if err != nil {
		return nil, err
	}
	out := newAlbums()
	return out, out.pushObjects(items)
}

func (a *Artist) allAlbums(ctx context.Context, c ArtistAPI) ([]Object, error) {
	return collectPages(ctx, Options{}, PageSize, func(ctx context.Context, opts Options) (Page, error) {
		return c.GetArtistAlbums(ctx, a.id, opts)
	})
}

// GetTopTracks returns the artist's top tracks in country, an ISO 3166-1
// alpha-2 code.
func (a *Artist) GetTopTracks(ctx context.Context, c ArtistAPI, country string) (*Tracks, error) {
	items, err := c.GetArtistTopTracks(ctx, a.id, country)
	if err != nil {
		return nil, err
	}
	out := newTracks()
	return out, out.pushObjects(items)
}

// GetRelatedArtists returns artists similar to this one.
func (a *Artist) GetRelatedArtists(ctx context.Context, c ArtistAPI) (*Artists, error) {
	items, err := c.GetArtistRelatedArtists(ctx, a.id)
	if err != nil {
		return nil, err
	}
	out := newArtists()
	return out, out.pushObjects(items)
}

// Follow follows the artist as the current user.
func (a *Artist) Follow(ctx context.Context, c ArtistAPI) error {
	return c.FollowArtists(ctx, []string{a.id})
}

// Unfollow stops following the artist.
func (a *Artist) Unfollow(ctx context.Context, c ArtistAPI) error {
	return c.UnfollowArtists(ctx, []string{a.id})
}

// IsFollowed reports whether the current user follows the artist.
func (a *Artist) IsFollowed(ctx context.Context, c ArtistAPI) (bool, error) {
	res, err := c.IsFollowingArtists(ctx, []string{a.id})
	if err != nil {
		return false, err
	}
	return len(res) > 0 && res[0], nil
}

// Play starts playback of the artist as a context.
func (a *Artist) Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	opts.URIs = nil
	opts.ContextURI = a.URI()
	return c.Play(ctx, opts)
}

// Artists is an ordered collection of artists.
type Artists struct{ *Collection[*Artist] }

func newArtists() *Artists { return &Artists{newCollection(artistSchema, wrapArtist)} }

// NewArtists returns a collection of the refs in order.
func NewArtists(refs ...Ref) (*Artists, error) {
	as := newArtists()
	if err := as.PushAll(refs...); err != nil {
		return nil, err
	}
	return as, nil
}

// Filter returns a new collection of the members for which keep returns true.
func (as *Artists) Filter(keep func(*Artist) bool) (*Artists, error) {
	c, err := as.filter(keep)
	if err != nil {
		return nil, err
	}
	return &Artists{c}, nil
}

// Clone returns a copy of the collection sharing its entities.
func (as *Artists) Clone() *Artists { return &Artists{as.clone()} }

// FuzzyFind returns the distinct members whose name matches query, best match
// first.
func (as *Artists) FuzzyFind(query string) *Artists { return &Artists{as.fuzzyFind(query)} }

func fetchArtists(c ArtistAPI) bulkFetch { return c.GetArtists }

// RetrieveFullObjects fetches the full object of every member lacking one, in batches.
func (as *Artists) RetrieveFullObjects(ctx context.Context, c ArtistAPI) error {
	return as.resolve(ctx, TierFull, TierFull, fetchArtists(c))
}

// GetFullObjects returns the full object of every position, fetching only what is
// missing.
func (as *Artists) GetFullObjects(ctx context.Context, c ArtistAPI) ([]Object, error) {
	if err := as.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return as.snapshots(TierFull), nil
}

// GetSimplifiedObjects returns the simplified object of every position.
func (as *Artists) GetSimplifiedObjects(ctx context.Context, c ArtistAPI) ([]Object, error) {
	if err := as.resolve(ctx, TierSimplified, TierFull, fetchArtists(c)); err != nil {
		return nil, err
	}
	return as.snapshots(TierSimplified), nil
}

// SortSafe returns the distinct members ordered by the value at path,
// resolving full objects first when path needs them.
func (as *Artists) SortSafe(ctx context.Context, c ArtistAPI, dir Direction, path string) (*Artists, error) {
	out, err := as.sortSafe(ctx, dir, path, fetchArtists(c))
	if err != nil {
		return nil, err
	}
	return &Artists{out}, nil
}

// GetAllAlbums pages through the albums of every artist.
func (as *Artists) GetAllAlbums(ctx context.Context, c ArtistAPI) (*Albums, error) {
	items, err := gatherPages(ctx, as.Collection, func(ctx context.Context, a *Artist) ([]Object, error) {
		return a.allAlbums(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := newAlbums()
	return out, out.pushObjects(items)
}

// GetTopTracks returns the top tracks of every artist in country.
func (as *Artists) GetTopTracks(ctx context.Context, c ArtistAPI, country string) (*Tracks, error) {
	out := newTracks()
	err := gather(ctx, as.Collection, out.Collection, func(ctx context.Context, a *Artist) (*Collection[*Track], error) {
		ts, err := a.GetTopTracks(ctx, c, country)
		if err != nil {
			return nil, err
		}
		return ts.Collection, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Follow follows every distinct member.
func (as *Artists) Follow(ctx context.Context, c ArtistAPI) error {
	return as.apply(ctx, c.FollowArtists)
}

// Unfollow stops following every distinct member.
func (as *Artists) Unfollow(ctx context.Context, c ArtistAPI) error {
	return as.apply(ctx, c.UnfollowArtists)
}

// AreFollowed reports, per id, whether the current user follows the member.
func (as *Artists) AreFollowed(ctx context.Context, c ArtistAPI) (map[string]bool, error) {
	return as.flags(ctx, c.IsFollowingArtists)
}

// GetArtists fetches the full artists for ids.
func GetArtists(ctx context.Context, c ArtistAPI, ids ...string) (*Artists, error) {
	as, err := NewArtists(RefsByID(ids...)...)
	if err != nil {
		return nil, err
	}
	if err := as.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return as, nil
}
