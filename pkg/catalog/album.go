package catalog

import (
	"context"
)

// Album is a single album. Its full object embeds the first page of tracks.
type Album struct{ *Entity }

func wrapAlbum(e *Entity) *Album { return &Album{e} }

// NewAlbum builds an album from a ref.
func NewAlbum(r Ref) (*Album, error) {
	e, err := entityFromRef(albumSchema, r)
	if err != nil {
		return nil, err
	}
	return wrapAlbum(e), nil
}

// RetrieveFullObject fetches the full album and loads it, replacing stale fields.
func (a *Album) RetrieveFullObject(ctx context.Context, c AlbumAPI) error {
	return a.retrieve(ctx, TierFull, func(ctx context.Context, id string) (Object, error) {
		return c.GetAlbum(ctx, id, Options{})
	})
}

// GetFullObject returns the full album, fetching it only when a field is missing.
func (a *Album) GetFullObject(ctx context.Context, c AlbumAPI) (Object, error) {
	return a.hydrate(ctx, TierFull, func(ctx context.Context) error { return a.RetrieveFullObject(ctx, c) })
}

// GetSimplifiedObject returns the simplified album. A missing field triggers a full fetch.
func (a *Album) GetSimplifiedObject(ctx context.Context, c AlbumAPI) (Object, error) {
	return a.hydrate(ctx, TierSimplified, func(ctx context.Context) error { return a.RetrieveFullObject(ctx, c) })
}

// GetArtists returns the album's artists.
func (a *Album) GetArtists(ctx context.Context, c AlbumAPI) (*Artists, error) {
	if _, ok := a.Get("artists"); !ok {
		if err := a.RetrieveFullObject(ctx, c); err != nil {
			return nil, err
		}
	}
	return a.artists()
}

func (a *Album) artists() (*Artists, error) {
	out := newArtists()
	v, _ := a.Get("artists")
	return out, out.pushObjects(objects(v))
}

// GetTracks returns the tracks embedded in the full album, which is the
// first page only. Use GetAllTracks for long albums.
func (a *Album) GetTracks(ctx context.Context, c AlbumAPI) (*Tracks, error) {
	if _, ok := a.Get("tracks"); !ok {
		if err := a.RetrieveFullObject(ctx, c); err != nil {
			return nil, err
		}
	}
	return a.tracks()
}

// tracks wraps the embedded tracks. Album tracks are simplified and carry no
// album, so the album is attached as a simplified object.
func (a *Album) tracks() (*Tracks, error) {
	out := newTracks()
	return out, out.pushObjects(a.withAlbum(embeddedPage(a.value("tracks"))))
}

func (a *Album) withAlbum(items []Object) []Object {
	album := a.Snapshot(TierSimplified)
	out := make([]Object, len(items))
	for i, item := range items {
		cp := make(Object, len(item)+1)
		for k, v := range item {
			cp[k] = v
		}
		if !identified(cp["album"]) {
			cp["album"] = album
		}
		out[i] = cp
	}
	return out
}

// GetAllTracks pages through the album's tracks.
func (a *Album) GetAllTracks(ctx context.Context, c AlbumAPI) (*Tracks, error) {
	items, err := a.allTracks(ctx, c)
	if err != nil {
		return nil, err
	}
	out := newTracks()
	return out, out.pushObjects(items)
}

func (a *Album) allTracks(ctx context.Context, c AlbumAPI) ([]Object, error) {
	items, err := collectPages(ctx, Options{}, PageSize, func(ctx context.Context, opts Options) (Page, error) {
		return c.GetAlbumTracks(ctx, a.id, opts)
	})
	if err != nil {
		return nil, err
	}
	return a.withAlbum(items), nil
}

// Like saves the album to the user's library.
func (a *Album) Like(ctx context.Context, c AlbumAPI) error {
	return c.AddToMySavedAlbums(ctx, []string{a.id})
}

// Unlike removes the album from the user's library.
func (a *Album) Unlike(ctx context.Context, c AlbumAPI) error {
	return c.RemoveFromMySavedAlbums(ctx, []string{a.id})
}

// IsLiked reports whether the album is in the user's library.
func (a *Album) IsLiked(ctx context.Context, c AlbumAPI) (bool, error) {
	res, err := c.ContainsMySavedAlbums(ctx, []string{a.id})
	if err != nil {
		return false, err
	}
	return len(res) > 0 && res[0], nil
}

// Play starts playback of the album as a context.
func (a *Album) Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	opts.URIs = nil
	opts.ContextURI = a.URI()
	return c.Play(ctx, opts)
}

// Albums is an ordered collection of albums.
type Albums struct{ *Collection[*Album] }

func newAlbums() *Albums { return &Albums{newCollection(albumSchema, wrapAlbum)} }

// NewAlbums returns a collection of the refs in order.
func NewAlbums(refs ...Ref) (*Albums, error) {
	as := newAlbums()
	if err := as.PushAll(refs...); err != nil {
		return nil, err
	}
	return as, nil
}

// Filter returns a new collection of the members for which keep returns true.
func (as *Albums) Filter(keep func(*Album) bool) (*Albums, error) {
	c, err := as.filter(keep)
	if err != nil {
		return nil, err
	}
	return &Albums{c}, nil
}

// Clone returns a copy of the collection sharing its entities.
func (as *Albums) Clone() *Albums { return &Albums{as.clone()} }

// FuzzyFind returns the distinct members whose name matches query, best match
// first.
func (as *Albums) FuzzyFind(query string) *Albums { return &Albums{as.fuzzyFind(query)} }

func fetchAlbums(c AlbumAPI) bulkFetch {
	return func(ctx context.Context, ids []string) ([]Object, error) {
		return c.GetAlbums(ctx, ids, Options{})
	}
}

// RetrieveFullObjects fetches the full object of every member lacking one, in batches.
func (as *Albums) RetrieveFullObjects(ctx context.Context, c AlbumAPI) error {
	return as.resolve(ctx, TierFull, TierFull, fetchAlbums(c))
}

// GetFullObjects returns the full object of every position, fetching only what is
// missing.
func (as *Albums) GetFullObjects(ctx context.Context, c AlbumAPI) ([]Object, error) {
	if err := as.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return as.snapshots(TierFull), nil
}

// GetSimplifiedObjects returns the simplified object of every position.
func (as *Albums) GetSimplifiedObjects(ctx context.Context, c AlbumAPI) ([]Object, error) {
	if err := as.resolve(ctx, TierSimplified, TierFull, fetchAlbums(c)); err != nil {
		return nil, err
	}
	return as.snapshots(TierSimplified), nil
}

// SortSafe returns the distinct members ordered by the value at path,
// resolving full objects first when path needs them.
func (as *Albums) SortSafe(ctx context.Context, c AlbumAPI, dir Direction, path string) (*Albums, error) {
	out, err := as.sortSafe(ctx, dir, path, fetchAlbums(c))
	if err != nil {
		return nil, err
	}
	return &Albums{out}, nil
}

// GetArtists returns the artists of every album.
func (as *Albums) GetArtists(ctx context.Context, c AlbumAPI) (*Artists, error) {
	if err := as.resolve(ctx, TierSimplified, TierFull, fetchAlbums(c)); err != nil {
		return nil, err
	}
	out := newArtists()
	err := gather(ctx, as.Collection, out.Collection, func(_ context.Context, a *Album) (*Collection[*Artist], error) {
		artists, err := a.artists()
		if err != nil {
			return nil, err
		}
		return artists.Collection, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetTracks returns the embedded first page of tracks of every album.
func (as *Albums) GetTracks(ctx context.Context, c AlbumAPI) (*Tracks, error) {
	if err := as.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	out := newTracks()
	err := gather(ctx, as.Collection, out.Collection, func(_ context.Context, a *Album) (*Collection[*Track], error) {
		ts, err := a.tracks()
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

// GetAllTracks pages through the tracks of every album.
func (as *Albums) GetAllTracks(ctx context.Context, c AlbumAPI) (*Tracks, error) {
	items, err := gatherPages(ctx, as.Collection, func(ctx context.Context, a *Album) ([]Object, error) {
		return a.allTracks(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := newTracks()
	return out, out.pushObjects(items)
}

// LikeAll saves every distinct member to the user's library.
func (as *Albums) LikeAll(ctx context.Context, c AlbumAPI) error {
	return as.apply(ctx, c.AddToMySavedAlbums)
}

// UnlikeAll removes every distinct member from the user's library.
func (as *Albums) UnlikeAll(ctx context.Context, c AlbumAPI) error {
	return as.apply(ctx, c.RemoveFromMySavedAlbums)
}

// AreLiked reports, per id, whether the member is in the user's library.
func (as *Albums) AreLiked(ctx context.Context, c AlbumAPI) (map[string]bool, error) {
	return as.flags(ctx, c.ContainsMySavedAlbums)
}

// GetAlbums fetches the full albums for ids. Repeated ids are requested once.
func GetAlbums(ctx context.Context, c AlbumAPI, ids ...string) (*Albums, error) {
	as, err := NewAlbums(RefsByID(ids...)...)
	if err != nil {
		return nil, err
	}
	if err := as.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return as, nil
}
