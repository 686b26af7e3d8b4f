package catalog

import (
	"context"
)

// Track is a single track. Tracks from playlists and saved-track listings
// also carry the side-car fields is_local, added_at and added_by.
type Track struct{ *Entity }

func wrapTrack(e *Entity) *Track { return &Track{e} }

// NewTrack builds a track from a ref.
func NewTrack(r Ref) (*Track, error) {
	e, err := entityFromRef(trackSchema, r)
	if err != nil {
		return nil, err
	}
	return wrapTrack(e), nil
}

// ContainsLinkObject reports whether the link fields are loaded.
func (t *Track) ContainsLinkObject() bool { return t.Contains(TierLink) }

// ContainsAudioFeatures reports whether audio features are loaded.
func (t *Track) ContainsAudioFeatures() bool { return t.Contains(TierAudioFeatures) }

// ContainsAudioAnalysis reports whether the audio analysis is loaded.
func (t *Track) ContainsAudioAnalysis() bool { return t.Contains(TierAudioAnalysis) }

// LoadAudioFeatures stores obj as the track's audio features.
func (t *Track) LoadAudioFeatures(obj Object) { t.Load(TierAudioFeatures, obj) }

// LoadAudioAnalysis stores obj as the track's audio analysis.
func (t *Track) LoadAudioAnalysis(obj Object) { t.Load(TierAudioAnalysis, obj) }

// RetrieveFullObject fetches the full track. It is a no-op for local tracks.
func (t *Track) RetrieveFullObject(ctx context.Context, c TrackAPI) error {
	return t.retrieve(ctx, TierFull, func(ctx context.Context, id string) (Object, error) {
		return c.GetTrack(ctx, id, Options{})
	})
}

// RetrieveAudioFeatures fetches the track's audio features.
func (t *Track) RetrieveAudioFeatures(ctx context.Context, c TrackAPI) error {
	return t.retrieve(ctx, TierAudioFeatures, c.GetAudioFeatures)
}

// RetrieveAudioAnalysis fetches the track's audio analysis.
func (t *Track) RetrieveAudioAnalysis(ctx context.Context, c TrackAPI) error {
	return t.retrieve(ctx, TierAudioAnalysis, c.GetAudioAnalysis)
}

// GetFullObject returns the full track, fetching it when incomplete.
func (t *Track) GetFullObject(ctx context.Context, c TrackAPI) (Object, error) {
	return t.hydrate(ctx, TierFull, func(ctx context.Context) error { return t.RetrieveFullObject(ctx, c) })
}

// GetSimplifiedObject returns the simplified track. A missing field triggers a full fetch.
func (t *Track) GetSimplifiedObject(ctx context.Context, c TrackAPI) (Object, error) {
	return t.hydrate(ctx, TierSimplified, func(ctx context.Context) error { return t.RetrieveFullObject(ctx, c) })
}

// GetLinkObject returns the link fields, fetching the full track when they are missing.
func (t *Track) GetLinkObject(ctx context.Context, c TrackAPI) (Object, error) {
	return t.hydrate(ctx, TierLink, func(ctx context.Context) error { return t.RetrieveFullObject(ctx, c) })
}

// GetAudioFeatures returns the audio features, fetching them when missing.
func (t *Track) GetAudioFeatures(ctx context.Context, c TrackAPI) (Object, error) {
	return t.hydrate(ctx, TierAudioFeatures, func(ctx context.Context) error { return t.RetrieveAudioFeatures(ctx, c) })
}

// GetAudioAnalysis returns the audio analysis, fetching it when missing.
func (t *Track) GetAudioAnalysis(ctx context.Context, c TrackAPI) (Object, error) {
	return t.hydrate(ctx, TierAudioAnalysis, func(ctx context.Context) error { return t.RetrieveAudioAnalysis(ctx, c) })
}

// GetAlbum returns the track's album. It returns nil when the album has no
// id, as is the case for local files.
func (t *Track) GetAlbum(ctx context.Context, c TrackAPI) (*Album, error) {
	if !identified(t.value("album")) && !t.IsLocal() {
		if err := t.RetrieveFullObject(ctx, c); err != nil {
			return nil, err
		}
	}
	return t.album()
}

func (t *Track) album() (*Album, error) {
	obj := t.value("album")
	if !identified(obj) {
		return nil, nil
	}
	return NewAlbum(FromObject(obj.(map[string]any)))
}

// GetArtists returns the track's artists.
func (t *Track) GetArtists(ctx context.Context, c TrackAPI) (*Artists, error) {
	if _, ok := t.Get("artists"); !ok {
		if err := t.RetrieveFullObject(ctx, c); err != nil {
			return nil, err
		}
	}
	return t.artists()
}

func (t *Track) artists() (*Artists, error) {
	out := newArtists()
	v, _ := t.Get("artists")
	return out, out.pushObjects(objects(v))
}

// Like saves the track to the user's library.
func (t *Track) Like(ctx context.Context, c TrackAPI) error {
	return c.AddToMySavedTracks(ctx, []string{t.id})
}

// Unlike removes the track from the user's library.
func (t *Track) Unlike(ctx context.Context, c TrackAPI) error {
	return c.RemoveFromMySavedTracks(ctx, []string{t.id})
}

// IsLiked reports whether the track is in the user's library.
func (t *Track) IsLiked(ctx context.Context, c TrackAPI) (bool, error) {
	res, err := c.ContainsMySavedTracks(ctx, []string{t.id})
	if err != nil {
		return false, err
	}
	return len(res) > 0 && res[0], nil
}

// Play starts playback of this track. opts.URIs is replaced.
func (t *Track) Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	opts.ContextURI = ""
	opts.URIs = []string{t.URI()}
	return c.Play(ctx, opts)
}

// GetRecommendations returns tracks recommended from this track alone.
func (t *Track) GetRecommendations(ctx context.Context, c BrowseAPI, attrs map[string]any, opts Options) (*Tracks, error) {
	return GetRecommendations(ctx, c, Seeds{Tracks: []string{t.id}, Attributes: attrs}, opts)
}

// Tracks is an ordered collection of tracks.
type Tracks struct{ *Collection[*Track] }

func newTracks() *Tracks { return &Tracks{newCollection(trackSchema, wrapTrack)} }

// NewTracks builds a collection from refs.
func NewTracks(refs ...Ref) (*Tracks, error) {
	ts := newTracks()
	if err := ts.PushAll(refs...); err != nil {
		return nil, err
	}
	return ts, nil
}

// Filter returns a new collection of the members for which keep returns true.
func (ts *Tracks) Filter(keep func(*Track) bool) (*Tracks, error) {
	c, err := ts.filter(keep)
	if err != nil {
		return nil, err
	}
	return &Tracks{c}, nil
}

// Clone returns a copy of the collection sharing its entities.
func (ts *Tracks) Clone() *Tracks { return &Tracks{ts.clone()} }

// FuzzyFind returns the tracks whose name matches query, best match first.
func (ts *Tracks) FuzzyFind(query string) *Tracks { return &Tracks{ts.fuzzyFind(query)} }

func fetchTracks(c TrackAPI) bulkFetch {
	return func(ctx context.Context, ids []string) ([]Object, error) {
		return c.GetTracks(ctx, ids, Options{})
	}
}

// RetrieveFullObjects fetches every track lacking its full object in
// batches of BatchSize.
func (ts *Tracks) RetrieveFullObjects(ctx context.Context, c TrackAPI) error {
	return ts.resolve(ctx, TierFull, TierFull, fetchTracks(c))
}

// GetFullObjects returns the full object of every position, fetching only what is
// missing.
func (ts *Tracks) GetFullObjects(ctx context.Context, c TrackAPI) ([]Object, error) {
	if err := ts.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return ts.snapshots(TierFull), nil
}

// GetSimplifiedObjects returns the simplified object of every position.
func (ts *Tracks) GetSimplifiedObjects(ctx context.Context, c TrackAPI) ([]Object, error) {
	if err := ts.resolve(ctx, TierSimplified, TierFull, fetchTracks(c)); err != nil {
		return nil, err
	}
	return ts.snapshots(TierSimplified), nil
}

// GetLinkObjects returns the link fields of every position.
func (ts *Tracks) GetLinkObjects(ctx context.Context, c TrackAPI) ([]Object, error) {
	if err := ts.resolve(ctx, TierLink, TierFull, fetchTracks(c)); err != nil {
		return nil, err
	}
	return ts.snapshots(TierLink), nil
}

// RetrieveAudioFeatures fetches missing audio features in batches.
func (ts *Tracks) RetrieveAudioFeatures(ctx context.Context, c TrackAPI) error {
	return ts.resolve(ctx, TierAudioFeatures, TierAudioFeatures, c.GetAudioFeaturesForTracks)
}

// GetAudioFeatures returns the audio features of every position in bulk.
func (ts *Tracks) GetAudioFeatures(ctx context.Context, c TrackAPI) ([]Object, error) {
	if err := ts.RetrieveAudioFeatures(ctx, c); err != nil {
		return nil, err
	}
	return ts.snapshots(TierAudioFeatures), nil
}

// RetrieveAudioAnalysis fetches missing audio analyses. There is no bulk
// endpoint so every track is requested on its own.
func (ts *Tracks) RetrieveAudioAnalysis(ctx context.Context, c TrackAPI) error {
	return ts.resolve(ctx, TierAudioAnalysis, TierAudioAnalysis, perItem(c.GetAudioAnalysis))
}

// GetAudioAnalysis returns the audio analysis of every position. Analyses are
// fetched one track at a time.
func (ts *Tracks) GetAudioAnalysis(ctx context.Context, c TrackAPI) ([]Object, error) {
	if err := ts.RetrieveAudioAnalysis(ctx, c); err != nil {
		return nil, err
	}
	return ts.snapshots(TierAudioAnalysis), nil
}

// SortSafe returns a new collection ordered by the value at path.
func (ts *Tracks) SortSafe(ctx context.Context, c TrackAPI, dir Direction, path string) (*Tracks, error) {
	out, err := ts.sortSafe(ctx, dir, path, fetchTracks(c))
	if err != nil {
		return nil, err
	}
	return &Tracks{out}, nil
}

// GetArtists returns the artists of every track.
func (ts *Tracks) GetArtists(ctx context.Context, c TrackAPI) (*Artists, error) {
	if err := ts.resolve(ctx, TierSimplified, TierFull, fetchTracks(c)); err != nil {
		return nil, err
	}
	out := newArtists()
	err := gather(ctx, ts.Collection, out.Collection, func(_ context.Context, t *Track) (*Collection[*Artist], error) {
		a, err := t.artists()
		if err != nil {
			return nil, err
		}
		return a.Collection, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetAlbums returns the album of every track.
func (ts *Tracks) GetAlbums(ctx context.Context, c TrackAPI) (*Albums, error) {
	if err := ts.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	out := newAlbums()
	for _, t := range ts.Unique() {
		a, err := t.album()
		if err != nil {
			return nil, err
		}
		if a != nil {
			out.add(a)
		}
	}
	return out, nil
}

// LikeAll saves every distinct track.
func (ts *Tracks) LikeAll(ctx context.Context, c TrackAPI) error {
	return ts.apply(ctx, c.AddToMySavedTracks)
}

// UnlikeAll removes every distinct member from the user's library.
func (ts *Tracks) UnlikeAll(ctx context.Context, c TrackAPI) error {
	return ts.apply(ctx, c.RemoveFromMySavedTracks)
}

// AreLiked reports for every distinct id whether it is saved.
func (ts *Tracks) AreLiked(ctx context.Context, c TrackAPI) (map[string]bool, error) {
	return ts.flags(ctx, c.ContainsMySavedTracks)
}

// Play starts playback of the tracks in order.
func (ts *Tracks) Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	if ts.Size() == 0 {
		return invalid("play", "no tracks")
	}
	opts.ContextURI = ""
	opts.URIs = ts.URIs()
	return c.Play(ctx, opts)
}

// GetTracks fetches the full tracks for ids.
func GetTracks(ctx context.Context, c TrackAPI, ids ...string) (*Tracks, error) {
	ts, err := NewTracks(RefsByID(ids...)...)
	if err != nil {
		return nil, err
	}
	if err := ts.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return ts, nil
}
