package catalog

import (
	"context"
	"strings"
)

// TrackSource is accepted by the playlist track mutators. It is implemented
// by *Tracks, Ref, Refs and TrackIDs.
type TrackSource interface {
	trackURIs() ([]string, error)
}

// Refs is a list of refs usable as a TrackSource.
type Refs []Ref

// TrackIDs is a list of track ids usable as a TrackSource.
type TrackIDs []string

func trackURI(id string) string {
	if strings.HasPrefix(id, "spotify:") {
		return id
	}
	return "spotify:track:" + id
}

func (r Ref) trackURIs() ([]string, error) {
	if r.variant == refItem && r.item != nil && r.item.entity() != nil && r.item.Kind() != KindTrack {
		return nil, invalid("track uris", "cannot use a %s as a track", r.item.Kind())
	}
	id, err := r.ID()
	if err != nil {
		return nil, err
	}
	return []string{trackURI(id)}, nil
}

func (rs Refs) trackURIs() ([]string, error) {
	uris := make([]string, 0, len(rs))
	for _, r := range rs {
		u, err := r.trackURIs()
		if err != nil {
			return nil, err
		}
		uris = append(uris, u...)
	}
	return uris, nil
}

func (ids TrackIDs) trackURIs() ([]string, error) {
	uris := make([]string, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, invalid("track uris", "no ID provided")
		}
		uris[i] = trackURI(id)
	}
	return uris, nil
}

func (ts *Tracks) trackURIs() ([]string, error) {
	if ts == nil || ts.Collection == nil {
		return nil, invalid("track uris", "invalid data")
	}
	uris := make([]string, 0, ts.Size())
	for _, id := range ts.order {
		uris = append(uris, trackURI(id))
	}
	return uris, nil
}

func sourceURIs(op string, src TrackSource) ([]string, error) {
	if src == nil {
		return nil, invalid(op, "no tracks provided")
	}
	uris, err := src.trackURIs()
	if err != nil {
		return nil, err
	}
	if len(uris) == 0 {
		return nil, invalid(op, "no tracks provided")
	}
	return uris, nil
}

// Playlist is a single playlist. Track mutations carry the snapshot id of
// the version they apply to and record the id of the version they produce.
type Playlist struct{ *Entity }

func wrapPlaylist(e *Entity) *Playlist { return &Playlist{e} }

// NewPlaylist returns a playlist built from r.
func NewPlaylist(r Ref) (*Playlist, error) {
	e, err := entityFromRef(playlistSchema, r)
	if err != nil {
		return nil, err
	}
	return wrapPlaylist(e), nil
}

// SnapshotID returns the last known snapshot id, or "" before the playlist
// has been fetched or mutated.
func (p *Playlist) SnapshotID() string { return str(p.value("snapshot_id")) }

func (p *Playlist) setSnapshot(id string) {
	if id != "" {
		p.set("snapshot_id", id)
	}
}

// RetrieveFullObject fetches the full playlist and loads it, replacing stale fields.
func (p *Playlist) RetrieveFullObject(ctx context.Context, c PlaylistAPI) error {
	return p.retrieve(ctx, TierFull, func(ctx context.Context, id string) (Object, error) {
		return c.GetPlaylist(ctx, id, Options{})
	})
}

// GetFullObject returns the full playlist, fetching it only when a field is missing.
func (p *Playlist) GetFullObject(ctx context.Context, c PlaylistAPI) (Object, error) {
	return p.hydrate(ctx, TierFull, func(ctx context.Context) error { return p.RetrieveFullObject(ctx, c) })
}

// GetSimplifiedObject returns the simplified playlist. A missing field triggers a full fetch.
func (p *Playlist) GetSimplifiedObject(ctx context.Context, c PlaylistAPI) (Object, error) {
	return p.hydrate(ctx, TierSimplified, func(ctx context.Context) error { return p.RetrieveFullObject(ctx, c) })
}

// GetOwner returns the user owning the playlist.
func (p *Playlist) GetOwner(ctx context.Context, c PlaylistAPI) (*User, error) {
	if _, ok := p.Get("owner"); !ok {
		if err := p.RetrieveFullObject(ctx, c); err != nil {
			return nil, err
		}
	}
	owner, ok := p.value("owner").(map[string]any)
	if !ok {
		return nil, &NotFoundError{Kind: KindUser}
	}
	return NewUser(FromObject(owner))
}

// GetTracks returns the tracks embedded in the full playlist, which is the
// first page only. Simplified playlists from listings embed no items.
func (p *Playlist) GetTracks(ctx context.Context, c PlaylistAPI) (*Tracks, error) {
	if _, ok := p.Get("tracks"); !ok {
		if err := p.RetrieveFullObject(ctx, c); err != nil {
			return nil, err
		}
	}
	out := newTracks()
	return out, out.pushObjects(embeddedPage(p.value("tracks")))
}

// GetAllTracks pages through the playlist, 100 entries per request.
// Episodes are skipped.
func (p *Playlist) GetAllTracks(ctx context.Context, c PlaylistAPI) (*Tracks, error) {
	items, err := p.allTracks(ctx, c)
	if err != nil {
		return nil, err
	}
	out := newTracks()
	return out, out.pushObjects(items)
}

func (p *Playlist) allTracks(ctx context.Context, c PlaylistAPI) ([]Object, error) {
	return collectPages(ctx, Options{}, PlaylistPageSize, func(ctx context.Context, opts Options) (Page, error) {
		return c.GetPlaylistTracks(ctx, p.id, opts)
	})
}

// AddTracks inserts tracks at position, or appends them when position is
// nil.
func (p *Playlist) AddTracks(ctx context.Context, c PlaylistAPI, src TrackSource, position *int) error {
	uris, err := sourceURIs("add tracks", src)
	if err != nil {
		return err
	}
	if position != nil && *position < 0 {
		return invalid("add tracks", "position %d is negative", *position)
	}
	snap, err := c.AddTracksToPlaylist(ctx, p.id, uris, position)
	if err != nil {
		return err
	}
	p.setSnapshot(snap)
	return nil
}

// ReplaceTracks replaces every entry of the playlist.
func (p *Playlist) ReplaceTracks(ctx context.Context, c PlaylistAPI, src TrackSource) error {
	uris, err := sourceURIs("replace tracks", src)
	if err != nil {
		return err
	}
	snap, err := c.ReplaceTracksInPlaylist(ctx, p.id, uris)
	if err != nil {
		return err
	}
	p.setSnapshot(snap)
	return nil
}

// ReorderTracks moves rangeLength entries starting at rangeStart before
// the entry at insertBefore.
func (p *Playlist) ReorderTracks(ctx context.Context, c PlaylistAPI, rangeStart, insertBefore, rangeLength int) error {
	if rangeStart < 0 || insertBefore < 0 || rangeLength < 1 {
		return invalid("reorder tracks", "bad range start=%d before=%d length=%d", rangeStart, insertBefore, rangeLength)
	}
	snap, err := c.ReorderTracksInPlaylist(ctx, p.id, Reorder{
		RangeStart:   rangeStart,
		RangeLength:  rangeLength,
		InsertBefore: insertBefore,
		SnapshotID:   p.SnapshotID(),
	})
	if err != nil {
		return err
	}
	p.setSnapshot(snap)
	return nil
}

// RemoveTracks removes every occurrence of the given tracks from the
// version identified by the current snapshot id.
func (p *Playlist) RemoveTracks(ctx context.Context, c PlaylistAPI, src TrackSource) error {
	uris, err := sourceURIs("remove tracks", src)
	if err != nil {
		return err
	}
	snap, err := c.RemoveTracksFromPlaylist(ctx, p.id, uris, p.SnapshotID())
	if err != nil {
		return err
	}
	p.setSnapshot(snap)
	return nil
}

// RemoveTrackIndexes removes the entries at positions. A snapshot id is
// required since positions only make sense for a known version.
func (p *Playlist) RemoveTrackIndexes(ctx context.Context, c PlaylistAPI, positions ...int) error {
	if len(positions) == 0 {
		return invalid("remove track indexes", "no positions provided")
	}
	for _, pos := range positions {
		if pos < 0 {
			return invalid("remove track indexes", "position %d is negative", pos)
		}
	}
	snap := p.SnapshotID()
	if snap == "" {
		return invalid("remove track indexes", "playlist %s has no snapshot id", p.id)
	}
	next, err := c.RemoveTracksFromPlaylistByPosition(ctx, p.id, positions, snap)
	if err != nil {
		return err
	}
	p.setSnapshot(next)
	return nil
}

// ChangeDetails updates the playlist attributes on the server. The local
// fields are left as they are; refetch to observe the change.
func (p *Playlist) ChangeDetails(ctx context.Context, c PlaylistAPI, d PlaylistDetails) error {
	return c.ChangePlaylistDetails(ctx, p.id, d)
}

// Follow adds the playlist to the followed playlists. public controls
// whether it appears on the user's profile.
func (p *Playlist) Follow(ctx context.Context, c PlaylistAPI, public bool) error {
	return c.FollowPlaylist(ctx, p.id, public)
}

// Unfollow stops following the playlist.
func (p *Playlist) Unfollow(ctx context.Context, c PlaylistAPI) error {
	return c.UnfollowPlaylist(ctx, p.id)
}

// AreFollowedBy reports for every user id whether that user follows the
// playlist.
func (p *Playlist) AreFollowedBy(ctx context.Context, c PlaylistAPI, userIDs ...string) (map[string]bool, error) {
	if len(userIDs) == 0 {
		return nil, invalid("are followed by", "no user ids provided")
	}
	res, err := c.AreFollowingPlaylist(ctx, p.id, userIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(userIDs))
	for i, id := range userIDs {
		out[id] = i < len(res) && res[i]
	}
	return out, nil
}

// Play starts playback of the playlist.
func (p *Playlist) Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	opts.URIs = nil
	opts.ContextURI = p.URI()
	return c.Play(ctx, opts)
}

// Playlists is an ordered collection of playlists. There is no bulk
// playlist endpoint, so resolution requests every playlist on its own.
type Playlists struct{ *Collection[*Playlist] }

func newPlaylists() *Playlists { return &Playlists{newCollection(playlistSchema, wrapPlaylist)} }

// NewPlaylists returns a collection of the refs in order.
func NewPlaylists(refs ...Ref) (*Playlists, error) {
	ps := newPlaylists()
	if err := ps.PushAll(refs...); err != nil {
		return nil, err
	}
	return ps, nil
}

// Filter returns a new collection of the members for which keep returns true.
func (ps *Playlists) Filter(keep func(*Playlist) bool) (*Playlists, error) {
	c, err := ps.filter(keep)
	if err != nil {
		return nil, err
	}
	return &Playlists{c}, nil
}

// Clone returns a copy of the collection sharing its entities.
func (ps *Playlists) Clone() *Playlists { return &Playlists{ps.clone()} }

// FuzzyFind returns the distinct members whose name matches query, best match
// first.
func (ps *Playlists) FuzzyFind(query string) *Playlists { return &Playlists{ps.fuzzyFind(query)} }

func fetchPlaylists(c PlaylistAPI) bulkFetch {
	return perItem(func(ctx context.Context, id string) (Object, error) {
		return c.GetPlaylist(ctx, id, Options{})
	})
}

// RetrieveFullObjects fetches the full object of every member lacking one, in batches.
func (ps *Playlists) RetrieveFullObjects(ctx context.Context, c PlaylistAPI) error {
	return ps.resolve(ctx, TierFull, TierFull, fetchPlaylists(c))
}

// GetFullObjects returns the full object of every position, fetching only what is
// missing.
func (ps *Playlists) GetFullObjects(ctx context.Context, c PlaylistAPI) ([]Object, error) {
	if err := ps.RetrieveFullObjects(ctx, c); err != nil {
		return nil, err
	}
	return ps.snapshots(TierFull), nil
}

// GetSimplifiedObjects returns the simplified object of every position.
func (ps *Playlists) GetSimplifiedObjects(ctx context.Context, c PlaylistAPI) ([]Object, error) {
	if err := ps.resolve(ctx, TierSimplified, TierFull, fetchPlaylists(c)); err != nil {
		return nil, err
	}
	return ps.snapshots(TierSimplified), nil
}

// SortSafe returns the distinct members ordered by the value at path,
// resolving full objects first when path needs them.
func (ps *Playlists) SortSafe(ctx context.Context, c PlaylistAPI, dir Direction, path string) (*Playlists, error) {
	out, err := ps.sortSafe(ctx, dir, path, fetchPlaylists(c))
	if err != nil {
		return nil, err
	}
	return &Playlists{out}, nil
}

// GetAllTracks pages through every playlist and concatenates the entries.
func (ps *Playlists) GetAllTracks(ctx context.Context, c PlaylistAPI) (*Tracks, error) {
	items, err := gatherPages(ctx, ps.Collection, func(ctx context.Context, p *Playlist) ([]Object, error) {
		return p.allTracks(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := newTracks()
	return out, out.pushObjects(items)
}

// Follow follows every distinct playlist with the given visibility.
func (ps *Playlists) Follow(ctx context.Context, c PlaylistAPI, public bool) error {
	_, err := fanOut(ctx, ps.Unique(), func(ctx context.Context, p *Playlist) (struct{}, error) {
		return struct{}{}, p.Follow(ctx, c, public)
	})
	return err
}

// Unfollow stops following every distinct member.
func (ps *Playlists) Unfollow(ctx context.Context, c PlaylistAPI) error {
	_, err := fanOut(ctx, ps.Unique(), func(ctx context.Context, p *Playlist) (struct{}, error) {
		return struct{}{}, p.Unfollow(ctx, c)
	})
	return err
}

// GetPlaylist fetches the full playlist.
func GetPlaylist(ctx context.Context, c PlaylistAPI, id string) (*Playlist, error) {
	p, err := NewPlaylist(ByID(id))
	if err != nil {
		return nil, err
	}
	if err := p.RetrieveFullObject(ctx, c); err != nil {
		return nil, err
	}
	return p, nil
}
