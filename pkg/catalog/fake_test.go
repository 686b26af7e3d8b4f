package catalog

import (
	"context"
	"fmt"
	"sync"
)

// fakeClient serves objects from memory and records every call. It embeds
// Client so tests only implement what they exercise; anything else panics.
type fakeClient struct {
	Client

	mu      sync.Mutex
	calls   map[string]int
	batches map[string][][]string

	objects  map[Kind]map[string]Object
	features map[string]Object
	analyses map[string]Object
	// pages holds listings keyed by "<endpoint>/<id>".
	pages map[string][]Object
	saved map[string]bool

	// failOn makes the n-th call (1-based) of an endpoint fail.
	failOn map[string]int
	err    error

	snapshots []string
	snapArgs  []string
	uris      [][]string
	played    []PlayOptions
	playback  Object
	search    map[Kind]Page
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		calls:    map[string]int{},
		batches:  map[string][][]string{},
		objects:  map[Kind]map[string]Object{},
		features: map[string]Object{},
		analyses: map[string]Object{},
		pages:    map[string][]Object{},
		saved:    map[string]bool{},
		failOn:   map[string]int{},
	}
}

func (f *fakeClient) add(kind Kind, obj Object) {
	if f.objects[kind] == nil {
		f.objects[kind] = map[string]Object{}
	}
	f.objects[kind][obj["id"].(string)] = obj
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// record counts a call and reports the injected error if it is due.
func (f *fakeClient) record(name string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if ids != nil {
		f.batches[name] = append(f.batches[name], append([]string(nil), ids...))
	}
	if n, ok := f.failOn[name]; ok && n == f.calls[name] {
		if f.err != nil {
			return f.err
		}
		return fmt.Errorf("%s failed", name)
	}
	return nil
}

func (f *fakeClient) one(kind Kind, name, id string) (Object, error) {
	if err := f.record(name, nil); err != nil {
		return nil, err
	}
	obj, ok := f.objects[kind][id]
	if !ok {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}
	return deepCopy(obj).(map[string]any), nil
}

func (f *fakeClient) many(kind Kind, name string, ids []string) ([]Object, error) {
	if err := f.record(name, ids); err != nil {
		return nil, err
	}
	out := make([]Object, len(ids))
	for i, id := range ids {
		if obj, ok := f.objects[kind][id]; ok {
			out[i] = deepCopy(obj).(map[string]any)
		}
	}
	return out, nil
}

func (f *fakeClient) page(name, key string, opts Options) (Page, error) {
	if err := f.record(name, nil); err != nil {
		return Page{}, err
	}
	items := f.pages[name+"/"+key]
	start := min(opts.Offset, len(items))
	end := len(items)
	if opts.Limit > 0 {
		end = min(start+opts.Limit, len(items))
	}
	return Page{Items: items[start:end], Total: len(items), Limit: opts.Limit, Offset: opts.Offset}, nil
}

func (f *fakeClient) GetTrack(_ context.Context, id string, _ Options) (Object, error) {
	return f.one(KindTrack, "GetTrack", id)
}

func (f *fakeClient) GetTracks(_ context.Context, ids []string, _ Options) ([]Object, error) {
	return f.many(KindTrack, "GetTracks", ids)
}

func (f *fakeClient) GetAudioFeatures(_ context.Context, id string) (Object, error) {
	if err := f.record("GetAudioFeatures", nil); err != nil {
		return nil, err
	}
	return f.features[id], nil
}

func (f *fakeClient) GetAudioFeaturesForTracks(_ context.Context, ids []string) ([]Object, error) {
	if err := f.record("GetAudioFeaturesForTracks", ids); err != nil {
		return nil, err
	}
	out := make([]Object, len(ids))
	for i, id := range ids {
		out[i] = f.features[id]
	}
	return out, nil
}

func (f *fakeClient) GetAudioAnalysis(_ context.Context, id string) (Object, error) {
	if err := f.record("GetAudioAnalysis", nil); err != nil {
		return nil, err
	}
	return f.analyses[id], nil
}

func (f *fakeClient) AddToMySavedTracks(_ context.Context, ids []string) error {
	if err := f.record("AddToMySavedTracks", ids); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.saved[id] = true
	}
	return nil
}

func (f *fakeClient) RemoveFromMySavedTracks(_ context.Context, ids []string) error {
	if err := f.record("RemoveFromMySavedTracks", ids); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.saved, id)
	}
	return nil
}

func (f *fakeClient) ContainsMySavedTracks(_ context.Context, ids []string) ([]bool, error) {
	if err := f.record("ContainsMySavedTracks", ids); err != nil {
		return nil, err
	}
	out := make([]bool, len(ids))
	for i, id := range ids {
		out[i] = f.saved[id]
	}
	return out, nil
}

func (f *fakeClient) GetAlbum(_ context.Context, id string, _ Options) (Object, error) {
	return f.one(KindAlbum, "GetAlbum", id)
}

func (f *fakeClient) GetAlbums(_ context.Context, ids []string, _ Options) ([]Object, error) {
	return f.many(KindAlbum, "GetAlbums", ids)
}

func (f *fakeClient) GetAlbumTracks(_ context.Context, id string, opts Options) (Page, error) {
	return f.page("GetAlbumTracks", id, opts)
}

func (f *fakeClient) GetArtist(_ context.Context, id string) (Object, error) {
	return f.one(KindArtist, "GetArtist", id)
}

func (f *fakeClient) GetArtists(_ context.Context, ids []string) ([]Object, error) {
	return f.many(KindArtist, "GetArtists", ids)
}

func (f *fakeClient) GetArtistAlbums(_ context.Context, id string, opts Options) (Page, error) {
	return f.page("GetArtistAlbums", id, opts)
}

func (f *fakeClient) GetPlaylist(_ context.Context, id string, _ Options) (Object, error) {
	return f.one(KindPlaylist, "GetPlaylist", id)
}

func (f *fakeClient) GetPlaylistTracks(_ context.Context, id string, opts Options) (Page, error) {
	return f.page("GetPlaylistTracks", id, opts)
}

// mutate records a playlist mutation and returns the next scripted
// snapshot id.
func (f *fakeClient) mutate(name string, uris []string, snapshotID string) (string, error) {
	if err := f.record(name, nil); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uris = append(f.uris, uris)
	f.snapArgs = append(f.snapArgs, snapshotID)
	if len(f.snapshots) == 0 {
		return "", nil
	}
	next := f.snapshots[0]
	f.snapshots = f.snapshots[1:]
	return next, nil
}

func (f *fakeClient) AddTracksToPlaylist(_ context.Context, _ string, uris []string, _ *int) (string, error) {
	return f.mutate("AddTracksToPlaylist", uris, "")
}

func (f *fakeClient) ReplaceTracksInPlaylist(_ context.Context, _ string, uris []string) (string, error) {
	return f.mutate("ReplaceTracksInPlaylist", uris, "")
}

func (f *fakeClient) ReorderTracksInPlaylist(_ context.Context, _ string, r Reorder) (string, error) {
	return f.mutate("ReorderTracksInPlaylist", nil, r.SnapshotID)
}

func (f *fakeClient) RemoveTracksFromPlaylist(_ context.Context, _ string, uris []string, snapshotID string) (string, error) {
	return f.mutate("RemoveTracksFromPlaylist", uris, snapshotID)
}

func (f *fakeClient) RemoveTracksFromPlaylistByPosition(_ context.Context, _ string, _ []int, snapshotID string) (string, error) {
	return f.mutate("RemoveTracksFromPlaylistByPosition", nil, snapshotID)
}

func (f *fakeClient) GetShows(_ context.Context, ids []string, _ Options) ([]Object, error) {
	return f.many(KindShow, "GetShows", ids)
}

func (f *fakeClient) GetShowEpisodes(_ context.Context, id string, opts Options) (Page, error) {
	return f.page("GetShowEpisodes", id, opts)
}

func (f *fakeClient) GetEpisodes(_ context.Context, ids []string, _ Options) ([]Object, error) {
	return f.many(KindEpisode, "GetEpisodes", ids)
}

func (f *fakeClient) GetUser(_ context.Context, id string) (Object, error) {
	return f.one(KindUser, "GetUser", id)
}

func (f *fakeClient) GetMySavedTracks(_ context.Context, opts Options) (Page, error) {
	return f.page("GetMySavedTracks", "", opts)
}

func (f *fakeClient) GetMyFollowedArtists(_ context.Context, opts Options) (Page, error) {
	if err := f.record("GetMyFollowedArtists", nil); err != nil {
		return Page{}, err
	}
	items := f.pages["GetMyFollowedArtists/"]
	start := 0
	for i, item := range items {
		if item["id"] == opts.After {
			start = i + 1
		}
	}
	end := min(start+opts.Limit, len(items))
	page := Page{Items: items[start:end], Limit: opts.Limit}
	if end < len(items) {
		page.Cursor = items[end-1]["id"].(string)
	}
	return page, nil
}

func (f *fakeClient) Search(_ context.Context, _ string, _ []Kind, _ Options) (map[Kind]Page, error) {
	if err := f.record("Search", nil); err != nil {
		return nil, err
	}
	return f.search, nil
}

func (f *fakeClient) GetRecommendations(_ context.Context, seeds Seeds, _ Options) ([]Object, error) {
	if err := f.record("GetRecommendations", seeds.Tracks); err != nil {
		return nil, err
	}
	return f.pages["GetRecommendations/"], nil
}

func (f *fakeClient) Play(_ context.Context, opts PlayOptions) error {
	if err := f.record("Play", nil); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, opts)
	return nil
}

func (f *fakeClient) GetPlaybackState(_ context.Context, _ Options) (Object, error) {
	if err := f.record("GetPlaybackState", nil); err != nil {
		return nil, err
	}
	return f.playback, nil
}

// fixtures

func simpleArtist(id, name string) Object {
	return Object{
		"external_urls": Object{}, "href": "https://api/artists/" + id, "id": id,
		"name": name, "type": "artist", "uri": "spotify:artist:" + id,
	}
}

func fullTrack(id, name string, artists ...Object) Object {
	list := make([]any, len(artists))
	for i, a := range artists {
		list[i] = a
	}
	return Object{
		"artists": list, "available_markets": []any{"US"}, "disc_number": 1.0,
		"duration_ms": 1000.0, "explicit": false, "external_urls": Object{},
		"href": "https://api/tracks/" + id, "id": id, "name": name, "preview_url": nil,
		"track_number": 1.0, "type": "track", "uri": "spotify:track:" + id,
		"album":        Object{"id": "al-" + id, "name": "Album " + name, "type": "album"},
		"external_ids": Object{}, "popularity": 50.0,
	}
}

func fullAlbum(id, name string, tracks ...Object) Object {
	items := make([]any, len(tracks))
	for i, t := range tracks {
		items[i] = t
	}
	return Object{
		"album_type": "album", "artists": []any{simpleArtist("ar-"+id, "Artist "+name)},
		"available_markets": []any{}, "external_urls": Object{}, "href": "", "id": id,
		"images": []any{}, "name": name, "release_date": "2020", "release_date_precision": "year",
		"total_tracks": float64(len(tracks)), "type": "album", "uri": "spotify:album:" + id,
		"copyrights": []any{}, "external_ids": Object{}, "genres": []any{}, "label": "L",
		"popularity": 10.0, "tracks": Object{"items": items, "total": float64(len(tracks))},
	}
}

func trackIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("t%03d", i)
	}
	return ids
}
