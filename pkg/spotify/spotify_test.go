package spotify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	libspotify "github.com/zmb3/spotify/v2"

	"Music-Catalog-Go/pkg/catalog"
)

// fakeAPI records the arguments of the library calls exercised in tests.
// Calls to methods it does not override panic through the nil interface.
type fakeAPI struct {
	api
	ids      []libspotify.ID
	calls    int
	tracks   []*libspotify.FullTrack
	features []*libspotify.AudioFeatures
	search   *libspotify.SearchResult
	lastType libspotify.SearchType
	err      error
}

func (f *fakeAPI) GetTracks(ctx context.Context, ids []libspotify.ID, opts ...libspotify.RequestOption) ([]*libspotify.FullTrack, error) {
	f.ids = ids
	f.calls++
	return f.tracks, f.err
}

func (f *fakeAPI) GetAudioFeatures(ctx context.Context, ids ...libspotify.ID) ([]*libspotify.AudioFeatures, error) {
	f.ids = ids
	return f.features, f.err
}

func (f *fakeAPI) Search(ctx context.Context, query string, t libspotify.SearchType, opts ...libspotify.RequestOption) (*libspotify.SearchResult, error) {
	f.lastType = t
	return f.search, f.err
}

func TestGetTracksKeepsNilSlots(t *testing.T) {
	fa := &fakeAPI{tracks: []*libspotify.FullTrack{
		{SimpleTrack: libspotify.SimpleTrack{ID: "a", Name: "Song"}},
		nil,
	}}
	c := &Client{api: fa}

	got, err := c.GetTracks(context.Background(), []string{"a", "b"}, catalog.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0]["name"] != "Song" || got[1] != nil {
		t.Fatalf("unexpected result: %v", got)
	}
	if len(fa.ids) != 2 || fa.ids[1] != "b" {
		t.Errorf("ids passed = %v", fa.ids)
	}
}

func TestGetAudioFeaturesEmpty(t *testing.T) {
	c := &Client{api: &fakeAPI{}}
	got, err := c.GetAudioFeatures(context.Background(), "t1")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil; got %v, %v", got, err)
	}
}

func TestSearchBuildsTypeMask(t *testing.T) {
	fa := &fakeAPI{search: &libspotify.SearchResult{
		Tracks: &libspotify.FullTrackPage{Tracks: []libspotify.FullTrack{
			{SimpleTrack: libspotify.SimpleTrack{ID: "t1", Name: "Song"}},
		}},
	}}
	c := &Client{api: fa}

	got, err := c.Search(context.Background(), "q", []catalog.Kind{catalog.KindTrack, catalog.KindArtist}, catalog.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fa.lastType != libspotify.SearchTypeTrack|libspotify.SearchTypeArtist {
		t.Errorf("type = %v", fa.lastType)
	}
	if items := got[catalog.KindTrack].Items; len(items) != 1 || items[0]["id"] != "t1" {
		t.Errorf("tracks = %v", items)
	}
	if _, ok := got[catalog.KindArtist]; !ok || len(got[catalog.KindArtist].Items) != 0 {
		t.Errorf("artists = %v", got[catalog.KindArtist])
	}
}

func TestSearchRejectsUnknownKind(t *testing.T) {
	c := &Client{api: &fakeAPI{}}
	if _, err := c.Search(context.Background(), "q", []catalog.Kind{catalog.KindUser}, catalog.Options{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestLibraryErrorPassthrough(t *testing.T) {
	boom := errors.New("boom")
	c := &Client{api: &fakeAPI{err: boom}}
	if _, err := c.GetTracks(context.Background(), []string{"a"}, catalog.Options{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

// newServer serves canned responses keyed by "METHOD /path".
func newServer(t *testing.T, routes map[string]func(w http.ResponseWriter)) (*Client, *[]recorded) {
	t.Helper()
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			if err := json.Unmarshal(b, &rec.body); err != nil {
				t.Errorf("bad body: %v", err)
			}
		}
		reqs = append(reqs, rec)
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":{"status":404,"message":"Not found."}}`)
			return
		}
		h(w)
	}))
	t.Cleanup(srv.Close)
	return New(srv.Client(), WithBaseURL(srv.URL+"/v1"), WithMarket("US")), &reqs
}

func reply(status int, body string) func(http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestAddTracksToPlaylistSendsPosition(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"POST /v1/playlists/p1/tracks": reply(http.StatusCreated, `{"snapshot_id":"s2"}`),
	})
	pos := 3
	snap, err := c.AddTracksToPlaylist(context.Background(), "p1", []string{"spotify:track:a"}, &pos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap != "s2" {
		t.Errorf("snapshot = %q", snap)
	}
	body := (*reqs)[0].body
	if body["position"] != float64(3) {
		t.Errorf("body = %v", body)
	}
}

func TestRemoveTracksStaleSnapshotIsConflict(t *testing.T) {
	c, _ := newServer(t, map[string]func(http.ResponseWriter){
		"DELETE /v1/playlists/p1/tracks": reply(http.StatusBadRequest, `{"error":{"status":400,"message":"Invalid snapshot id"}}`),
	})
	_, err := c.RemoveTracksFromPlaylist(context.Background(), "p1", []string{"spotify:track:a"}, "old")
	if !errors.Is(err, catalog.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	var ce *catalog.ConflictError
	if !errors.As(err, &ce) || ce.SnapshotID != "old" {
		t.Errorf("conflict = %+v", ce)
	}
}

func TestRemoveByPositionSendsSnapshot(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"DELETE /v1/playlists/p1/tracks": reply(http.StatusOK, `{"snapshot_id":"s3"}`),
	})
	if _, err := c.RemoveTracksFromPlaylistByPosition(context.Background(), "p1", []int{0, 2}, "s2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := (*reqs)[0].body
	if body["snapshot_id"] != "s2" || len(body["positions"].([]any)) != 2 {
		t.Errorf("body = %v", body)
	}
}

func TestGetEpisodeNotFound(t *testing.T) {
	c, _ := newServer(t, nil)
	_, err := c.GetEpisode(context.Background(), "missing", catalog.Options{})
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != catalog.KindEpisode || nf.ID != "missing" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetShowsBulk(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"GET /v1/shows": reply(http.StatusOK, `{"shows":[{"id":"s1","type":"show"},null]}`),
	})
	got, err := c.GetShows(context.Background(), []string{"s1", "s2"}, catalog.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0]["id"] != "s1" || got[1] != nil {
		t.Errorf("shows = %v", got)
	}
	if q := (*reqs)[0].query; !strings.Contains(q, "ids=s1%2Cs2") || !strings.Contains(q, "market=US") {
		t.Errorf("query = %s", q)
	}
}

func TestFollowedArtistsCursor(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"GET /v1/me/following": reply(http.StatusOK, `{"artists":{"items":[{"id":"a1","type":"artist"}],"limit":1,"total":2,"cursors":{"after":"a1"}}}`),
	})
	p, err := c.GetMyFollowedArtists(context.Background(), catalog.Options{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Cursor != "a1" || p.Total != 2 || len(p.Items) != 1 {
		t.Errorf("page = %+v", p)
	}
	if q := (*reqs)[0].query; !strings.Contains(q, "type=artist") {
		t.Errorf("query = %s", q)
	}
}

func TestPlaybackStateIdle(t *testing.T) {
	c, _ := newServer(t, map[string]func(http.ResponseWriter){
		"GET /v1/me/player": reply(http.StatusNoContent, ""),
	})
	obj, err := c.GetPlaybackState(context.Background(), catalog.Options{})
	if err != nil || obj != nil {
		t.Fatalf("expected nil, nil; got %v, %v", obj, err)
	}
}

func TestPlayBody(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"PUT /v1/me/player/play": reply(http.StatusNoContent, ""),
	})
	pos := 2
	err := c.Play(context.Background(), catalog.PlayOptions{DeviceID: "d1", ContextURI: "spotify:album:x", OffsetPosition: &pos})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := (*reqs)[0]
	if r.query != "device_id=d1" || r.body["context_uri"] != "spotify:album:x" {
		t.Errorf("request = %+v", r)
	}
	if off := r.body["offset"].(map[string]any); off["position"] != float64(2) {
		t.Errorf("offset = %v", off)
	}
}

func TestRecommendationsQuery(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"GET /v1/recommendations": reply(http.StatusOK, `{"tracks":[{"id":"t1","type":"track"}]}`),
	})
	got, err := c.GetRecommendations(context.Background(), catalog.Seeds{
		Tracks:     []string{"t0"},
		Attributes: map[string]any{"target_energy": 0.5},
	}, catalog.Options{Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("tracks = %v", got)
	}
	q := (*reqs)[0].query
	for _, want := range []string{"seed_tracks=t0", "target_energy=0.5", "limit=5"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %s missing %s", q, want)
		}
	}
}

func TestGetTrackThroughLibraryNotFound(t *testing.T) {
	c, _ := newServer(t, nil)
	_, err := c.GetTrack(context.Background(), "nope", catalog.Options{})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetTracksThroughLibrary(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"GET /v1/tracks": reply(http.StatusOK, `{"tracks":[{"id":"a","name":"A","type":"track"},null]}`),
	})
	got, err := c.GetTracks(context.Background(), []string{"a", "b"}, catalog.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0]["name"] != "A" || got[1] != nil {
		t.Errorf("tracks = %v", got)
	}
	if q := (*reqs)[0].query; !strings.Contains(q, "market=US") {
		t.Errorf("query = %s", q)
	}
}

func TestGetAlbumsSplitsIntoTwenties(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		if len(ids) > albumBatch {
			t.Errorf("%d ids in one request", len(ids))
		}
		albums := make([]map[string]string, len(ids))
		for i, id := range ids {
			albums[i] = map[string]string{"id": id, "type": "album"}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"albums": albums})
	}))
	defer srv.Close()
	c := New(srv.Client(), WithBaseURL(srv.URL+"/v1"))

	ids := make([]string, 45)
	for i := range ids {
		ids[i] = string(rune('a'+i%26)) + strings.Repeat("x", i/26)
	}
	got, err := c.GetAlbums(context.Background(), ids, catalog.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if len(got) != 45 || got[44]["id"] != ids[44] {
		t.Errorf("albums out of order: %d", len(got))
	}
}

const fullAlbumJSON = `{
	"album_type": "album", "artists": [{"id": "ar1", "type": "artist", "name": "A"}],
	"available_markets": ["US"], "copyrights": [], "external_ids": {"upc": "1"},
	"external_urls": {}, "genres": [], "href": "h", "id": "al1", "images": [],
	"label": "Label", "name": "Album", "popularity": 10, "release_date": "2020",
	"release_date_precision": "year", "total_tracks": 1, "type": "album", "uri": "spotify:album:al1",
	"tracks": {"items": [{"id": "t1", "type": "track", "name": "One"}], "limit": 50, "offset": 0, "total": 1}
}`

func TestFetchedAlbumIsFullAndLinksTracks(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"GET /v1/albums/al1": reply(http.StatusOK, fullAlbumJSON),
	})
	ctx := context.Background()
	album, err := catalog.NewAlbum(catalog.ByID("al1"))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := album.GetFullObject(ctx, c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !album.ContainsFullObject() {
		t.Fatal("album should satisfy the full tier")
	}

	tracks, err := album.GetTracks(ctx, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	track, err := tracks.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	got, err := track.GetAlbum(ctx, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID() != "al1" {
		t.Errorf("album = %v", got)
	}
	if len(*reqs) != 1 {
		t.Errorf("expected 1 request, got %d", len(*reqs))
	}
}

func TestConvertedPagesDropEmptyEmbeds(t *testing.T) {
	p, err := toPage(&libspotify.SimpleTrackPage{Tracks: []libspotify.SimpleTrack{{ID: "t1", Name: "One"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.Items[0]["album"]; ok {
		t.Errorf("zero album kept: %v", p.Items[0]["album"])
	}

	p, err = toPage(&libspotify.SimpleEpisodePage{Episodes: []libspotify.EpisodePage{{ID: "e1", Name: "Ep", Type: "episode"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.Items[0]["show"]; ok {
		t.Errorf("zero show kept: %v", p.Items[0]["show"])
	}
}

func TestEpisodeWithoutShowFetchesIt(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"GET /v1/episodes/e1": reply(http.StatusOK, `{"id":"e1","type":"episode","show":{"id":"s1","type":"show","name":"S"}}`),
	})
	p, err := toPage(&libspotify.SimpleEpisodePage{Episodes: []libspotify.EpisodePage{{ID: "e1", Name: "Ep", Type: "episode"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ep, err := catalog.NewEpisode(catalog.FromObject(p.Items[0]))
	if err != nil {
		t.Fatal(err)
	}
	show, err := ep.GetShow(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if show == nil || show.ID() != "s1" {
		t.Errorf("show = %v", show)
	}
	if len(*reqs) != 1 {
		t.Errorf("expected 1 request, got %d", len(*reqs))
	}
}

func TestSavedShowsLibrary(t *testing.T) {
	c, reqs := newServer(t, map[string]func(http.ResponseWriter){
		"PUT /v1/me/shows":          reply(http.StatusOK, ``),
		"DELETE /v1/me/shows":       reply(http.StatusOK, ``),
		"GET /v1/me/shows/contains": reply(http.StatusOK, `[true,false]`),
	})
	ctx := context.Background()
	if err := c.AddToMySavedShows(ctx, []string{"s1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.RemoveFromMySavedShows(ctx, []string{"s1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := c.ContainsMySavedShows(ctx, []string{"s1", "s2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("contains = %v", got)
	}
	for _, r := range *reqs {
		if !strings.HasPrefix(r.query, "ids=s1") {
			t.Errorf("%s %s query = %s", r.method, r.path, r.query)
		}
	}
}
