package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	libspotify "github.com/zmb3/spotify/v2"

	"Music-Catalog-Go/pkg/catalog"
)

var searchTypes = map[catalog.Kind]libspotify.SearchType{
	catalog.KindTrack:    libspotify.SearchTypeTrack,
	catalog.KindAlbum:    libspotify.SearchTypeAlbum,
	catalog.KindArtist:   libspotify.SearchTypeArtist,
	catalog.KindPlaylist: libspotify.SearchTypePlaylist,
	catalog.KindShow:     libspotify.SearchTypeShow,
	catalog.KindEpisode:  libspotify.SearchTypeEpisode,
}

// Search returns one page per requested kind.
func (c *Client) Search(ctx context.Context, query string, kinds []catalog.Kind, opts catalog.Options) (map[catalog.Kind]catalog.Page, error) {
	var t libspotify.SearchType
	for _, k := range kinds {
		st, ok := searchTypes[k]
		if !ok {
			return nil, fmt.Errorf("search: unsupported kind %q", k)
		}
		t |= st
	}
	res, err := c.api.Search(ctx, query, t, c.reqOpts(opts, true)...)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	var pages map[string]rawPage
	if err := json.Unmarshal(b, &pages); err != nil {
		return nil, err
	}
	out := make(map[catalog.Kind]catalog.Page, len(kinds))
	for _, k := range kinds {
		out[k] = pages[string(k)+"s"].page()
	}
	return out, nil
}

// GetRecommendations sends seeds and tunable attributes as query parameters.
func (c *Client) GetRecommendations(ctx context.Context, seeds catalog.Seeds, opts catalog.Options) ([]catalog.Object, error) {
	q := url.Values{}
	if len(seeds.Artists) > 0 {
		q.Set("seed_artists", strings.Join(seeds.Artists, ","))
	}
	if len(seeds.Tracks) > 0 {
		q.Set("seed_tracks", strings.Join(seeds.Tracks, ","))
	}
	if len(seeds.Genres) > 0 {
		q.Set("seed_genres", strings.Join(seeds.Genres, ","))
	}
	keys := make([]string, 0, len(seeds.Attributes))
	for k := range seeds.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, fmt.Sprint(seeds.Attributes[k]))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if m := c.marketFor(opts); m != "" {
		q.Set("market", m)
	}
	return c.getList(ctx, "recommendations", "tracks", q)
}

// GetFeaturedPlaylists fetches one page of featured playlists.
func (c *Client) GetFeaturedPlaylists(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	_, p, err := c.api.FeaturedPlaylists(ctx, c.reqOpts(opts, false)...)
	if err != nil {
		return catalog.Page{}, err
	}
	return toPage(p)
}

// GetNewReleases fetches one page of new album releases.
func (c *Client) GetNewReleases(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.NewReleases(ctx, c.reqOpts(opts, false)...)
	if err != nil {
		return catalog.Page{}, err
	}
	return toPage(p)
}

// GetMySavedTracks fetches one page of the user's saved tracks.
func (c *Client) GetMySavedTracks(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.CurrentUsersTracks(ctx, c.reqOpts(opts, true)...)
	if err != nil {
		return catalog.Page{}, err
	}
	return toPage(p)
}

// GetMySavedAlbums fetches one page of the user's saved albums.
func (c *Client) GetMySavedAlbums(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.CurrentUsersAlbums(ctx, c.reqOpts(opts, true)...)
	if err != nil {
		return catalog.Page{}, err
	}
	return toPage(p)
}

// GetMySavedShows fetches one page of the user's saved shows.
func (c *Client) GetMySavedShows(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	return c.getPage(ctx, "me/shows", "", c.pageQuery(opts, false))
}

// GetMySavedEpisodes fetches one page of the user's saved episodes.
func (c *Client) GetMySavedEpisodes(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	return c.getPage(ctx, "me/episodes", "", c.pageQuery(opts, true))
}

// GetMyPlaylists fetches one page of the playlists the user owns or follows.
func (c *Client) GetMyPlaylists(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.CurrentUsersPlaylists(ctx, c.reqOpts(opts, false)...)
	if err != nil {
		return catalog.Page{}, err
	}
	return toPage(p)
}

// GetMyFollowedArtists is cursor paged; the next cursor is in Page.Cursor.
func (c *Client) GetMyFollowedArtists(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	q := c.pageQuery(catalog.Options{Limit: opts.Limit, After: opts.After}, false)
	q.Set("type", "artist")
	return c.getPage(ctx, "me/following", "artists", q)
}

// GetMyTopTracks fetches one page of the user's top tracks.
func (c *Client) GetMyTopTracks(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.CurrentUsersTopTracks(ctx, c.reqOpts(opts, false)...)
	if err != nil {
		return catalog.Page{}, err
	}
	return toPage(p)
}

// GetMyTopArtists fetches one page of the user's top artists.
func (c *Client) GetMyTopArtists(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.CurrentUsersTopArtists(ctx, c.reqOpts(opts, false)...)
	if err != nil {
		return catalog.Page{}, err
	}
	return toPage(p)
}

// GetMyRecentlyPlayedTracks fetches one cursor page of play history.
func (c *Client) GetMyRecentlyPlayedTracks(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	q := c.pageQuery(catalog.Options{Limit: opts.Limit, After: opts.After}, false)
	return c.getPage(ctx, "me/player/recently-played", "", q)
}

// Play starts or resumes playback.
func (c *Client) Play(ctx context.Context, opts catalog.PlayOptions) error {
	body := map[string]any{}
	if opts.ContextURI != "" {
		body["context_uri"] = opts.ContextURI
	}
	if len(opts.URIs) > 0 {
		body["uris"] = opts.URIs
	}
	switch {
	case opts.OffsetURI != "":
		body["offset"] = map[string]any{"uri": opts.OffsetURI}
	case opts.OffsetPosition != nil:
		body["offset"] = map[string]any{"position": *opts.OffsetPosition}
	}
	if opts.PositionMs > 0 {
		body["position_ms"] = opts.PositionMs
	}
	var q url.Values
	if opts.DeviceID != "" {
		q = url.Values{"device_id": {opts.DeviceID}}
	}
	return c.do(ctx, http.MethodPut, "me/player/play", q, body, nil)
}

// GetPlaybackState returns nil when no device is active.
func (c *Client) GetPlaybackState(ctx context.Context, opts catalog.Options) (catalog.Object, error) {
	q := c.marketQuery(opts)
	q.Set("additional_types", "track,episode")
	var obj catalog.Object
	if err := c.do(ctx, http.MethodGet, "me/player", q, nil, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
