package spotify

import (
	"context"
	"net/http"
	"net/url"

	"github.com/samber/lo"
	libspotify "github.com/zmb3/spotify/v2"

	"Music-Catalog-Go/pkg/catalog"
)

// albumBatch is the bulk album endpoint limit, lower than the usual 50.
const albumBatch = 20

// GetTrack fetches a track.
func (c *Client) GetTrack(ctx context.Context, id string, opts catalog.Options) (catalog.Object, error) {
	t, err := c.api.GetTrack(ctx, libspotify.ID(id), c.reqOpts(opts, true)...)
	if err != nil {
		return nil, notFound(err, catalog.KindTrack, id)
	}
	return toObject(t)
}

// GetTracks fetches up to 50 tracks. Unknown ids give nil slots.
func (c *Client) GetTracks(ctx context.Context, ids []string, opts catalog.Options) ([]catalog.Object, error) {
	ts, err := c.api.GetTracks(ctx, toIDs(ids), c.reqOpts(opts, true)...)
	if err != nil {
		return nil, err
	}
	return toObjects(ts)
}

// GetAudioFeatures returns nil when the track has no features.
func (c *Client) GetAudioFeatures(ctx context.Context, id string) (catalog.Object, error) {
	fs, err := c.api.GetAudioFeatures(ctx, libspotify.ID(id))
	if err != nil {
		return nil, notFound(err, catalog.KindTrack, id)
	}
	if len(fs) == 0 {
		return nil, nil
	}
	return toObject(fs[0])
}

// GetAudioFeaturesForTracks fetches audio features for up to 100 tracks.
func (c *Client) GetAudioFeaturesForTracks(ctx context.Context, ids []string) ([]catalog.Object, error) {
	fs, err := c.api.GetAudioFeatures(ctx, toIDs(ids)...)
	if err != nil {
		return nil, err
	}
	return toObjects(fs)
}

// GetAudioAnalysis fetches the analysis of one track.
func (c *Client) GetAudioAnalysis(ctx context.Context, id string) (catalog.Object, error) {
	a, err := c.api.GetAudioAnalysis(ctx, libspotify.ID(id))
	if err != nil {
		return nil, notFound(err, catalog.KindTrack, id)
	}
	return toObject(a)
}

// AddToMySavedTracks saves tracks to the user's library.
func (c *Client) AddToMySavedTracks(ctx context.Context, ids []string) error {
	return c.api.AddTracksToLibrary(ctx, toIDs(ids)...)
}

// RemoveFromMySavedTracks removes tracks from the user's library.
func (c *Client) RemoveFromMySavedTracks(ctx context.Context, ids []string) error {
	return c.api.RemoveTracksFromLibrary(ctx, toIDs(ids)...)
}

// ContainsMySavedTracks reports which tracks are in the user's library.
func (c *Client) ContainsMySavedTracks(ctx context.Context, ids []string) ([]bool, error) {
	return c.api.UserHasTracks(ctx, toIDs(ids)...)
}

// GetAlbum fetches an album. Albums are decoded from the raw response
// because the library's album type drops fields such as label.
func (c *Client) GetAlbum(ctx context.Context, id string, opts catalog.Options) (catalog.Object, error) {
	var obj catalog.Object
	if err := c.do(ctx, http.MethodGet, "albums/"+url.PathEscape(id), c.marketQuery(opts), nil, &obj); err != nil {
		return nil, notFound(err, catalog.KindAlbum, id)
	}
	return obj, nil
}

// GetAlbums splits the request into groups of 20 and keeps the slots in
// request order.
func (c *Client) GetAlbums(ctx context.Context, ids []string, opts catalog.Options) ([]catalog.Object, error) {
	out := make([]catalog.Object, 0, len(ids))
	for _, chunk := range lo.Chunk(ids, albumBatch) {
		objs, err := c.getList(ctx, "albums", "albums", idsQuery(chunk, c.marketFor(opts)))
		if err != nil {
			return nil, err
		}
		out = append(out, objs...)
	}
	return out, nil
}

// GetAlbumTracks fetches one page of an album's tracks.
func (c *Client) GetAlbumTracks(ctx context.Context, id string, opts catalog.Options) (catalog.Page, error) {
	p, err := c.getPage(ctx, "albums/"+url.PathEscape(id)+"/tracks", "", c.pageQuery(opts, true))
	if err != nil {
		return catalog.Page{}, notFound(err, catalog.KindAlbum, id)
	}
	return p, nil
}

// AddToMySavedAlbums saves albums to the user's library.
func (c *Client) AddToMySavedAlbums(ctx context.Context, ids []string) error {
	return c.api.AddAlbumsToLibrary(ctx, toIDs(ids)...)
}

// RemoveFromMySavedAlbums removes albums from the user's library.
func (c *Client) RemoveFromMySavedAlbums(ctx context.Context, ids []string) error {
	return c.api.RemoveAlbumsFromLibrary(ctx, toIDs(ids)...)
}

// ContainsMySavedAlbums reports which albums are in the user's library.
func (c *Client) ContainsMySavedAlbums(ctx context.Context, ids []string) ([]bool, error) {
	return c.api.UserHasAlbums(ctx, toIDs(ids)...)
}

// GetArtist fetches an artist.
func (c *Client) GetArtist(ctx context.Context, id string) (catalog.Object, error) {
	a, err := c.api.GetArtist(ctx, libspotify.ID(id))
	if err != nil {
		return nil, notFound(err, catalog.KindArtist, id)
	}
	return toObject(a)
}

// GetArtists fetches up to 50 artists.
func (c *Client) GetArtists(ctx context.Context, ids []string) ([]catalog.Object, error) {
	as, err := c.api.GetArtists(ctx, toIDs(ids)...)
	if err != nil {
		return nil, err
	}
	return toObjects(as)
}

// GetArtistAlbums fetches one page of an artist's albums.
func (c *Client) GetArtistAlbums(ctx context.Context, id string, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.GetArtistAlbums(ctx, libspotify.ID(id), nil, c.reqOpts(opts, true)...)
	if err != nil {
		return catalog.Page{}, notFound(err, catalog.KindArtist, id)
	}
	return toPage(p)
}

// GetArtistTopTracks falls back to the client market when country is empty.
func (c *Client) GetArtistTopTracks(ctx context.Context, id, country string) ([]catalog.Object, error) {
	if country == "" {
		country = c.market
	}
	ts, err := c.api.GetArtistsTopTracks(ctx, libspotify.ID(id), country)
	if err != nil {
		return nil, notFound(err, catalog.KindArtist, id)
	}
	return toObjects(ts)
}

// GetArtistRelatedArtists fetches artists similar to id.
func (c *Client) GetArtistRelatedArtists(ctx context.Context, id string) ([]catalog.Object, error) {
	as, err := c.api.GetRelatedArtists(ctx, libspotify.ID(id))
	if err != nil {
		return nil, notFound(err, catalog.KindArtist, id)
	}
	return toObjects(as)
}

// FollowArtists follows artists as the current user.
func (c *Client) FollowArtists(ctx context.Context, ids []string) error {
	return c.api.FollowArtist(ctx, toIDs(ids)...)
}

// UnfollowArtists unfollows artists.
func (c *Client) UnfollowArtists(ctx context.Context, ids []string) error {
	return c.api.UnfollowArtist(ctx, toIDs(ids)...)
}

// IsFollowingArtists reports which artists the current user follows.
func (c *Client) IsFollowingArtists(ctx context.Context, ids []string) ([]bool, error) {
	return c.api.CurrentUserFollows(ctx, "artist", toIDs(ids)...)
}
