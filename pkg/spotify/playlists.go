package spotify

import (
	"context"
	"net/http"
	"net/url"

	libspotify "github.com/zmb3/spotify/v2"

	"Music-Catalog-Go/pkg/catalog"
)

// Playlist entries may hold episodes, which the library's typed playlist
// track cannot represent, so playlist reads and track mutations are sent
// directly.

func playlistPath(id string) string { return "playlists/" + url.PathEscape(id) }

// GetPlaylist fetches a playlist, including episode entries.
func (c *Client) GetPlaylist(ctx context.Context, id string, opts catalog.Options) (catalog.Object, error) {
	q := c.marketQuery(opts)
	q.Set("additional_types", "track,episode")
	var obj catalog.Object
	if err := c.do(ctx, http.MethodGet, playlistPath(id), q, nil, &obj); err != nil {
		return nil, notFound(err, catalog.KindPlaylist, id)
	}
	return obj, nil
}

// GetPlaylistTracks fetches one page of playlist entries, tracks and episodes alike.
func (c *Client) GetPlaylistTracks(ctx context.Context, id string, opts catalog.Options) (catalog.Page, error) {
	q := c.pageQuery(opts, true)
	q.Set("additional_types", "track,episode")
	p, err := c.getPage(ctx, playlistPath(id)+"/tracks", "", q)
	if err != nil {
		return catalog.Page{}, notFound(err, catalog.KindPlaylist, id)
	}
	return p, nil
}

func (c *Client) mutate(ctx context.Context, method, id string, body map[string]any, snapshotID string) (string, error) {
	var resp snapshotResponse
	err := c.do(ctx, method, playlistPath(id)+"/tracks", nil, body, &resp)
	if err != nil {
		return "", conflict(err, id, snapshotID)
	}
	return resp.SnapshotID, nil
}

// AddTracksToPlaylist inserts uris at position, or appends when position is nil.
func (c *Client) AddTracksToPlaylist(ctx context.Context, id string, uris []string, position *int) (string, error) {
	body := map[string]any{"uris": uris}
	if position != nil {
		body["position"] = *position
	}
	return c.mutate(ctx, http.MethodPost, id, body, "")
}

// ReplaceTracksInPlaylist replaces every entry of the playlist with uris.
func (c *Client) ReplaceTracksInPlaylist(ctx context.Context, id string, uris []string) (string, error) {
	return c.mutate(ctx, http.MethodPut, id, map[string]any{"uris": uris}, "")
}

// ReorderTracksInPlaylist moves a range of entries.
func (c *Client) ReorderTracksInPlaylist(ctx context.Context, id string, r catalog.Reorder) (string, error) {
	body := map[string]any{
		"range_start":   r.RangeStart,
		"range_length":  r.RangeLength,
		"insert_before": r.InsertBefore,
	}
	if r.SnapshotID != "" {
		body["snapshot_id"] = r.SnapshotID
	}
	return c.mutate(ctx, http.MethodPut, id, body, r.SnapshotID)
}

// RemoveTracksFromPlaylist removes every occurrence of uris.
func (c *Client) RemoveTracksFromPlaylist(ctx context.Context, id string, uris []string, snapshotID string) (string, error) {
	tracks := make([]map[string]string, len(uris))
	for i, u := range uris {
		tracks[i] = map[string]string{"uri": u}
	}
	body := map[string]any{"tracks": tracks}
	if snapshotID != "" {
		body["snapshot_id"] = snapshotID
	}
	return c.mutate(ctx, http.MethodDelete, id, body, snapshotID)
}

// RemoveTracksFromPlaylistByPosition removes the entries at positions. snapshotID is required.
func (c *Client) RemoveTracksFromPlaylistByPosition(ctx context.Context, id string, positions []int, snapshotID string) (string, error) {
	body := map[string]any{"positions": positions, "snapshot_id": snapshotID}
	return c.mutate(ctx, http.MethodDelete, id, body, snapshotID)
}

// ChangePlaylistDetails updates the playlist's details. Nil fields are left
// unchanged.
func (c *Client) ChangePlaylistDetails(ctx context.Context, id string, d catalog.PlaylistDetails) error {
	body := map[string]any{}
	if d.Name != nil {
		body["name"] = *d.Name
	}
	if d.Description != nil {
		body["description"] = *d.Description
	}
	if d.Public != nil {
		body["public"] = *d.Public
	}
	if d.Collaborative != nil {
		body["collaborative"] = *d.Collaborative
	}
	if len(body) == 0 {
		return nil
	}
	err := c.do(ctx, http.MethodPut, playlistPath(id), nil, body, nil)
	return notFound(err, catalog.KindPlaylist, id)
}

// FollowPlaylist follows a playlist as the current user.
func (c *Client) FollowPlaylist(ctx context.Context, id string, public bool) error {
	return notFound(c.api.FollowPlaylist(ctx, libspotify.ID(id), public), catalog.KindPlaylist, id)
}

// UnfollowPlaylist unfollows a playlist.
func (c *Client) UnfollowPlaylist(ctx context.Context, id string) error {
	return notFound(c.api.UnfollowPlaylist(ctx, libspotify.ID(id)), catalog.KindPlaylist, id)
}

// AreFollowingPlaylist reports which users follow the playlist.
func (c *Client) AreFollowingPlaylist(ctx context.Context, id string, userIDs []string) ([]bool, error) {
	ok, err := c.api.UserFollowsPlaylist(ctx, libspotify.ID(id), userIDs...)
	if err != nil {
		return nil, notFound(err, catalog.KindPlaylist, id)
	}
	return ok, nil
}
