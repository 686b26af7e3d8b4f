package catalog

import (
	"context"
)

// The saved-item listings return wrapped items. The wrappers are removed and
// added_at is kept on the entities.

// GetMySavedTracks returns one page of the user's saved tracks.
func GetMySavedTracks(ctx context.Context, c LibraryAPI, opts Options) (*Tracks, error) {
	page, err := c.GetMySavedTracks(ctx, opts)
	if err != nil {
		return nil, err
	}
	ts := newTracks()
	return ts, ts.pushObjects(page.Items)
}

// GetAllMySavedTracks pages through the user's saved tracks.
func GetAllMySavedTracks(ctx context.Context, c LibraryAPI) (*Tracks, error) {
	items, err := collectPages(ctx, Options{}, PageSize, c.GetMySavedTracks)
	if err != nil {
		return nil, err
	}
	ts := newTracks()
	return ts, ts.pushObjects(items)
}

// GetMySavedAlbums returns one page of the user's saved albums.
func GetMySavedAlbums(ctx context.Context, c LibraryAPI, opts Options) (*Albums, error) {
	page, err := c.GetMySavedAlbums(ctx, opts)
	if err != nil {
		return nil, err
	}
	as := newAlbums()
	return as, as.pushObjects(page.Items)
}

// GetAllMySavedAlbums pages through the user's saved albums.
func GetAllMySavedAlbums(ctx context.Context, c LibraryAPI) (*Albums, error) {
	items, err := collectPages(ctx, Options{}, PageSize, c.GetMySavedAlbums)
	if err != nil {
		return nil, err
	}
	as := newAlbums()
	return as, as.pushObjects(items)
}

// GetMySavedShows returns one page of the user's saved shows.
func GetMySavedShows(ctx context.Context, c LibraryAPI, opts Options) (*Shows, error) {
	page, err := c.GetMySavedShows(ctx, opts)
	if err != nil {
		return nil, err
	}
	ss := newShows()
	return ss, ss.pushObjects(page.Items)
}

// GetAllMySavedShows pages through the user's saved shows.
func GetAllMySavedShows(ctx context.Context, c LibraryAPI) (*Shows, error) {
	items, err := collectPages(ctx, Options{}, PageSize, c.GetMySavedShows)
	if err != nil {
		return nil, err
	}
	ss := newShows()
	return ss, ss.pushObjects(items)
}

// GetMySavedEpisodes returns one page of the user's saved episodes.
func GetMySavedEpisodes(ctx context.Context, c LibraryAPI, opts Options) (*Episodes, error) {
	page, err := c.GetMySavedEpisodes(ctx, opts)
	if err != nil {
		return nil, err
	}
	es := newEpisodes()
	return es, es.pushObjects(page.Items)
}

// GetAllMySavedEpisodes pages through the user's saved episodes.
func GetAllMySavedEpisodes(ctx context.Context, c LibraryAPI) (*Episodes, error) {
	items, err := collectPages(ctx, Options{}, PageSize, c.GetMySavedEpisodes)
	if err != nil {
		return nil, err
	}
	es := newEpisodes()
	return es, es.pushObjects(items)
}

// GetMyPlaylists returns one page of the playlists owned or followed by the
// user.
func GetMyPlaylists(ctx context.Context, c LibraryAPI, opts Options) (*Playlists, error) {
	page, err := c.GetMyPlaylists(ctx, opts)
	if err != nil {
		return nil, err
	}
	ps := newPlaylists()
	return ps, ps.pushObjects(page.Items)
}

// GetAllMyPlaylists pages through the playlists the user owns or follows.
func GetAllMyPlaylists(ctx context.Context, c LibraryAPI) (*Playlists, error) {
	items, err := collectPages(ctx, Options{}, PageSize, c.GetMyPlaylists)
	if err != nil {
		return nil, err
	}
	ps := newPlaylists()
	return ps, ps.pushObjects(items)
}

// GetMyFollowedArtists returns one cursor page of the artists the user follows.
func GetMyFollowedArtists(ctx context.Context, c LibraryAPI, opts Options) (*Artists, error) {
	page, err := c.GetMyFollowedArtists(ctx, opts)
	if err != nil {
		return nil, err
	}
	as := newArtists()
	return as, as.pushObjects(page.Items)
}

// GetAllMyFollowedArtists follows the listing's "after" cursor to the end.
func GetAllMyFollowedArtists(ctx context.Context, c LibraryAPI) (*Artists, error) {
	items, err := collectCursor(ctx, Options{}, PageSize, c.GetMyFollowedArtists)
	if err != nil {
		return nil, err
	}
	as := newArtists()
	return as, as.pushObjects(items)
}

// GetMyTopTracks returns one page of the user's top tracks. opts.TimeRange
// is one of short_term, medium_term or long_term.
func GetMyTopTracks(ctx context.Context, c LibraryAPI, opts Options) (*Tracks, error) {
	page, err := c.GetMyTopTracks(ctx, opts)
	if err != nil {
		return nil, err
	}
	ts := newTracks()
	return ts, ts.pushObjects(page.Items)
}

// GetMyTopArtists returns the user's top artists for opts.TimeRange.
func GetMyTopArtists(ctx context.Context, c LibraryAPI, opts Options) (*Artists, error) {
	page, err := c.GetMyTopArtists(ctx, opts)
	if err != nil {
		return nil, err
	}
	as := newArtists()
	return as, as.pushObjects(page.Items)
}

// GetMyRecentlyPlayedTracks returns recently played tracks, most recent
// first. A track played twice appears twice.
func GetMyRecentlyPlayedTracks(ctx context.Context, c LibraryAPI, opts Options) (*Tracks, error) {
	page, err := c.GetMyRecentlyPlayedTracks(ctx, opts)
	if err != nil {
		return nil, err
	}
	ts := newTracks()
	return ts, ts.pushObjects(page.Items)
}
