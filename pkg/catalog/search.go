package catalog

import (
	"context"
	"slices"
)

// SearchKinds lists the kinds accepted by Search.
var SearchKinds = []Kind{KindTrack, KindAlbum, KindArtist, KindPlaylist, KindShow, KindEpisode}

// SearchResults holds one collection per searched kind. Kinds that were not
// requested are nil.
type SearchResults struct {
	Tracks    *Tracks
	Albums    *Albums
	Artists   *Artists
	Playlists *Playlists
	Shows     *Shows
	Episodes  *Episodes
}

// Search runs a single search request over kinds.
func Search(ctx context.Context, c BrowseAPI, query string, kinds []Kind, opts Options) (*SearchResults, error) {
	if query == "" {
		return nil, invalid("search", "empty query")
	}
	if len(kinds) == 0 {
		return nil, invalid("search", "no kinds provided")
	}
	for _, k := range kinds {
		if !slices.Contains(SearchKinds, k) {
			return nil, invalid("search", "cannot search for %q", k)
		}
	}
	pages, err := c.Search(ctx, query, kinds, opts)
	if err != nil {
		return nil, err
	}
	res := &SearchResults{}
	for _, k := range kinds {
		items := pages[k].Items
		switch k {
		case KindTrack:
			res.Tracks = newTracks()
			err = res.Tracks.pushObjects(items)
		case KindAlbum:
			res.Albums = newAlbums()
			err = res.Albums.pushObjects(items)
		case KindArtist:
			res.Artists = newArtists()
			err = res.Artists.pushObjects(items)
		case KindPlaylist:
			res.Playlists = newPlaylists()
			err = res.Playlists.pushObjects(items)
		case KindShow:
			res.Shows = newShows()
			err = res.Shows.pushObjects(items)
		case KindEpisode:
			res.Episodes = newEpisodes()
			err = res.Episodes.pushObjects(items)
		}
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// SearchTracks returns one page of tracks matching query.
func SearchTracks(ctx context.Context, c BrowseAPI, query string, opts Options) (*Tracks, error) {
	res, err := Search(ctx, c, query, []Kind{KindTrack}, opts)
	if err != nil {
		return nil, err
	}
	return res.Tracks, nil
}

// SearchAlbums returns one page of albums matching query.
func SearchAlbums(ctx context.Context, c BrowseAPI, query string, opts Options) (*Albums, error) {
	res, err := Search(ctx, c, query, []Kind{KindAlbum}, opts)
	if err != nil {
		return nil, err
	}
	return res.Albums, nil
}

// SearchArtists returns one page of artists matching query.
func SearchArtists(ctx context.Context, c BrowseAPI, query string, opts Options) (*Artists, error) {
	res, err := Search(ctx, c, query, []Kind{KindArtist}, opts)
	if err != nil {
		return nil, err
	}
	return res.Artists, nil
}

// SearchPlaylists returns one page of playlists matching query.
func SearchPlaylists(ctx context.Context, c BrowseAPI, query string, opts Options) (*Playlists, error) {
	res, err := Search(ctx, c, query, []Kind{KindPlaylist}, opts)
	if err != nil {
		return nil, err
	}
	return res.Playlists, nil
}

// SearchShows returns one page of shows matching query.
func SearchShows(ctx context.Context, c BrowseAPI, query string, opts Options) (*Shows, error) {
	res, err := Search(ctx, c, query, []Kind{KindShow}, opts)
	if err != nil {
		return nil, err
	}
	return res.Shows, nil
}

// SearchEpisodes returns one page of episodes matching query.
func SearchEpisodes(ctx context.Context, c BrowseAPI, query string, opts Options) (*Episodes, error) {
	res, err := Search(ctx, c, query, []Kind{KindEpisode}, opts)
	if err != nil {
		return nil, err
	}
	return res.Episodes, nil
}

// maxSeeds is the largest number of seeds a recommendations request accepts.
const maxSeeds = 5

// GetRecommendations returns tracks recommended from seeds.
func GetRecommendations(ctx context.Context, c BrowseAPI, seeds Seeds, opts Options) (*Tracks, error) {
	n := len(seeds.Artists) + len(seeds.Tracks) + len(seeds.Genres)
	if n == 0 || n > maxSeeds {
		return nil, invalid("recommendations", "need between 1 and %d seeds, got %d", maxSeeds, n)
	}
	items, err := c.GetRecommendations(ctx, seeds, opts)
	if err != nil {
		return nil, err
	}
	ts := newTracks()
	return ts, ts.pushObjects(items)
}

// GetFeaturedPlaylists returns one page of editorial playlists.
func GetFeaturedPlaylists(ctx context.Context, c BrowseAPI, opts Options) (*Playlists, error) {
	page, err := c.GetFeaturedPlaylists(ctx, opts)
	if err != nil {
		return nil, err
	}
	ps := newPlaylists()
	return ps, ps.pushObjects(page.Items)
}

// GetNewReleases returns one page of newly released albums.
func GetNewReleases(ctx context.Context, c BrowseAPI, opts Options) (*Albums, error) {
	page, err := c.GetNewReleases(ctx, opts)
	if err != nil {
		return nil, err
	}
	as := newAlbums()
	return as, as.pushObjects(page.Items)
}

// GetCategories returns one page of browse categories.
func GetCategories(ctx context.Context, c CategoryAPI, opts Options) (*Categories, error) {
	page, err := c.GetCategories(ctx, opts)
	if err != nil {
		return nil, err
	}
	cs := newCategories()
	return cs, cs.pushObjects(page.Items)
}

// GetAllCategories pages through every browse category.
func GetAllCategories(ctx context.Context, c CategoryAPI) (*Categories, error) {
	items, err := collectPages(ctx, Options{}, PageSize, c.GetCategories)
	if err != nil {
		return nil, err
	}
	cs := newCategories()
	return cs, cs.pushObjects(items)
}

// GetCategoryPlaylists returns one page of the playlists of category id.
func GetCategoryPlaylists(ctx context.Context, c CategoryAPI, id string, opts Options) (*Playlists, error) {
	cat, err := NewCategory(ByID(id))
	if err != nil {
		return nil, err
	}
	return cat.GetPlaylists(ctx, c, opts)
}
