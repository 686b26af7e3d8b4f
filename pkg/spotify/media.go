package spotify

import (
	"context"
	"net/http"
	"net/url"

	libspotify "github.com/zmb3/spotify/v2"

	"Music-Catalog-Go/pkg/catalog"
)

// GetShow fetches a show.
func (c *Client) GetShow(ctx context.Context, id string, opts catalog.Options) (catalog.Object, error) {
	s, err := c.api.GetShow(ctx, libspotify.ID(id), c.reqOpts(opts, true)...)
	if err != nil {
		return nil, notFound(err, catalog.KindShow, id)
	}
	return toObject(s)
}

// GetShows fetches up to 50 shows.
func (c *Client) GetShows(ctx context.Context, ids []string, opts catalog.Options) ([]catalog.Object, error) {
	return c.getList(ctx, "shows", "shows", idsQuery(ids, c.marketFor(opts)))
}

// GetShowEpisodes fetches one page of a show's episodes.
func (c *Client) GetShowEpisodes(ctx context.Context, id string, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.GetShowEpisodes(ctx, id, c.reqOpts(opts, true)...)
	if err != nil {
		return catalog.Page{}, notFound(err, catalog.KindShow, id)
	}
	return toPage(p)
}

// AddToMySavedShows saves shows to the user's library.
func (c *Client) AddToMySavedShows(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodPut, "me/shows", idsQuery(ids, ""), nil, nil)
}

// RemoveFromMySavedShows removes shows from the user's library.
func (c *Client) RemoveFromMySavedShows(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodDelete, "me/shows", idsQuery(ids, ""), nil, nil)
}

// ContainsMySavedShows reports which shows are in the user's library.
func (c *Client) ContainsMySavedShows(ctx context.Context, ids []string) ([]bool, error) {
	var out []bool
	if err := c.do(ctx, http.MethodGet, "me/shows/contains", idsQuery(ids, ""), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEpisode fetches an episode.
func (c *Client) GetEpisode(ctx context.Context, id string, opts catalog.Options) (catalog.Object, error) {
	var obj catalog.Object
	if err := c.do(ctx, http.MethodGet, "episodes/"+url.PathEscape(id), c.marketQuery(opts), nil, &obj); err != nil {
		return nil, notFound(err, catalog.KindEpisode, id)
	}
	return obj, nil
}

// GetEpisodes fetches up to 50 episodes.
func (c *Client) GetEpisodes(ctx context.Context, ids []string, opts catalog.Options) ([]catalog.Object, error) {
	return c.getList(ctx, "episodes", "episodes", idsQuery(ids, c.marketFor(opts)))
}

// AddToMySavedEpisodes saves episodes to the user's library.
func (c *Client) AddToMySavedEpisodes(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodPut, "me/episodes", idsQuery(ids, ""), nil, nil)
}

// RemoveFromMySavedEpisodes removes episodes from the user's library.
func (c *Client) RemoveFromMySavedEpisodes(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodDelete, "me/episodes", idsQuery(ids, ""), nil, nil)
}

// ContainsMySavedEpisodes reports which episodes are in the user's library.
func (c *Client) ContainsMySavedEpisodes(ctx context.Context, ids []string) ([]bool, error) {
	var out []bool
	if err := c.do(ctx, http.MethodGet, "me/episodes/contains", idsQuery(ids, ""), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches a user's public profile.
func (c *Client) GetUser(ctx context.Context, id string) (catalog.Object, error) {
	u, err := c.api.GetUsersPublicProfile(ctx, libspotify.ID(id))
	if err != nil {
		return nil, notFound(err, catalog.KindUser, id)
	}
	return toObject(u)
}

// GetUserPlaylists fetches one page of a user's public playlists.
func (c *Client) GetUserPlaylists(ctx context.Context, id string, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.GetPlaylistsForUser(ctx, id, c.reqOpts(opts, false)...)
	if err != nil {
		return catalog.Page{}, notFound(err, catalog.KindUser, id)
	}
	return toPage(p)
}

// FollowUsers follows users as the current user.
func (c *Client) FollowUsers(ctx context.Context, ids []string) error {
	return c.api.FollowUser(ctx, toIDs(ids)...)
}

// UnfollowUsers unfollows users.
func (c *Client) UnfollowUsers(ctx context.Context, ids []string) error {
	return c.api.UnfollowUser(ctx, toIDs(ids)...)
}

// IsFollowingUsers reports which users the current user follows.
func (c *Client) IsFollowingUsers(ctx context.Context, ids []string) ([]bool, error) {
	return c.api.CurrentUserFollows(ctx, "user", toIDs(ids)...)
}

// GetMe fetches the profile of the token owner.
func (c *Client) GetMe(ctx context.Context) (catalog.Object, error) {
	u, err := c.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return toObject(u)
}

// GetCategory fetches a browse category.
func (c *Client) GetCategory(ctx context.Context, id string, opts catalog.Options) (catalog.Object, error) {
	cat, err := c.api.GetCategory(ctx, id, c.reqOpts(opts, false)...)
	if err != nil {
		return nil, notFound(err, catalog.KindCategory, id)
	}
	return toObject(cat)
}

// GetCategories fetches one page of browse categories.
func (c *Client) GetCategories(ctx context.Context, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.GetCategories(ctx, c.reqOpts(opts, false)...)
	if err != nil {
		return catalog.Page{}, err
	}
	return toPage(p)
}

// GetCategoryPlaylists fetches one page of a category's playlists.
func (c *Client) GetCategoryPlaylists(ctx context.Context, id string, opts catalog.Options) (catalog.Page, error) {
	p, err := c.api.GetCategoryPlaylists(ctx, id, c.reqOpts(opts, false)...)
	if err != nil {
		return catalog.Page{}, notFound(err, catalog.KindCategory, id)
	}
	return toPage(p)
}
