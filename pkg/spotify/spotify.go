// Package spotify implements catalog.Client on top of the Spotify Web API.
// Typed endpoints go through github.com/zmb3/spotify/v2 and the responses are
// converted to raw objects. Endpoints the library does not model precisely
// are called directly with the same authenticated HTTP client. These include
// albums, playlist entries that may be episodes, snapshot-aware mutations,
// the show and episode library and the player.
//
// HTTP 404 responses are reported as *catalog.NotFoundError and rejected
// playlist snapshots as *catalog.ConflictError. Every other error is returned
// as produced by the library.
package spotify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	libspotify "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"Music-Catalog-Go/pkg/catalog"
)

// DefaultBaseURL is the Web API root. It must end with a slash.
const DefaultBaseURL = "https://api.spotify.com/v1/"

// api defines the subset of the library client used by this package.
// It allows the concrete client to be replaced in tests.
type api interface {
	GetTrack(ctx context.Context, id libspotify.ID, opts ...libspotify.RequestOption) (*libspotify.FullTrack, error)
	GetTracks(ctx context.Context, ids []libspotify.ID, opts ...libspotify.RequestOption) ([]*libspotify.FullTrack, error)
	GetAudioFeatures(ctx context.Context, ids ...libspotify.ID) ([]*libspotify.AudioFeatures, error)
	GetAudioAnalysis(ctx context.Context, id libspotify.ID) (*libspotify.AudioAnalysis, error)
	AddTracksToLibrary(ctx context.Context, ids ...libspotify.ID) error
	RemoveTracksFromLibrary(ctx context.Context, ids ...libspotify.ID) error
	UserHasTracks(ctx context.Context, ids ...libspotify.ID) ([]bool, error)

	AddAlbumsToLibrary(ctx context.Context, ids ...libspotify.ID) error
	RemoveAlbumsFromLibrary(ctx context.Context, ids ...libspotify.ID) error
	UserHasAlbums(ctx context.Context, ids ...libspotify.ID) ([]bool, error)

	GetArtist(ctx context.Context, id libspotify.ID) (*libspotify.FullArtist, error)
	GetArtists(ctx context.Context, ids ...libspotify.ID) ([]*libspotify.FullArtist, error)
	GetArtistAlbums(ctx context.Context, artistID libspotify.ID, ts []libspotify.AlbumType, opts ...libspotify.RequestOption) (*libspotify.SimpleAlbumPage, error)
	GetArtistsTopTracks(ctx context.Context, artistID libspotify.ID, country string) ([]libspotify.FullTrack, error)
	GetRelatedArtists(ctx context.Context, id libspotify.ID) ([]libspotify.FullArtist, error)
	FollowArtist(ctx context.Context, ids ...libspotify.ID) error
	UnfollowArtist(ctx context.Context, ids ...libspotify.ID) error
	FollowUser(ctx context.Context, ids ...libspotify.ID) error
	UnfollowUser(ctx context.Context, ids ...libspotify.ID) error
	CurrentUserFollows(ctx context.Context, t string, ids ...libspotify.ID) ([]bool, error)

	FollowPlaylist(ctx context.Context, playlist libspotify.ID, public bool) error
	UnfollowPlaylist(ctx context.Context, playlist libspotify.ID) error
	UserFollowsPlaylist(ctx context.Context, playlistID libspotify.ID, userIDs ...string) ([]bool, error)

	GetShow(ctx context.Context, id libspotify.ID, opts ...libspotify.RequestOption) (*libspotify.FullShow, error)
	GetShowEpisodes(ctx context.Context, id string, opts ...libspotify.RequestOption) (*libspotify.SimpleEpisodePage, error)

	GetUsersPublicProfile(ctx context.Context, userID libspotify.ID) (*libspotify.User, error)
	GetPlaylistsForUser(ctx context.Context, userID string, opts ...libspotify.RequestOption) (*libspotify.SimplePlaylistPage, error)
	CurrentUser(ctx context.Context) (*libspotify.PrivateUser, error)

	GetCategory(ctx context.Context, id string, opts ...libspotify.RequestOption) (libspotify.Category, error)
	GetCategories(ctx context.Context, opts ...libspotify.RequestOption) (*libspotify.CategoryPage, error)
	GetCategoryPlaylists(ctx context.Context, catID string, opts ...libspotify.RequestOption) (*libspotify.SimplePlaylistPage, error)

	Search(ctx context.Context, query string, t libspotify.SearchType, opts ...libspotify.RequestOption) (*libspotify.SearchResult, error)
	FeaturedPlaylists(ctx context.Context, opts ...libspotify.RequestOption) (string, *libspotify.SimplePlaylistPage, error)
	NewReleases(ctx context.Context, opts ...libspotify.RequestOption) (*libspotify.SimpleAlbumPage, error)

	CurrentUsersTracks(ctx context.Context, opts ...libspotify.RequestOption) (*libspotify.SavedTrackPage, error)
	CurrentUsersAlbums(ctx context.Context, opts ...libspotify.RequestOption) (*libspotify.SavedAlbumPage, error)
	CurrentUsersPlaylists(ctx context.Context, opts ...libspotify.RequestOption) (*libspotify.SimplePlaylistPage, error)
	CurrentUsersTopTracks(ctx context.Context, opts ...libspotify.RequestOption) (*libspotify.FullTrackPage, error)
	CurrentUsersTopArtists(ctx context.Context, opts ...libspotify.RequestOption) (*libspotify.FullArtistPage, error)
}

// Client talks to the Web API on behalf of one token.
type Client struct {
	api     api
	http    *http.Client
	baseURL string
	market  string
}

// Ensure interface compliance
var _ catalog.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}

// WithMarket sets the market used when a request does not name one.
func WithMarket(market string) Option {
	return func(c *Client) { c.market = market }
}

// New returns a client sending requests through httpClient, which must
// already attach an access token.
func New(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{http: httpClient, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	c.api = libspotify.New(httpClient, libspotify.WithBaseURL(c.baseURL))
	return c
}

// NewClientCredentials authenticates using the client credentials flow.
// Such a token reads the catalog but cannot touch a user's library or
// player. An *http.Client stored in ctx under oauth2.HTTPClient is used as
// the transport for both token and API requests.
func NewClientCredentials(ctx context.Context, clientID, clientSecret string, opts ...Option) (*Client, error) {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	// Fetch a token up front so bad credentials fail at startup.
	if _, err := config.Token(ctx); err != nil {
		return nil, err
	}
	return New(config.Client(ctx), opts...), nil
}

// NewWithToken uses an access token obtained elsewhere, typically through
// the authorization code flow. The token is not refreshed.
func NewWithToken(ctx context.Context, accessToken string, opts ...Option) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return New(oauth2.NewClient(ctx, src), opts...)
}

func (c *Client) marketFor(opts catalog.Options) string {
	if opts.Market != "" {
		return opts.Market
	}
	return c.market
}

// reqOpts converts catalog options to library request options. Market is
// only sent to endpoints that accept it.
func (c *Client) reqOpts(opts catalog.Options, market bool) []libspotify.RequestOption {
	var out []libspotify.RequestOption
	if opts.Limit > 0 {
		out = append(out, libspotify.Limit(opts.Limit))
	}
	if opts.Offset > 0 {
		out = append(out, libspotify.Offset(opts.Offset))
	}
	if opts.TimeRange != "" {
		out = append(out, libspotify.Timerange(libspotify.Range(opts.TimeRange)))
	}
	if m := c.marketFor(opts); market && m != "" {
		out = append(out, libspotify.Market(m))
	}
	return out
}

func toIDs(ids []string) []libspotify.ID {
	out := make([]libspotify.ID, len(ids))
	for i, id := range ids {
		out[i] = libspotify.ID(id)
	}
	return out
}

// toObject converts a typed response to a raw object. Nil pointers become
// nil objects.
func toObject(v any) (catalog.Object, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj catalog.Object
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, err
	}
	dropEmpty(obj)
	return obj, nil
}

// toObjects converts a typed slice, keeping nil entries in place.
func toObjects(v any) ([]catalog.Object, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var objs []catalog.Object
	if err := json.Unmarshal(b, &objs); err != nil {
		return nil, err
	}
	for _, obj := range objs {
		dropEmpty(obj)
	}
	return objs, nil
}

// rawPage is the wire shape shared by paging and cursor-paging objects.
type rawPage struct {
	Items   []catalog.Object `json:"items"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	Next    string           `json:"next"`
	Cursors struct {
		After string `json:"after"`
	} `json:"cursors"`
}

func (p rawPage) page() catalog.Page {
	return catalog.Page{
		Items:  p.Items,
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
		Next:   p.Next,
		Cursor: p.Cursors.After,
	}
}

// toPage converts a typed page by way of its JSON form.
func toPage(v any) (catalog.Page, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return catalog.Page{}, err
	}
	var p rawPage
	if err := json.Unmarshal(b, &p); err != nil {
		return catalog.Page{}, err
	}
	for _, item := range p.Items {
		dropEmpty(item)
	}
	return p.page(), nil
}

// embeddedKeys name sub-objects the library serializes even when the API
// left them out, such as the album of an album's own tracks.
var embeddedKeys = []string{"album", "show"}

// dropEmpty removes zero-valued embedded objects, including those of a saved
// item's wrapped track or episode.
func dropEmpty(obj catalog.Object) {
	if obj == nil {
		return
	}
	for _, k := range embeddedKeys {
		if sub, ok := obj[k].(map[string]any); ok && sub["id"] == "" {
			delete(obj, k)
		}
	}
	for _, k := range []string{"track", "episode"} {
		if inner, ok := obj[k].(map[string]any); ok {
			dropEmpty(inner)
		}
	}
}

func status(err error) int {
	var se libspotify.Error
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// notFound maps a 404 to a catalog.NotFoundError.
func notFound(err error, kind catalog.Kind, id string) error {
	if err != nil && status(err) == http.StatusNotFound {
		return &catalog.NotFoundError{Kind: kind, ID: id}
	}
	return err
}

// conflict maps a rejected snapshot to a catalog.ConflictError.
func conflict(err error, playlistID, snapshotID string) error {
	if err == nil {
		return nil
	}
	switch code := status(err); {
	case code == http.StatusConflict,
		code == http.StatusBadRequest && strings.Contains(strings.ToLower(err.Error()), "snapshot"):
		return &catalog.ConflictError{PlaylistID: playlistID, SnapshotID: snapshotID, Err: err}
	}
	return notFound(err, catalog.KindPlaylist, playlistID)
}
