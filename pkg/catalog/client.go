package catalog

import "context"

// Options carries the optional query parameters shared by most endpoints.
// Zero values are omitted from requests.
type Options struct {
	Limit  int
	Offset int
	// After is the cursor for cursor-paged listings such as followed artists.
	After  string
	Market string
	// TimeRange applies to the top tracks and artists listings.
	TimeRange string
}

// Page is one page of a paged listing.
type Page struct {
	Items  []Object
	Total  int
	Limit  int
	Offset int
	Next   string
	// Cursor is the "after" value for the next page of a cursor-paged listing.
	Cursor string
}

// Reorder describes a playlist range move.
type Reorder struct {
	RangeStart   int
	RangeLength  int
	InsertBefore int
	SnapshotID   string
}

// PlaylistDetails lists the playlist attributes to change. Nil fields are
// left untouched.
type PlaylistDetails struct {
	Name          *string
	Description   *string
	Public        *bool
	Collaborative *bool
}

// Seeds configures a recommendations request. Attributes holds tunable
// parameters such as "target_energy" or "min_tempo".
type Seeds struct {
	Artists    []string
	Tracks     []string
	Genres     []string
	Attributes map[string]any
}

// PlayOptions configures a playback request. ContextURI plays an album,
// playlist or show; URIs plays an explicit list of tracks or episodes.
type PlayOptions struct {
	DeviceID   string
	ContextURI string
	URIs       []string
	// OffsetPosition and OffsetURI select where in the context playback
	// starts. OffsetURI wins when both are set.
	OffsetPosition *int
	OffsetURI      string
	PositionMs     int
}

// TrackAPI is the network surface used by Track and Tracks.
type TrackAPI interface {
	GetTrack(ctx context.Context, id string, opts Options) (Object, error)
	// GetTracks returns one slot per requested id in request order; slots
	// for unavailable tracks are nil.
	GetTracks(ctx context.Context, ids []string, opts Options) ([]Object, error)
	GetAudioFeatures(ctx context.Context, id string) (Object, error)
	GetAudioFeaturesForTracks(ctx context.Context, ids []string) ([]Object, error)
	GetAudioAnalysis(ctx context.Context, id string) (Object, error)
	AddToMySavedTracks(ctx context.Context, ids []string) error
	RemoveFromMySavedTracks(ctx context.Context, ids []string) error
	ContainsMySavedTracks(ctx context.Context, ids []string) ([]bool, error)
}

// AlbumAPI is the network surface used by Album and Albums.
type AlbumAPI interface {
	GetAlbum(ctx context.Context, id string, opts Options) (Object, error)
	GetAlbums(ctx context.Context, ids []string, opts Options) ([]Object, error)
	GetAlbumTracks(ctx context.Context, id string, opts Options) (Page, error)
	AddToMySavedAlbums(ctx context.Context, ids []string) error
	RemoveFromMySavedAlbums(ctx context.Context, ids []string) error
	ContainsMySavedAlbums(ctx context.Context, ids []string) ([]bool, error)
}

// ArtistAPI is the network surface used by Artist and Artists.
type ArtistAPI interface {
	GetArtist(ctx context.Context, id string) (Object, error)
	GetArtists(ctx context.Context, ids []string) ([]Object, error)
	GetArtistAlbums(ctx context.Context, id string, opts Options) (Page, error)
	GetArtistTopTracks(ctx context.Context, id, country string) ([]Object, error)
	GetArtistRelatedArtists(ctx context.Context, id string) ([]Object, error)
	FollowArtists(ctx context.Context, ids []string) error
	UnfollowArtists(ctx context.Context, ids []string) error
	IsFollowingArtists(ctx context.Context, ids []string) ([]bool, error)
}

// PlaylistAPI is the network surface used by Playlist and Playlists. Every
// track mutator returns the snapshot id of the resulting playlist version.
type PlaylistAPI interface {
	GetPlaylist(ctx context.Context, id string, opts Options) (Object, error)
	GetPlaylistTracks(ctx context.Context, id string, opts Options) (Page, error)
	AddTracksToPlaylist(ctx context.Context, id string, uris []string, position *int) (string, error)
	ReplaceTracksInPlaylist(ctx context.Context, id string, uris []string) (string, error)
	ReorderTracksInPlaylist(ctx context.Context, id string, r Reorder) (string, error)
	RemoveTracksFromPlaylist(ctx context.Context, id string, uris []string, snapshotID string) (string, error)
	RemoveTracksFromPlaylistByPosition(ctx context.Context, id string, positions []int, snapshotID string) (string, error)
	ChangePlaylistDetails(ctx context.Context, id string, d PlaylistDetails) error
	FollowPlaylist(ctx context.Context, id string, public bool) error
	UnfollowPlaylist(ctx context.Context, id string) error
	AreFollowingPlaylist(ctx context.Context, id string, userIDs []string) ([]bool, error)
}

// ShowAPI is the network surface used by Show and Shows.
type ShowAPI interface {
	GetShow(ctx context.Context, id string, opts Options) (Object, error)
	GetShows(ctx context.Context, ids []string, opts Options) ([]Object, error)
	GetShowEpisodes(ctx context.Context, id string, opts Options) (Page, error)
	AddToMySavedShows(ctx context.Context, ids []string) error
	RemoveFromMySavedShows(ctx context.Context, ids []string) error
	ContainsMySavedShows(ctx context.Context, ids []string) ([]bool, error)
}

// EpisodeAPI is the network surface used by Episode and Episodes.
type EpisodeAPI interface {
	GetEpisode(ctx context.Context, id string, opts Options) (Object, error)
	GetEpisodes(ctx context.Context, ids []string, opts Options) ([]Object, error)
	AddToMySavedEpisodes(ctx context.Context, ids []string) error
	RemoveFromMySavedEpisodes(ctx context.Context, ids []string) error
	ContainsMySavedEpisodes(ctx context.Context, ids []string) ([]bool, error)
}

// UserAPI is the network surface used by User and Users.
type UserAPI interface {
	GetUser(ctx context.Context, id string) (Object, error)
	GetUserPlaylists(ctx context.Context, id string, opts Options) (Page, error)
	FollowUsers(ctx context.Context, ids []string) error
	UnfollowUsers(ctx context.Context, ids []string) error
	IsFollowingUsers(ctx context.Context, ids []string) ([]bool, error)
	GetMe(ctx context.Context) (Object, error)
}

// CategoryAPI is the network surface used by Category and Categories.
type CategoryAPI interface {
	GetCategory(ctx context.Context, id string, opts Options) (Object, error)
	GetCategories(ctx context.Context, opts Options) (Page, error)
	GetCategoryPlaylists(ctx context.Context, id string, opts Options) (Page, error)
}

// BrowseAPI covers search and the editorial listings.
type BrowseAPI interface {
	Search(ctx context.Context, query string, kinds []Kind, opts Options) (map[Kind]Page, error)
	GetRecommendations(ctx context.Context, seeds Seeds, opts Options) ([]Object, error)
	GetFeaturedPlaylists(ctx context.Context, opts Options) (Page, error)
	GetNewReleases(ctx context.Context, opts Options) (Page, error)
}

// LibraryAPI covers the current user's library. Saved item listings return
// wrapped items ({"track": {...}, "added_at": ...}).
type LibraryAPI interface {
	GetMySavedTracks(ctx context.Context, opts Options) (Page, error)
	GetMySavedAlbums(ctx context.Context, opts Options) (Page, error)
	GetMySavedShows(ctx context.Context, opts Options) (Page, error)
	GetMySavedEpisodes(ctx context.Context, opts Options) (Page, error)
	GetMyPlaylists(ctx context.Context, opts Options) (Page, error)
	GetMyFollowedArtists(ctx context.Context, opts Options) (Page, error)
	GetMyTopTracks(ctx context.Context, opts Options) (Page, error)
	GetMyTopArtists(ctx context.Context, opts Options) (Page, error)
	GetMyRecentlyPlayedTracks(ctx context.Context, opts Options) (Page, error)
}

// PlayerAPI controls playback on the user's devices.
type PlayerAPI interface {
	Play(ctx context.Context, opts PlayOptions) error
	// GetPlaybackState returns nil without error when nothing is playing.
	GetPlaybackState(ctx context.Context, opts Options) (Object, error)
}

// Client is the complete network surface.
type Client interface {
	TrackAPI
	AlbumAPI
	ArtistAPI
	PlaylistAPI
	ShowAPI
	EpisodeAPI
	UserAPI
	CategoryAPI
	BrowseAPI
	LibraryAPI
	PlayerAPI
}
