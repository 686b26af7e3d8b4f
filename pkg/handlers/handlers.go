// Package handlers exposes the catalog over a small JSON HTTP API: search,
// cached batch lookups and playlist mutation. Hydrated objects and playlist
// snapshot ids are persisted through pkg/db when a database is configured.
package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"Music-Catalog-Go/pkg/catalog"
	"Music-Catalog-Go/pkg/db"
)

// maxIDs bounds the ids accepted by a single lookup request.
const maxIDs = 200

// Application bundles the dependencies used by the HTTP handlers.
type Application struct {
	Client catalog.Client
	// DB is optional. Without it every lookup goes to the Web API.
	DB  *db.DB
	Log logrus.FieldLogger
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// Routes registers every endpoint on a new mux wrapped in SecurityHeaders.
func (app *Application) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", app.Search)
	mux.HandleFunc("GET /api/tracks", app.Tracks)
	mux.HandleFunc("GET /api/albums/{id}/tracks", app.AlbumTracks)
	mux.HandleFunc("GET /api/artists/{id}/albums", app.ArtistAlbums)
	mux.HandleFunc("GET /api/playlists/{id}/tracks", app.PlaylistTracks)
	mux.HandleFunc("POST /api/playlists/{id}/tracks", app.AddPlaylistTracks)
	mux.HandleFunc("DELETE /api/playlists/{id}/tracks", app.RemovePlaylistTracks)
	if app.Metrics != nil {
		mux.Handle("GET /metrics", app.Metrics)
	}
	return SecurityHeaders(mux)
}

func (app *Application) logger() logrus.FieldLogger {
	if app.Log == nil {
		return logrus.StandardLogger()
	}
	return app.Log
}

// requestContext attaches a request scoped logger for the catalog.
func (app *Application) requestContext(r *http.Request) (context.Context, logrus.FieldLogger) {
	log := app.logger().WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path})
	return catalog.WithLogger(r.Context(), log), log
}

// splitList parses a comma separated query value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Search handles GET /api/search?q=&type=. type is a comma separated list
// of kinds and defaults to track.
func (app *Application) Search(w http.ResponseWriter, r *http.Request) {
	ctx, log := app.requestContext(r)
	q := r.URL.Query()
	kinds := []catalog.Kind{catalog.KindTrack}
	if t := splitList(q.Get("type")); len(t) > 0 {
		kinds = kinds[:0]
		for _, k := range t {
			kinds = append(kinds, catalog.Kind(k))
		}
	}
	res, err := catalog.Search(ctx, app.Client, q.Get("q"), kinds, catalog.Options{})
	if err != nil {
		fail(w, log, err)
		return
	}
	out := map[string][]catalog.Object{}
	if res.Tracks != nil {
		out["tracks"] = res.Tracks.CurrentData()
	}
	if res.Albums != nil {
		out["albums"] = res.Albums.CurrentData()
	}
	if res.Artists != nil {
		out["artists"] = res.Artists.CurrentData()
	}
	if res.Playlists != nil {
		out["playlists"] = res.Playlists.CurrentData()
	}
	if res.Shows != nil {
		out["shows"] = res.Shows.CurrentData()
	}
	if res.Episodes != nil {
		out["episodes"] = res.Episodes.CurrentData()
	}
	respondJSON(w, http.StatusOK, out)
}

// Tracks handles GET /api/tracks?ids=. Stored objects are loaded first so
// only the remainder is fetched, and newly completed objects are stored.
func (app *Application) Tracks(w http.ResponseWriter, r *http.Request) {
	ctx, log := app.requestContext(r)
	ids := splitList(r.URL.Query().Get("ids"))
	if len(ids) == 0 || len(ids) > maxIDs {
		respondJSONError(w, http.StatusBadRequest, "ids must list between 1 and 200 track ids")
		return
	}
	tracks, err := catalog.NewTracks(catalog.RefsByID(ids...)...)
	if err != nil {
		fail(w, log, err)
		return
	}

	cached := map[string]bool{}
	if app.DB != nil {
		stored, err := app.DB.LoadObjects(ctx, catalog.KindTrack, tracks.IDsNoRepeats())
		if err != nil {
			log.WithError(err).Warn("load cached tracks")
		}
		for _, t := range tracks.Items() {
			if obj, ok := stored[t.ID()]; ok {
				t.LoadFullObject(obj)
				cached[t.ID()] = true
			}
		}
	}

	objs, err := tracks.GetFullObjects(ctx, app.Client)
	if err != nil {
		fail(w, log, err)
		return
	}

	if app.DB != nil {
		var fresh []catalog.Object
		for _, t := range tracks.Unique() {
			if !cached[t.ID()] && t.ContainsFullObject() {
				fresh = append(fresh, t.CurrentData())
			}
		}
		if err := app.DB.SaveObjects(ctx, catalog.KindTrack, fresh); err != nil {
			log.WithError(err).Warn("store tracks")
		}
		log.WithFields(logrus.Fields{"cached": len(cached), "fetched": len(fresh)}).Debug("tracks resolved")
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": objs})
}

// AlbumTracks handles GET /api/albums/{id}/tracks.
func (app *Application) AlbumTracks(w http.ResponseWriter, r *http.Request) {
	ctx, log := app.requestContext(r)
	album, err := catalog.NewAlbum(catalog.ByID(r.PathValue("id")))
	if err != nil {
		fail(w, log, err)
		return
	}
	tracks, err := album.GetAllTracks(ctx, app.Client)
	if err != nil {
		fail(w, log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks.CurrentData()})
}

// ArtistAlbums handles GET /api/artists/{id}/albums.
func (app *Application) ArtistAlbums(w http.ResponseWriter, r *http.Request) {
	ctx, log := app.requestContext(r)
	artist, err := catalog.NewArtist(catalog.ByID(r.PathValue("id")))
	if err != nil {
		fail(w, log, err)
		return
	}
	albums, err := artist.GetAllAlbums(ctx, app.Client)
	if err != nil {
		fail(w, log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"albums": albums.CurrentData()})
}

// PlaylistTracks handles GET /api/playlists/{id}/tracks?q=. When q is set
// the entries are filtered and ranked by fuzzy name match.
func (app *Application) PlaylistTracks(w http.ResponseWriter, r *http.Request) {
	ctx, log := app.requestContext(r)
	p, err := catalog.NewPlaylist(catalog.ByID(r.PathValue("id")))
	if err != nil {
		fail(w, log, err)
		return
	}
	tracks, err := p.GetAllTracks(ctx, app.Client)
	if err != nil {
		fail(w, log, err)
		return
	}
	if q := r.URL.Query().Get("q"); q != "" {
		tracks = tracks.FuzzyFind(q)
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks.CurrentData()})
}

type trackIDsRequest struct {
	IDs      []string `json:"ids"`
	Position *int     `json:"position,omitempty"`
}

// playlist returns the playlist named in the path, seeded with the last
// stored snapshot id so removals are checked against it.
func (app *Application) playlist(ctx context.Context, id string) (*catalog.Playlist, error) {
	obj := catalog.Object{"id": id, "type": string(catalog.KindPlaylist)}
	if app.DB != nil {
		snap, err := app.DB.GetSnapshot(ctx, id)
		switch {
		case err == nil:
			obj["snapshot_id"] = snap
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
	}
	return catalog.NewPlaylist(catalog.FromObject(obj))
}

func (app *Application) mutatePlaylist(w http.ResponseWriter, r *http.Request, mutate func(context.Context, *catalog.Playlist, catalog.TrackIDs, *int) error) {
	ctx, log := app.requestContext(r)
	var req trackIDsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := r.PathValue("id")
	p, err := app.playlist(ctx, id)
	if err != nil {
		fail(w, log, err)
		return
	}
	if err := mutate(ctx, p, catalog.TrackIDs(req.IDs), req.Position); err != nil {
		fail(w, log, err)
		return
	}
	snap := p.SnapshotID()
	if app.DB != nil && snap != "" {
		if err := app.DB.SaveSnapshot(ctx, id, snap); err != nil {
			log.WithError(err).Warn("store snapshot")
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"snapshot_id": snap})
}

// AddPlaylistTracks handles POST /api/playlists/{id}/tracks with body
// {"ids": [...], "position": n}.
func (app *Application) AddPlaylistTracks(w http.ResponseWriter, r *http.Request) {
	app.mutatePlaylist(w, r, func(ctx context.Context, p *catalog.Playlist, ids catalog.TrackIDs, pos *int) error {
		return p.AddTracks(ctx, app.Client, ids, pos)
	})
}

// RemovePlaylistTracks handles DELETE /api/playlists/{id}/tracks with body
// {"ids": [...]}.
func (app *Application) RemovePlaylistTracks(w http.ResponseWriter, r *http.Request) {
	app.mutatePlaylist(w, r, func(ctx context.Context, p *catalog.Playlist, ids catalog.TrackIDs, _ *int) error {
		return p.RemoveTracks(ctx, app.Client, ids)
	})
}
