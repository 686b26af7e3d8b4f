package catalog

import (
	"slices"
)

// schema describes the fields of one kind. A tier is complete when every one
// of its keys is present, even if the API returned null for it.
type schema struct {
	kind  Kind
	tiers map[Tier][]string
	// nested tiers are stored as a single sub-object under the given key.
	nested map[Tier]string
	// sidecar fields come from wrapping objects (saved items, playlist
	// entries) and survive hydration.
	sidecar []string
	fields  []string
}

func newSchema(kind Kind, tiers map[Tier][]string, nested map[Tier]string, sidecar ...string) *schema {
	s := &schema{kind: kind, tiers: tiers, nested: nested, sidecar: sidecar}
	for _, keys := range tiers {
		for _, k := range keys {
			if !slices.Contains(s.fields, k) {
				s.fields = append(s.fields, k)
			}
		}
	}
	slices.Sort(s.fields)
	return s
}

func (s *schema) tier(t Tier) ([]string, bool) {
	keys, ok := s.tiers[t]
	return keys, ok
}

func (s *schema) inTier(t Tier, field string) bool {
	return slices.Contains(s.tiers[t], field)
}

func (s *schema) known(field string) bool {
	return slices.Contains(s.fields, field) || slices.Contains(s.sidecar, field)
}

func with(base []string, extra ...string) []string {
	return append(slices.Clone(base), extra...)
}

var (
	trackSimplified = []string{
		"artists", "available_markets", "disc_number", "duration_ms", "explicit",
		"external_urls", "href", "id", "name", "preview_url", "track_number", "type", "uri",
	}
	trackSchema = newSchema(KindTrack, map[Tier][]string{
		TierSimplified:    trackSimplified,
		TierFull:          with(trackSimplified, "album", "external_ids", "popularity"),
		TierLink:          {"external_urls", "href", "id", "type", "uri"},
		TierAudioFeatures: {"audio_features"},
		TierAudioAnalysis: {"audio_analysis"},
	}, map[Tier]string{
		TierAudioFeatures: "audio_features",
		TierAudioAnalysis: "audio_analysis",
	}, "is_local", "added_at", "added_by")

	albumSimplified = []string{
		"album_type", "artists", "available_markets", "external_urls", "href", "id", "images",
		"name", "release_date", "release_date_precision", "total_tracks", "type", "uri",
	}
	albumSchema = newSchema(KindAlbum, map[Tier][]string{
		TierSimplified: albumSimplified,
		TierFull:       with(albumSimplified, "copyrights", "external_ids", "genres", "label", "popularity", "tracks"),
	}, nil, "added_at")

	artistSimplified = []string{"external_urls", "href", "id", "name", "type", "uri"}
	artistSchema     = newSchema(KindArtist, map[Tier][]string{
		TierSimplified: artistSimplified,
		TierFull:       with(artistSimplified, "followers", "genres", "images", "popularity"),
	}, nil)

	playlistSimplified = []string{
		"collaborative", "description", "external_urls", "href", "id", "images", "name",
		"owner", "public", "snapshot_id", "tracks", "type", "uri",
	}
	playlistSchema = newSchema(KindPlaylist, map[Tier][]string{
		TierSimplified: playlistSimplified,
		TierFull:       with(playlistSimplified, "followers"),
	}, nil)

	showSimplified = []string{
		"available_markets", "copyrights", "description", "explicit", "external_urls", "href",
		"id", "images", "is_externally_hosted", "languages", "media_type", "name", "publisher", "type", "uri",
	}
	showSchema = newSchema(KindShow, map[Tier][]string{
		TierSimplified: showSimplified,
		TierFull:       with(showSimplified, "episodes"),
	}, nil, "added_at")

	episodeSimplified = []string{
		"audio_preview_url", "description", "duration_ms", "explicit", "external_urls", "href",
		"id", "images", "is_externally_hosted", "is_playable", "languages", "name",
		"release_date", "release_date_precision", "type", "uri",
	}
	episodeSchema = newSchema(KindEpisode, map[Tier][]string{
		TierSimplified: episodeSimplified,
		TierFull:       with(episodeSimplified, "show"),
	}, nil, "is_local", "added_at", "added_by")

	userSimplified = []string{"display_name", "external_urls", "href", "id", "type", "uri"}
	userSchema     = newSchema(KindUser, map[Tier][]string{
		TierSimplified: userSimplified,
		TierFull:       with(userSimplified, "followers", "images"),
	}, nil)

	categoryFields = []string{"href", "icons", "id", "name"}
	categorySchema = newSchema(KindCategory, map[Tier][]string{
		TierSimplified: categoryFields,
		TierFull:       categoryFields,
	}, nil)
)
