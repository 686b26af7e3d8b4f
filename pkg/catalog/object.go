package catalog

import (
	"strconv"
	"strings"
)

// Object is a decoded Web API object.
type Object = map[string]any

// Kind names an entity kind. The values match the "type" field of the API.
type Kind string

const (
	KindTrack    Kind = "track"
	KindAlbum    Kind = "album"
	KindArtist   Kind = "artist"
	KindPlaylist Kind = "playlist"
	KindShow     Kind = "show"
	KindEpisode  Kind = "episode"
	KindUser     Kind = "user"
	KindCategory Kind = "category"
)

// Tier names a subset of a kind's fields that is considered complete for a
// purpose.
type Tier string

const (
	TierSimplified    Tier = "simplified"
	TierFull          Tier = "full"
	TierLink          Tier = "link"
	TierAudioFeatures Tier = "audioFeatures"
	TierAudioAnalysis Tier = "audioAnalysis"
)

// deepCopy returns a copy of v that shares no maps or slices with it.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []Object:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	default:
		return v
	}
}

// lookupPath walks a dotted path such as "album.name" through nested objects.
// Numeric segments index into arrays.
func lookupPath(fields Object, path string) (any, bool) {
	var cur any = fields
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// objectID extracts the identifier of a raw object. Local items carry a null
// id and are identified by their uri instead.
func objectID(obj Object) string {
	if id, ok := obj["id"].(string); ok && id != "" {
		return id
	}
	if local, _ := obj["is_local"].(bool); local {
		if uri, ok := obj["uri"].(string); ok {
			return uri
		}
	}
	return ""
}

// identified reports whether v is an object with an id. Zero-valued
// sub-objects such as {"id":""} do not count.
func identified(v any) bool {
	obj, ok := v.(map[string]any)
	return ok && objectID(obj) != ""
}

// objects converts a decoded JSON array to a slice of objects, dropping
// anything that is not an object.
func objects(v any) []Object {
	switch t := v.(type) {
	case []Object:
		return t
	case []any:
		out := make([]Object, 0, len(t))
		for _, item := range t {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// number converts the numeric representations produced by JSON decoders and
// Go literals to float64.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
