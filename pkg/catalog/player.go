package catalog

import (
	"context"
)

// Playback is the state of the user's player.
type Playback struct {
	IsPlaying  bool
	ProgressMs int
	ShuffleOn  bool
	Repeat     string
	Device     Object
	Context    Object
	// Exactly one of Track and Episode is set when something is loaded.
	Track   *Track
	Episode *Episode
}

// Item returns the playing track or episode, or nil.
func (p *Playback) Item() Item {
	switch {
	case p.Track != nil:
		return p.Track
	case p.Episode != nil:
		return p.Episode
	}
	return nil
}

// GetPlaybackState returns the player state, or nil when nothing is active.
func GetPlaybackState(ctx context.Context, c PlayerAPI, opts Options) (*Playback, error) {
	obj, err := c.GetPlaybackState(ctx, opts)
	if err != nil || obj == nil {
		return nil, err
	}
	pb := &Playback{
		Repeat: str(obj["repeat_state"]),
	}
	pb.IsPlaying, _ = obj["is_playing"].(bool)
	pb.ShuffleOn, _ = obj["shuffle_state"].(bool)
	if n, ok := number(obj["progress_ms"]); ok {
		pb.ProgressMs = int(n)
	}
	pb.Device, _ = obj["device"].(map[string]any)
	pb.Context, _ = obj["context"].(map[string]any)

	item, ok := obj["item"].(map[string]any)
	if !ok || objectID(item) == "" {
		return pb, nil
	}
	switch str(item["type"]) {
	case string(KindEpisode):
		pb.Episode, err = NewEpisode(FromObject(item))
	default:
		pb.Track, err = NewTrack(FromObject(item))
	}
	if err != nil {
		return nil, err
	}
	return pb, nil
}

// Play starts playback with opts as given.
func Play(ctx context.Context, c PlayerAPI, opts PlayOptions) error {
	if opts.ContextURI != "" && len(opts.URIs) > 0 {
		return invalid("play", "context uri and uris are mutually exclusive")
	}
	if opts.OffsetPosition != nil && *opts.OffsetPosition < 0 {
		return invalid("play", "offset %d is negative", *opts.OffsetPosition)
	}
	return c.Play(ctx, opts)
}
