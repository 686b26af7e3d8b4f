package catalog

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	// PageSize is the page size used by every paged listing except
	// playlist tracks.
	PageSize = 50
	// PlaylistPageSize is the page size used for playlist tracks.
	PlaylistPageSize = 100
)

type pageFetch func(ctx context.Context, opts Options) (Page, error)

// collectPages requests successive pages of size from opts.Offset on until a
// page holds fewer than size items. A listing whose length is an exact
// multiple of size therefore costs one extra, empty request.
func collectPages(ctx context.Context, opts Options, size int, fetch pageFetch) ([]Object, error) {
	log := LoggerFrom(ctx)
	opts.Limit = size
	var all []Object
	for {
		page, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		log.WithFields(logrus.Fields{"offset": opts.Offset, "items": len(page.Items)}).Debug("fetched page")
		if len(page.Items) < size {
			return all, nil
		}
		opts.Offset += size
	}
}

// collectCursor is collectPages for cursor-paged listings. It also stops
// when the server returns no cursor.
func collectCursor(ctx context.Context, opts Options, size int, fetch pageFetch) ([]Object, error) {
	log := LoggerFrom(ctx)
	opts.Limit = size
	var all []Object
	for {
		page, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		log.WithFields(logrus.Fields{"after": opts.After, "items": len(page.Items)}).Debug("fetched page")
		if len(page.Items) < size || page.Cursor == "" {
			return all, nil
		}
		opts.After = page.Cursor
	}
}

// embeddedPage reads the items of a page object embedded in a full object,
// such as an album's "tracks".
func embeddedPage(v any) []Object {
	page, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return objects(page["items"])
}
