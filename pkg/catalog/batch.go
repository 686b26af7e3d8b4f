package catalog

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BatchSize is the number of ids sent in one bulk lookup.
const BatchSize = 50

// fanOutLimit bounds the number of concurrent single-item requests.
const fanOutLimit = 8

// bulkFetch returns one slot per requested id in request order. Nil slots
// mark unavailable objects.
type bulkFetch func(ctx context.Context, ids []string) ([]Object, error)

// resolve loads tier load into every distinct member lacking tier need,
// sending the ids in sequential chunks of BatchSize. A failing chunk aborts
// the loop but chunks merged before it stay merged.
func (c *Collection[E]) resolve(ctx context.Context, need, load Tier, fetch bulkFetch) error {
	ids := c.missing(need)
	if len(ids) == 0 {
		return nil
	}
	log := LoggerFrom(ctx).WithFields(logrus.Fields{"kind": c.schema.kind, "tier": need})
	chunks := lo.Chunk(ids, BatchSize)
	for i, chunk := range chunks {
		records, err := fetch(ctx, chunk)
		if err != nil {
			return err
		}
		skipped := 0
		for j, id := range chunk {
			if j >= len(records) || records[j] == nil {
				skipped++
				continue
			}
			c.members[id].entity().Load(load, records[j])
		}
		log.WithFields(logrus.Fields{
			"chunk":   i + 1,
			"chunks":  len(chunks),
			"size":    len(chunk),
			"skipped": skipped,
		}).Debug("resolved batch")
	}
	return nil
}

// perItem adapts a single-item endpoint to bulkFetch for kinds and tiers
// without a bulk endpoint. The requests of a chunk run concurrently. An id
// the API does not know becomes a nil slot, like a null in a bulk response.
func perItem(fetch func(ctx context.Context, id string) (Object, error)) bulkFetch {
	return func(ctx context.Context, ids []string) ([]Object, error) {
		return fanOut(ctx, ids, func(ctx context.Context, id string) (Object, error) {
			obj, err := fetch(ctx, id)
			if errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return obj, err
		})
	}
}

// fanOut runs fn for every item concurrently and returns the results in input
// order. The first error cancels the remaining calls.
func fanOut[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)
	for i, item := range items {
		g.Go(func() error {
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// gather builds a collection of kind R by concatenating the relation of every
// distinct member of c. Relations are fetched concurrently and concatenated
// in member order.
func gather[E Item, R Item](ctx context.Context, c *Collection[E], into *Collection[R], relation func(context.Context, E) (*Collection[R], error)) error {
	parts, err := fanOut(ctx, c.Unique(), relation)
	if err != nil {
		return err
	}
	for _, part := range parts {
		into.Concat(part)
	}
	return nil
}

// gatherPages is gather for paged relations. Each member contributes its
// items in member order.
func gatherPages[E Item](ctx context.Context, c *Collection[E], pages func(context.Context, E) ([]Object, error)) ([]Object, error) {
	parts, err := fanOut(ctx, c.Unique(), pages)
	if err != nil {
		return nil, err
	}
	return lo.Flatten(parts), nil
}

// chunked calls fn for every BatchSize chunk of ids in turn.
func chunked(ids []string, fn func(chunk []string) error) error {
	for _, chunk := range lo.Chunk(ids, BatchSize) {
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

// flags runs a bulk membership check over the distinct members and maps the
// answer back to ids.
func (c *Collection[E]) flags(ctx context.Context, check func(context.Context, []string) ([]bool, error)) (map[string]bool, error) {
	ids := c.IDsNoRepeats()
	out := make(map[string]bool, len(ids))
	err := chunked(ids, func(chunk []string) error {
		res, err := check(ctx, chunk)
		if err != nil {
			return err
		}
		for i, id := range chunk {
			out[id] = i < len(res) && res[i]
		}
		return nil
	})
	return out, err
}

// apply runs a bulk mutation over the distinct members.
func (c *Collection[E]) apply(ctx context.Context, mutate func(context.Context, []string) error) error {
	return chunked(c.IDsNoRepeats(), func(chunk []string) error {
		return mutate(ctx, chunk)
	})
}
