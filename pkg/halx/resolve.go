package halx

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ResolveOne materialises a single entity for the named relation.
//
// Embedded data wins: if the relation is embedded the entity is built
// straight from the embedded object with no network activity. Otherwise the
// relation's single link descriptor is fetched through the bound client. A
// relation present in neither map resolves to the zero value (nil for
// pointer entity types) without error.
func ResolveOne[T any](ctx context.Context, r *Resource, rel string, build Factory[T]) (T, error) {
	var zero T

	if raw := r.EmbeddedObject(rel); raw != nil {
		return build(raw, r.client)
	}

	if !r.HasLink(rel) {
		return zero, nil
	}

	entries := linkEntries(r.links[rel])
	if len(entries) > 1 {
		return zero, fmt.Errorf("%w for relation %q", ErrMultipleLinks, rel)
	}
	if len(entries) == 0 {
		return zero, fmt.Errorf("%w: relation %q", ErrInvalidHref, rel)
	}

	link, err := decodeLink(entries[0])
	if err != nil || link.Href == "" {
		return zero, fmt.Errorf("%w: relation %q", ErrInvalidHref, rel)
	}

	if r.client == nil {
		return zero, ErrNoClient
	}

	body, err := r.client.GetJSON(ctx, link.Href)
	if err != nil {
		return zero, err
	}
	return build(body, r.client)
}

// ResolveMany materialises zero or more entities for the named relation.
//
// Embedded data (array or single object) bypasses all network activity. A
// linked relation issues one independent fetch per href; any fetch failing
// fails the whole call. A relation present in neither map resolves to an
// empty slice.
func ResolveMany[T any](ctx context.Context, r *Resource, rel string, build Factory[T]) ([]T, error) {
	if raws, ok := r.EmbeddedObjects(rel); ok {
		out := make([]T, 0, len(raws))
		for _, raw := range raws {
			v, err := build(raw, r.client)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	hrefs := r.LinkHrefs(rel)
	if len(hrefs) == 0 {
		return []T{}, nil
	}

	if r.client == nil {
		return nil, ErrNoClient
	}

	out := make([]T, len(hrefs))
	g, ctx := errgroup.WithContext(ctx)
	for i, href := range hrefs {
		g.Go(func() error {
			body, err := r.client.GetJSON(ctx, href)
			if err != nil {
				return err
			}
			v, err := build(body, r.client)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
