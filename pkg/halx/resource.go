package halx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoClient reports a link resolution attempt on a Resource that was
	// bound without a client.
	ErrNoClient = errors.New("halx: no client configured for resolving links")

	// ErrMultipleLinks reports a multi-valued link where a single value was
	// required.
	ErrMultipleLinks = errors.New("halx: multiple links exist")

	// ErrInvalidHref reports a link descriptor without a usable href.
	ErrInvalidHref = errors.New("halx: link does not contain a valid href")
)

// Client fetches linked resources on behalf of a Resource. The *promptside
// client satisfies this; tests substitute counting fakes.
type Client interface {
	GetJSON(ctx context.Context, href string) ([]byte, error)
}

// Factory builds a typed entity from a response body. The client is passed
// through so the built entity can resolve its own relations later.
type Factory[T any] func(data []byte, c Client) (T, error)

// Resource is the relation-bearing half of an API entity. Entity types embed
// it (tagged `json:"-"`) next to their scalar fields and call Bind with the
// response body they were decoded from.
//
// The embedded/link maps are immutable after Bind. The memo cache is
// populated at most once per key; a second resolution for the same key
// returns the cached value even if the server-side resource has changed.
type Resource struct {
	client   Client
	embedded map[string]json.RawMessage
	links    map[string]json.RawMessage

	mu    sync.Mutex
	cache map[string]any
}

// Bind parses the relation maps out of a response body and attaches the
// client used for lazy resolution. The client may be nil, in which case any
// resolution requiring a fetch fails with ErrNoClient.
func (r *Resource) Bind(data []byte, c Client) error {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("halx: bind envelope: %w", err)
	}
	r.embedded = env.Embedded
	r.links = env.Links
	r.client = c
	return nil
}

// Client returns the client the Resource was bound with, if any.
func (r *Resource) Client() Client { return r.client }

// HasLink reports whether the named relation is present in "_links".
func (r *Resource) HasLink(rel string) bool {
	_, ok := r.links[rel]
	return ok
}

// LinkHrefs returns the hrefs of the named relation in order. Descriptors
// without an href are skipped.
func (r *Resource) LinkHrefs(rel string) []string {
	raw, ok := r.links[rel]
	if !ok {
		return nil
	}

	var hrefs []string
	for _, entry := range linkEntries(raw) {
		l, err := decodeLink(entry)
		if err != nil || l.Href == "" {
			continue
		}
		hrefs = append(hrefs, l.Href)
	}
	return hrefs
}

// LinkHref returns the relation's href when it has exactly one, else "".
func (r *Resource) LinkHref(rel string) string {
	hrefs := r.LinkHrefs(rel)
	if len(hrefs) != 1 {
		return ""
	}
	return hrefs[0]
}

// LinkIDs returns the numeric ids of the named relation in order.
// Descriptors without an id are skipped.
func (r *Resource) LinkIDs(rel string) []int64 {
	raw, ok := r.links[rel]
	if !ok {
		return nil
	}

	var ids []int64
	for _, entry := range linkEntries(raw) {
		l, err := decodeLink(entry)
		if err != nil || l.ID == nil {
			continue
		}
		ids = append(ids, *l.ID)
	}
	return ids
}

// LinkID returns the relation's id when it has exactly one.
func (r *Resource) LinkID(rel string) (int64, bool) {
	ids := r.LinkIDs(rel)
	if len(ids) != 1 {
		return 0, false
	}
	return ids[0], true
}

// Href returns the entity's own location from the "self" link, or "".
func (r *Resource) Href() string {
	return r.LinkHref("self")
}

// EmbeddedObjects returns the raw embedded objects for the named relation,
// coercing the single-object form into a one-element slice. The second
// return reports whether the relation name was present at all.
func (r *Resource) EmbeddedObjects(rel string) ([]json.RawMessage, bool) {
	raw, ok := r.embedded[rel]
	if !ok {
		return nil, false
	}
	return linkEntries(raw), true
}

// EmbeddedObject returns the first embedded object for the relation, or nil.
func (r *Resource) EmbeddedObject(rel string) json.RawMessage {
	objects, ok := r.EmbeddedObjects(rel)
	if !ok || len(objects) == 0 {
		return nil
	}
	return objects[0]
}

// Prime stores a pre-resolved value in the memo cache. The stored value must
// have the same type later Memoize calls for the key expect.
func (r *Resource) Prime(key string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache == nil {
		r.cache = make(map[string]any)
	}
	r.cache[key] = v
}

func (r *Resource) cached(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.cache[key]
	return v, ok
}

// Memoize returns the cached value for key if the key has resolved before,
// otherwise runs resolve, caches its result and returns it. Failed
// resolutions are not cached.
func Memoize[T any](r *Resource, key string, resolve func() (T, error)) (T, error) {
	if v, ok := r.cached(key); ok {
		return v.(T), nil
	}

	v, err := resolve()
	if err != nil {
		var zero T
		return zero, err
	}

	r.Prime(key, v)
	return v, nil
}
