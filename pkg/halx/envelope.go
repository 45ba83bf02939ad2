// Package halx implements the hypermedia (HAL-style) response model used by
// the Promptside REST APIs. Responses carry their scalar fields alongside an
// optional "_embedded" map of inlined sub-resources and an optional "_links"
// map of relation descriptors. A Resource bound to a response body exposes
// both maps and can lazily materialise linked relations through a Client.
package halx

import (
	"bytes"
	"encoding/json"
)

// Envelope is the generic shape every API response decodes into. Relation
// values are kept raw because the API serialises a relation as either a
// single object or an array of objects.
type Envelope struct {
	Embedded map[string]json.RawMessage `json:"_embedded,omitempty"`
	Links    map[string]json.RawMessage `json:"_links,omitempty"`
}

// Link is a single relation descriptor. Href points at the resource; ID is
// an optional numeric identifier some relations carry instead of (or next
// to) the href.
type Link struct {
	Href string `json:"href,omitempty"`
	ID   *int64 `json:"id,omitempty"`
}

// linkEntries normalises a raw relation value into its individual
// descriptors. A single object becomes a one-element slice. A value that is
// not an object or array yields nil.
func linkEntries(raw json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '[' {
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil
		}
		return entries
	}

	if trimmed[0] == '{' {
		return []json.RawMessage{trimmed}
	}

	return nil
}

// decodeLink decodes one relation descriptor.
func decodeLink(raw json.RawMessage) (Link, error) {
	var l Link
	if err := json.Unmarshal(raw, &l); err != nil {
		return Link{}, err
	}
	return l, nil
}
