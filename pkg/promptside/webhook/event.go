// Package webhook verifies and decodes signed Promptside webhook payloads.
//
// A webhook delivery's entire request body is a JWT (media type
// application/jwt) signed with the environment's RSA key. Verify checks the
// signature against the environment's published public key and decodes the
// claim set into an Event; no event is ever produced from a payload that
// fails verification.
package webhook

import "encoding/json"

// Action discriminates webhook event types. Unrecognised actions still
// decode; callers are expected to ignore values they don't handle.
type Action string

const (
	// ActionSaleConfirm is emitted when a sale is confirmed.
	ActionSaleConfirm Action = "sale_confirm"
)

// Event is a verified, decoded webhook payload. The standard claims are
// renamed into their canonical event fields: aud becomes Audience, sub
// becomes Subject and jti becomes UUID. Action selects how the remaining
// claims should be reinterpreted via DecodeClaims.
type Event struct {
	Audience string
	Subject  string
	UUID     string
	Action   Action

	claims json.RawMessage
}

// DecodeClaims unmarshals the full claim set into an action-specific payload
// type such as SaleConfirm.
func (e *Event) DecodeClaims(v any) error {
	return json.Unmarshal(e.claims, v)
}
