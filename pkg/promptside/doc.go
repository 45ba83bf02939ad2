// Package promptside is a client SDK for the Promptside ticketing platform.
//
// A Client authenticates with an OAuth2 client-credentials grant, attaches
// the bearer token to every request, transparently re-authenticates and
// retries once when the token expires, and surfaces server errors as typed
// values (see AuthError, ProblemError, TransportError, APIError).
//
// Typed resource entities live in the core and selfservice subpackages and
// are built on the halx hypermedia engine: relations embedded in a response
// are materialised in place, linked relations are fetched lazily through the
// Client and memoized per entity instance. Webhook payload verification
// lives in the webhook subpackage, keyed by the environment's public key
// carried on the Client.
package promptside
