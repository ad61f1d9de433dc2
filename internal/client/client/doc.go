// Package client talks to the gallery HTTP API.
//
// Client is the transport contract used by the CLI services; HTTPClient is
// the net/http implementation. Transport failures are reported as
// ErrUnavailable. Non-2xx replies become an *APIError that unwraps to
// ErrUnauthorized, ErrBadRequest, ErrNotFound or ErrServer and keeps the
// server's message.
package client
