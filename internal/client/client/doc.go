// Package client is the terminal client's transport to the DevLog REST API.
//
// # Overview
//
// HTTPClient wraps net/http and the JSON wire types from internal/api. It
// holds no credentials of its own: every protected call takes an explicit
// *Session, so several sessions can share one client and nothing global
// has to be reset on logout.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx responses are
// returned as *StatusError, which unwraps to the matching sentinel from
// internal/common (ErrorValidation, ErrorUnauthorized, ErrorNotFound,
// ErrorAlreadyExists) so callers can use errors.Is.
package client
