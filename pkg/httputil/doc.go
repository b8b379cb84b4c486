// Package httputil provides HTTP utilities shared by the API server and
// the serve command.
//
// # Overview
//
// This package provides infrastructure used on both sides of the HTTP API:
//
//   - [WriteJSON] / [WriteError]: Consistent JSON response encoding
//   - [Retry]: Automatic retry with exponential backoff
//
// # Responses
//
// All API responses are JSON. Errors carry a machine-readable code from
// the errors package plus a human-readable message:
//
//	{"code": "AMBIGUOUS_TARGET", "message": "...", "details": {...}}
//
// [StatusForCode] maps error codes to HTTP status codes so handlers never
// pick statuses ad hoc.
//
// # Retry
//
// [Retry] wraps operations with automatic retry for transient failures,
// such as connecting to Redis or MongoDB while the backend is still
// starting up. It uses exponential backoff: the delay doubles after each
// failed attempt.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return pingBackend()
//	})
package httputil
