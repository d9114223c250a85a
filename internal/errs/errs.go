// Package errs defines the error shapes returned to API clients.
//
// HTTPError is serialized as-is by the global error handler. FromDomain
// translates the exchange rule errors into the matching HTTP status.
package errs
