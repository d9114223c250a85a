// Package handler is the HTTP entry point for the exchange.
//
// It binds and validates requests through the validation package, calls the
// ExchangeService and writes JSON responses. Errors are returned unchanged
// to the global error handler, which maps them to status codes.
package handler
