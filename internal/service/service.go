// Package service contains the exchange rules.
//
// It sits between the handlers and the repositories: handlers pass it
// decoded input, it checks arguments and referenced entities, applies the
// offer and demand state machine inside one unit of work and returns the
// persisted result or a *domain.Error.
package service
