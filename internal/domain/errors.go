package domain

import "errors"

var (
	// ErrQueryNotInCatalog is the lexical engine declining a query whose name
	// has no exact catalog match. It is a routing signal for the dispatcher,
	// not a failure, and must never reach the presentation layer.
	ErrQueryNotInCatalog = errors.New("query product not in catalog")

	// ErrModelUnavailable marks an embedding model failure. Request-scoped:
	// the request fails, the process keeps serving.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	ErrUserExists   = errors.New("username or email already exists")
	ErrUserNotFound = errors.New("user not found")
)
