// Package domain holds shared domain sentinels.
//
// The search engine itself has no throwing error paths: missing data is
// a sentinel value and malformed input degrades to missing. These errors
// belong to the service boundary around it (storage, request parsing).
package domain

import "errors"

var (
	// ErrVenueNotFound signals a missing venue listing.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrCatalogNotFound signals a missing treatment catalog.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrInvalidInput signals a request that failed boundary validation.
	ErrInvalidInput = errors.New("invalid input")
)
