package nemo

import "errors"

var (
	// ErrLookupFailed indicates a service could not be resolved through the lookup service.
	ErrLookupFailed = errors.New("service lookup failed")

	// ErrAuthFailed indicates no authorization header was supplied and the
	// credential exchange did not produce one.
	ErrAuthFailed = errors.New("remote authorization failed")

	// ErrRemoteStatus indicates the document query returned a non-200 status.
	ErrRemoteStatus = errors.New("remote API error")

	// ErrGraphQL indicates the document query returned a GraphQL error.
	ErrGraphQL = errors.New("remote query error")

	// ErrDocumentNotFound indicates the query succeeded but returned no document.
	ErrDocumentNotFound = errors.New("document not found")
)
