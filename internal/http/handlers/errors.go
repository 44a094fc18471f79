// HTTP-layer error codes used in transport-level error envelopes.
//
// Codes are lowercase snake_case and mirror common HTTP status semantics.
// Business-level failures never surface here: they are rendered as chat
// text by the responder, which always answers 200 with content.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
