package suggest

import "errors"

var (
	errNotConfigured = errors.New("ai completion not configured")
	errEmptyResponse = errors.New("no content generated")
)
