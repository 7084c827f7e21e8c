package services

import "errors"

var (
	// ErrProductNotFound means the code is absent both locally and upstream.
	ErrProductNotFound = errors.New("product not found")
	// ErrUpstream covers network failures, non-2xx responses and malformed
	// bodies from the product database.
	ErrUpstream = errors.New("upstream request failed")
	// ErrInvalidAction rejects history actions other than scan/view.
	ErrInvalidAction = errors.New("invalid history action")

	// 429 from the upstream search endpoint; absorbed by the pagination
	// loop, never returned to callers.
	errRateLimited = errors.New("upstream rate limited")
)
