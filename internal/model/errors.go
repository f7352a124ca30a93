package model

import "errors"

var (
	// ErrNoBaseline indicates no baseline record exists for the requested
	// office/day/slot, even after the per-slot fallback. This is a defined
	// "no data" outcome, not a failure.
	ErrNoBaseline = errors.New("no baseline data for the requested slot")

	// ErrRateLimited indicates the text-generation API returned 429
	ErrRateLimited = errors.New("rate limit exceeded on the text-generation API")

	// ErrUnauthorized indicates an invalid text-generation API key
	ErrUnauthorized = errors.New("text-generation API key invalid or expired")

	// ErrTimeout indicates a timeout contacting the text-generation API
	ErrTimeout = errors.New("timeout on request to the text-generation API")

	// ErrInvalidResponse indicates a malformed text-generation response
	ErrInvalidResponse = errors.New("invalid response from the text-generation API")
)
