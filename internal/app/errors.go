package app

import "errors"

// Sentinel kinds for registration and query errors. The ops API translates
// these to distinct user-visible responses.
var (
	ErrInvalidRiotID = errors.New("riot id must be Name#Tag")
	ErrUnknownRiotID = errors.New("riot id not found")
	ErrUnknownQueue  = errors.New("unknown queue")
)
