package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrAlreadyRegistered = errors.New("player already registered")
)
