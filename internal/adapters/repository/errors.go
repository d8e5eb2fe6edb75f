package repository

import "errors"

// Sentinel kinds for career store errors.
var (
	ErrNoHistory    = errors.New("no career history for competitor")
	ErrDuplicateKey = errors.New("duplicate entry id")
)
