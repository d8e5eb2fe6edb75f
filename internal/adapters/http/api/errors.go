package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrSeasonOver   = errors.New("season has ended")
	ErrUnknownStage = errors.New("unknown stage name")
)
