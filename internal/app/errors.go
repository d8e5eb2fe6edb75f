package season

import "errors"

// Sentinel kinds for session errors.
var (
	ErrNilRoster      = errors.New("session requires a roster")
	ErrSeasonEnded    = errors.New("season already ended in chain failure")
	ErrScoreMismatch  = errors.New("per-problem scores do not match problem list")
	ErrUnknownContest = errors.New("contest definition is invalid")
)
