package contest

import "errors"

// Sentinel kinds for contest definition errors.
var (
	ErrInvalidStage  = errors.New("stage is not part of the chain")
	ErrNoProblems    = errors.New("contest must define at least one problem")
	ErrInvalidMaxima = errors.New("per-problem max score must be positive")
)
