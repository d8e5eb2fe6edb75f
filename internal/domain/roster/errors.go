package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrEmptyRoster       = errors.New("roster must not be empty")
	ErrDuplicateName     = errors.New("duplicate competitor name")
	ErrUnknownCompetitor = errors.New("unknown competitor")
)
