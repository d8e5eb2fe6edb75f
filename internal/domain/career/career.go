// Package career defines the append-only record of contest outcomes that
// the external UI and persistence layers consume. Entries are never
// mutated after creation.
package career

import (
	"github.com/google/uuid"

	"github.com/hqin/oicoach/internal/domain/types"
)

// Outcome is one competitor's line inside a contest entry.
type Outcome struct {
	Rank         int         `json:"rank"`
	Name         string      `json:"name"`
	Score        int         `json:"score"`
	PerProblem   []int       `json:"per_problem"`
	Passed       bool        `json:"passed"`
	Medal        types.Medal `json:"medal"`
	Remark       string      `json:"remark"`
	Participated bool        `json:"participated"`
}

// Entry is one contest occurrence. Outcomes are ordered by rank.
type Entry struct {
	ID           string    `json:"id"`
	Week         int       `json:"week"`
	Half         int       `json:"half"`
	ContestName  string    `json:"contest_name"`
	Passed       int       `json:"passed"`
	Participants int       `json:"participants"`
	Outcomes     []Outcome `json:"outcomes"`
}

// NewEntry stamps a fresh entry with a unique id.
func NewEntry(week, half int, contestName string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Week:        week,
		Half:        half,
		ContestName: contestName,
	}
}

// Remark bands, picked from rank and score position. Free text only; no
// gameplay reads these back.
const (
	remarkTopRank     = "set the pace for the whole room"
	remarkPassed      = "solid, advanced without drama"
	remarkNearMiss    = "a problem away from the cut"
	remarkBelowMid    = "struggled once the set got hard"
	remarkTiedMinimum = "a session to forget"
	remarkSkipped     = "did not take part"
)

// RemarkFor picks the band for one outcome. minScore is the session
// minimum among participants.
func RemarkFor(rank, score int, passed, participated bool, totalMax, minScore int) string {
	switch {
	case !participated:
		return remarkSkipped
	case score == minScore && !passed:
		return remarkTiedMinimum
	case rank == 1:
		return remarkTopRank
	case passed:
		return remarkPassed
	case float64(score) >= float64(totalMax)/2:
		return remarkNearMiss
	default:
		return remarkBelowMid
	}
}
