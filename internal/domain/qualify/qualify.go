// Package qualify tracks multi-stage tournament qualification across the
// two half-season brackets. Each half-season owns an independent ledger of
// (stage -> set of competitor names); a competitor may attempt stage k only
// if their name passed stage k-1 in the same half-season.
package qualify

import (
	"sort"

	"github.com/hqin/oicoach/internal/domain/roster"
	"github.com/hqin/oicoach/internal/domain/types"
)

// HalfCount is the number of brackets per season.
const HalfCount = 2

// HalfOfWeek derives the bracket index from the week counter; crossing the
// midpoint of the season moves play into the second bracket.
func HalfOfWeek(week, seasonWeeks int) int {
	if seasonWeeks < 2 {
		return 0
	}
	if week < seasonWeeks/2 {
		return 0
	}
	return 1
}

// Ledger is the qualification state machine's store. Sets grow
// monotonically within a half-season and are never pruned; nothing carries
// over between halves. Created lazily on first write.
type Ledger struct {
	passed [HalfCount]map[types.Stage]map[string]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record marks name as having passed stage in the given half.
func (l *Ledger) Record(half int, stage types.Stage, name string) {
	if half < 0 || half >= HalfCount {
		return
	}
	if l.passed[half] == nil {
		l.passed[half] = make(map[types.Stage]map[string]struct{})
	}
	if l.passed[half][stage] == nil {
		l.passed[half][stage] = make(map[string]struct{})
	}
	l.passed[half][stage][name] = struct{}{}
}

// IsQualified reports whether name passed stage in the given half.
func (l *Ledger) IsQualified(half int, stage types.Stage, name string) bool {
	if half < 0 || half >= HalfCount || l.passed[half] == nil {
		return false
	}
	_, ok := l.passed[half][stage][name]
	return ok
}

// Qualified lists everyone who passed stage in the given half, sorted for
// stable output.
func (l *Ledger) Qualified(half int, stage types.Stage) []string {
	if half < 0 || half >= HalfCount || l.passed[half] == nil {
		return nil
	}
	names := make([]string, 0, len(l.passed[half][stage]))
	for name := range l.passed[half][stage] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Eligible filters the roster to competitors allowed to attempt stage in
// the given half: every active member for the first link, otherwise active
// members who passed the previous link in the same half.
func (l *Ledger) Eligible(half int, stage types.Stage, r *roster.Roster) []*roster.Competitor {
	active := r.ActiveMembers()
	prev, hasPrev := stage.Prev()
	if !hasPrev {
		return active
	}
	out := make([]*roster.Competitor, 0, len(active))
	for _, c := range active {
		if l.IsQualified(half, prev, c.Name) {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears one half's bracket, used when a new season starts.
func (l *Ledger) Reset(half int) {
	if half < 0 || half >= HalfCount {
		return
	}
	l.passed[half] = nil
}

// Snapshot returns a copy of one half's state for external display.
func (l *Ledger) Snapshot(half int) map[string][]string {
	out := make(map[string][]string)
	for _, s := range types.Stages() {
		if names := l.Qualified(half, s); len(names) > 0 {
			out[s.String()] = names
		}
	}
	return out
}
