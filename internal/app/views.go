package season

import (
	"context"

	"github.com/hqin/oicoach/internal/domain/career"
	"github.com/hqin/oicoach/internal/domain/qualify"
)

// CompetitorView is the read shape handed to the UI collaborator.
type CompetitorView struct {
	Name      string             `json:"name"`
	Thinking  float64            `json:"thinking"`
	Coding    float64            `json:"coding"`
	Mental    float64            `json:"mental"`
	Pressure  float64            `json:"pressure"`
	Comfort   float64            `json:"comfort"`
	Knowledge map[string]float64 `json:"knowledge"`
	Active    bool               `json:"active"`
}

// RosterView returns a copy of the roster's current attributes.
func (s *Session) RosterView() []CompetitorView {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := s.roster.Members()
	out := make([]CompetitorView, 0, len(members))
	for _, c := range members {
		knowledge := make(map[string]float64, len(c.Knowledge))
		for t, v := range c.Knowledge {
			knowledge[t.String()] = v
		}
		out = append(out, CompetitorView{
			Name:      c.Name,
			Thinking:  c.Thinking,
			Coding:    c.Coding,
			Mental:    c.Mental,
			Pressure:  c.Pressure,
			Comfort:   c.Comfort,
			Knowledge: knowledge,
			Active:    c.Active,
		})
	}
	return out
}

// Qualification returns one half-season's ledger snapshot for display.
func (s *Session) Qualification(half int) map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot(half)
}

// Career returns the full career ledger in insertion order.
func (s *Session) Career(ctx context.Context) []career.Entry {
	return s.store.Entries(ctx)
}

// Week returns the current week counter.
func (s *Session) Week() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.week
}

// AdvanceWeek moves the week counter forward and returns the new value.
func (s *Session) AdvanceWeek() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week++
	return s.week
}

// Half returns the current half-season index.
func (s *Session) Half() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return qualify.HalfOfWeek(s.week, s.cfg.SeasonWeeks)
}

// Funds returns the accumulated funding balance.
func (s *Session) Funds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.funds
}

// Ended reports whether the chain-failure ending has triggered.
func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// GetStats returns session statistics for monitoring.
func (s *Session) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]interface{}{
		"week":          s.week,
		"half":          qualify.HalfOfWeek(s.week, s.cfg.SeasonWeeks),
		"funds":         s.funds,
		"ended":         s.ended,
		"rosterSize":    s.roster.Len(),
		"activeMembers": len(s.roster.ActiveMembers()),
		"careerEntries": s.store.Count(context.Background()),
		"claimedKeys":   s.guard.Size(),
	}
}
