// Package api declares the read-only HTTP surface the external UI
// collaborator consumes, plus the contest-resolution entry points. JSON
// only; all rendering happens outside this core.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	season "github.com/hqin/oicoach/internal/app"
	"github.com/hqin/oicoach/internal/domain/career"
	"github.com/hqin/oicoach/internal/domain/contest"
)

// Dependencies bundles the session operations the handlers need. Keeping
// an interface here decouples the handler layer from the app package's
// concrete Session.
type Dependencies interface {
	ResolveContest(ctx context.Context, def contest.Definition) (*season.Resolution, error)
	RosterView() []season.CompetitorView
	Qualification(half int) map[string][]string
	Career(ctx context.Context) []career.Entry
	Week() int
	Half() int
	Funds() int
	Ended() bool
}

// Server wires HTTP routes for the simulation API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	rosterHandler        *RosterHandler
	qualificationHandler *QualificationHandler
	careerHandler        *CareerHandler
	resolveHandler       *ResolveHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		rosterHandler:        NewRosterHandler(deps),
		qualificationHandler: NewQualificationHandler(deps),
		careerHandler:        NewCareerHandler(deps),
		resolveHandler:       NewResolveHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/qualification", MetricsMiddleware(s.qualificationHandler.HandleGetQualification, "qualification"))
	mux.HandleFunc("/career", MetricsMiddleware(s.careerHandler.HandleGetCareer, "career"))
	mux.HandleFunc("/contests/resolve", MetricsMiddleware(s.resolveHandler.HandleResolve, "resolve"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
