package api

import (
	"encoding/json"
	"errors"
	"net/http"

	season "github.com/hqin/oicoach/internal/app"
	"github.com/hqin/oicoach/internal/domain/contest"
	"github.com/hqin/oicoach/internal/domain/types"
)

// resolveRequest mirrors the JSON body for POST /contests/resolve.
type resolveRequest struct {
	Stage          string  `json:"stage"`
	Type           string  `json:"type"`
	ProblemCount   int     `json:"problem_count"`
	DifficultyBase float64 `json:"difficulty_base"`
	MaxPerProblem  int     `json:"max_per_problem"`
}

func (r resolveRequest) definition() (contest.Definition, error) {
	stage, ok := types.ParseStage(r.Stage)
	if !ok {
		return contest.Definition{}, ErrUnknownStage
	}
	kind := types.ContestFormal
	if r.Type == types.ContestPractice.String() {
		kind = types.ContestPractice
	}
	def := contest.Definition{
		Stage:          stage,
		Type:           kind,
		ProblemCount:   r.ProblemCount,
		DifficultyBase: r.DifficultyBase,
		MaxPerProblem:  r.MaxPerProblem,
	}
	if err := def.Validate(); err != nil {
		return contest.Definition{}, err
	}
	return def, nil
}

// ResolveHandler runs contest occurrences on behalf of the UI collaborator.
type ResolveHandler struct {
	deps Dependencies
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(deps Dependencies) *ResolveHandler {
	return &ResolveHandler{deps: deps}
}

// HandleResolve handles POST /contests/resolve requests. Duplicate
// deliveries of the same occurrence return the no-op resolution, not an
// error; a season already ended maps to 409.
func (h *ResolveHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	def, err := req.definition()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	res, err := h.deps.ResolveContest(r.Context(), def)
	if err != nil {
		if errors.Is(err, season.ErrSeasonEnded) {
			writeError(w, http.StatusConflict, "season_over", ErrSeasonOver)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, resolutionResponse(res))
}

// resolutionResponse flattens a resolution into the wire shape.
func resolutionResponse(res *season.Resolution) map[string]any {
	out := map[string]any{
		"id":               res.ID,
		"stage":            res.Stage.String(),
		"type":             res.Type.String(),
		"week":             res.Week,
		"half":             res.Half,
		"pass_line":        res.PassLine,
		"funding_issued":   res.FundingIssued,
		"ending_triggered": res.EndingTriggered,
		"duplicate":        res.Duplicate,
	}
	if res.EndingReason != "" {
		out["ending_reason"] = res.EndingReason
	}
	results := make([]map[string]any, 0, len(res.Results))
	for _, r := range res.Results {
		results = append(results, map[string]any{
			"rank":        r.Rank,
			"name":        r.Name,
			"score":       r.Total,
			"per_problem": r.PerProblem,
			"passed":      r.Passed,
			"medal":       r.Medal.String(),
		})
	}
	out["results"] = results
	return out
}
