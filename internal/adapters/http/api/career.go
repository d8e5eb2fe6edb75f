package api

import "net/http"

// CareerHandler serves the append-only career ledger.
type CareerHandler struct {
	deps Dependencies
}

// NewCareerHandler creates a new career handler.
func NewCareerHandler(deps Dependencies) *CareerHandler {
	return &CareerHandler{deps: deps}
}

// HandleGetCareer handles GET /career requests.
func (h *CareerHandler) HandleGetCareer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Career(r.Context()))
}
