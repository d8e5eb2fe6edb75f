package api

import (
	"net/http"
	"strconv"

	"github.com/hqin/oicoach/internal/domain/qualify"
)

// QualificationHandler serves the qualification ledger read view.
type QualificationHandler struct {
	deps Dependencies
}

// NewQualificationHandler creates a new qualification handler.
func NewQualificationHandler(deps Dependencies) *QualificationHandler {
	return &QualificationHandler{deps: deps}
}

// HandleGetQualification handles GET /qualification?half=N requests.
// Omitting half returns the current half-season's bracket.
func (h *QualificationHandler) HandleGetQualification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	half := h.deps.Half()
	if raw := r.URL.Query().Get("half"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed >= qualify.HalfCount {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		half = parsed
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"half":   half,
		"stages": h.deps.Qualification(half),
	})
}
