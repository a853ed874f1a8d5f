package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectn/internal/api/request"
	"github.com/mcoot/connectn/internal/api/response"
	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/services/history"
)

// HistoryHandler handles the match history endpoints
type HistoryHandler struct {
	history history.ServiceInterface
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history history.ServiceInterface) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /api/v1/matches
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := request.ParseListMatches(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	matches, err := h.history.List(r.Context(), q.Limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchListFromModel(matches))
}

// Get handles GET /api/v1/matches/{id}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	match, err := h.history.Get(r.Context(), model.MatchID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(match))
}

// Stats handles GET /api/v1/stats
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.history.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(stats))
}

// Delete handles DELETE /api/v1/matches/{id}
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.history.Delete(r.Context(), model.MatchID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
