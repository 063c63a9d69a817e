package handlers

import (
	"net/http"

	"github.com/Seyram02/nations-league/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	matches, err := h.tournamentService.CreateTournament(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"matches": matches,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ResetTournament(w http.ResponseWriter, r *http.Request) {
	err := h.tournamentService.ResetTournament(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "tournament reset",
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
