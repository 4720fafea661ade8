package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sandevgo/faqbot/internal/core"
)

type chatRequest struct {
	Question string `json:"question" validate:"required"`
	ID       string `json:"id"`
}

type historyResponse struct {
	ID            string         `json:"id"`
	Messages      []core.Message `json:"messages"`
	LastTouchedAt time.Time      `json:"last_touched_at"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.deps.Chat.HandleTurn(r.Context(), req.Question, req.ID)
	if err != nil {
		respondError(w, r, err, "Session not found.", "Something went wrong, please try again later.")
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	messages, err := s.deps.Chat.SessionHistory(id)
	if err != nil {
		respondError(w, r, err, "Session not found.", "Failed to load session history.")
		return
	}
	touched, err := s.deps.Chat.SessionLastTouched(id)
	if err != nil {
		respondError(w, r, err, "Session not found.", "Failed to load session history.")
		return
	}
	respondJSON(w, http.StatusOK, historyResponse{ID: id, Messages: messages, LastTouchedAt: touched.UTC()})
}
