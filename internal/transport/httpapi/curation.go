package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/internal/service/knowledge"
)

type multilingualRequest struct {
	QuestionEN string   `json:"question_en"`
	AnswerEN   string   `json:"answer_en"`
	QuestionHU string   `json:"question_hu"`
	AnswerHU   string   `json:"answer_hu"`
	QuestionDE string   `json:"question_de"`
	AnswerDE   string   `json:"answer_de"`
	References []string `json:"references" validate:"omitempty,dive,required"`
}

type multilingualResponse struct {
	Detail string `json:"detail"`
	EnID   string `json:"en_id"`
	HuID   string `json:"hu_id"`
	DeID   string `json:"de_id"`
}

type chatLogsQuery struct {
	Hours *int `validate:"omitempty,min=1,max=168"`
}

type rateChatRequest struct {
	LogID string `json:"log_id" validate:"required"`
}

func (s *Server) handleAddMultilingual(w http.ResponseWriter, r *http.Request) {
	var req multilingualRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ids, err := s.deps.Catalog.AddMultilingual(r.Context(), knowledge.MultilingualInput{
		QuestionEN: req.QuestionEN,
		AnswerEN:   req.AnswerEN,
		QuestionHU: req.QuestionHU,
		AnswerHU:   req.AnswerHU,
		QuestionDE: req.QuestionDE,
		AnswerDE:   req.AnswerDE,
		References: req.References,
	})
	if err != nil {
		respondError(w, r, err, "Not found.", "Failed to create multilingual question.")
		return
	}

	respondJSON(w, http.StatusCreated, multilingualResponse{
		Detail: "Multilingual question created successfully.",
		EnID:   ids[core.LangEnglish],
		HuID:   ids[core.LangHungarian],
		DeID:   ids[core.LangGerman],
	})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Catalog.ListItems(r.Context())
	if err != nil {
		respondError(w, r, err, "Not found.", "Failed to list multilingual questions.")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Catalog.DeleteItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "Multilingual question not found.", "Failed to delete multilingual question.")
		return
	}
	respondDetail(w, http.StatusOK, "Multilingual question deleted successfully.")
}

func (s *Server) handleListUnanswered(w http.ResponseWriter, r *http.Request) {
	questions, err := s.deps.Catalog.ListUnanswered(r.Context())
	if err != nil {
		respondError(w, r, err, "Not found.", "Failed to list unanswered questions.")
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

func (s *Server) handleDeleteUnanswered(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Catalog.DeleteUnanswered(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "Unanswered question not found.", "Failed to delete unanswered question.")
		return
	}
	respondDetail(w, http.StatusOK, "Unanswered question deleted successfully.")
}

func (s *Server) handleChatLogs(w http.ResponseWriter, r *http.Request) {
	var q chatLogsQuery
	if raw := r.URL.Query().Get("hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusUnprocessableEntity, validationResponse{Detail: []fieldError{{
				Field: "hours",
				Rule:  "int",
				Msg:   "Input should be a valid integer",
			}}})
			return
		}
		q.Hours = &hours
	}
	if !s.validateStruct(w, &q) {
		return
	}

	logs, err := s.deps.Review.ChatLogs(r.Context(), q.Hours)
	if err != nil {
		respondError(w, r, err, "Not found.", "Failed to load chat logs.")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

func (s *Server) handleDeleteChatLog(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Review.DeleteChatLog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "Chat log not found.", "Failed to delete chat log.")
		return
	}
	respondDetail(w, http.StatusOK, "Chat log deleted successfully.")
}

func (s *Server) handleRateChat(w http.ResponseWriter, r *http.Request) {
	var req rateChatRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := s.deps.Review.RateChat(r.Context(), req.LogID); err != nil {
		respondError(w, r, err, "Chat log not found.", "Failed to review chat log.")
		return
	}
	respondDetail(w, http.StatusOK, "Chat log reviewed successfully.")
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.deps.Review.Reviews(r.Context())
	if err != nil {
		respondError(w, r, err, "Not found.", "Failed to list review questions.")
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Review.DeleteReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "Review question not found.", "Failed to delete review question.")
		return
	}
	respondDetail(w, http.StatusOK, "Review question deleted successfully.")
}
