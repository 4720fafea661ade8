package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sandevgo/faqbot/internal/core"
	"github.com/sandevgo/faqbot/pkg/log"
)

var errEmptyBody = errors.New("empty body")

type detailResponse struct {
	Detail string `json:"detail"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Msg   string `json:"msg"`
}

type validationResponse struct {
	Detail []fieldError `json:"detail"`
}

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// decodeAndValidate writes the error response itself and reports whether the handler may go on.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := decodeJSON(r, out); err != nil && !errors.Is(err, errEmptyBody) {
		respondDetail(w, http.StatusBadRequest, "Malformed JSON body.")
		return false
	}
	return s.validateStruct(w, out)
}

func (s *Server) validateStruct(w http.ResponseWriter, v any) bool {
	err := s.validate.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}

	out := validationResponse{Detail: make([]fieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Detail = append(out.Detail, fieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Msg:   validationMessage(fe),
		})
	}
	respondJSON(w, http.StatusUnprocessableEntity, out)
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "min", "gte":
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("Failed on %s", fe.Tag())
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, detailResponse{Detail: detail})
}

// respondError maps service errors to status codes. Only the caller's generic
// message and sentinel-derived texts reach the client.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFound, failure string) {
	switch {
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrSessionNotFound):
		respondDetail(w, http.StatusNotFound, notFound)
	case errors.Is(err, core.ErrInvalidInput):
		respondDetail(w, http.StatusBadRequest, invalidInputDetail(err))
	default:
		log.FromCtx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondDetail(w, http.StatusInternalServerError, failure)
	}
}

// invalidInputDetail strips the sentinel prefix so only the caller-facing reason remains.
func invalidInputDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, core.ErrInvalidInput.Error()+": "); i >= 0 {
		msg = msg[i+len(core.ErrInvalidInput.Error())+2:]
	}
	if msg == "" {
		return "Invalid input."
	}
	first, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(first)) + msg[size:] + "."
}
