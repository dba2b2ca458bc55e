package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"quizdeck-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto status codes. Store-level failures are
// logged with full detail and answered with a generic body so internals never
// leak to clients.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
		writeJSON(w, status, errorBody{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidLevel):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSubjectNotFound),
		errors.Is(err, domain.ErrScoreNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrSubjectExists),
		errors.Is(err, domain.ErrScoreExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, domain.ErrInvalidInput
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	return value, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	value, err := queryInt64(r, name)
	return int(value), err
}

// queryIntDefault reads an optional integer parameter, falling back when absent.
func queryIntDefault(r *http.Request, name string, fallback int) (int, error) {
	if r.URL.Query().Get(name) == "" {
		return fallback, nil
	}
	return queryInt(r, name)
}
