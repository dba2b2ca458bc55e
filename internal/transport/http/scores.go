package http

import (
	"net/http"

	"quizdeck-service/internal/domain"
)

func (h *Handler) listUserScores(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	scores, err := h.scores.ScoresForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

func (h *Handler) startSubject(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	subjectName := r.URL.Query().Get("subjectName")
	if subjectName == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	row, err := h.scores.StartSubject(r.Context(), userID, subjectName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	subjectName := r.URL.Query().Get("subjectName")
	if subjectName == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	delta, err := queryInt(r, "score")
	if err != nil {
		writeError(w, err)
		return
	}
	row, err := h.scores.RecordAnswer(r.Context(), userID, subjectName, delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) dropSubject(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	subjectName := r.URL.Query().Get("subjectName")
	if subjectName == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	if err := h.scores.DropSubject(r.Context(), userID, subjectName); err != nil {
		writeError(w, err)
		return
	}
	writeText(w, http.StatusOK, "subject dropped")
}

// submitScore is the answer-submission flow: with a score parameter the row
// accumulates one answered exercise; without one the running score resets to
// zero ("give up" semantics).
func (h *Handler) submitScore(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	subjectName := r.URL.Query().Get("language")
	if subjectName == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	var row domain.ScoreRow
	if r.URL.Query().Get("score") == "" {
		row, err = h.scores.RestartSubject(r.Context(), userID, subjectName)
	} else {
		var delta int
		delta, err = queryInt(r, "score")
		if err == nil {
			row, err = h.scores.RecordAnswer(r.Context(), userID, subjectName, delta)
		}
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
