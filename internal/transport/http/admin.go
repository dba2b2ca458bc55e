package http

import "net/http"

func (h *Handler) totalUsers(w http.ResponseWriter, r *http.Request) {
	counts, err := h.scores.UserCounts(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) totalQuestions(w http.ResponseWriter, r *http.Request) {
	counts, err := h.catalog.QuestionCounts(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
