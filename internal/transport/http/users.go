package http

import "net/http"

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.Lookup(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.Register(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) renameUser(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	user, err := h.accounts.Rename(r.Context(), query.Get("email"), query.Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Remove(r.Context(), r.URL.Query().Get("email")); err != nil {
		writeError(w, err)
		return
	}
	writeText(w, http.StatusOK, "user deleted")
}
