package http

import (
	"net/http"

	"quizdeck-service/internal/domain"
)

func (h *Handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	subjectName := r.URL.Query().Get("subjectName")
	if subjectName == "" {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	board, err := h.scores.Leaderboard(r.Context(), subjectName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *Handler) createLeaderboardEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	subjectID, err := queryInt64(r, "subjectId")
	if err != nil {
		writeError(w, err)
		return
	}
	score, err := queryIntDefault(r, "subjectScore", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	exercises, err := queryIntDefault(r, "exercisesCompleted", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	row, err := h.scores.CreateEntry(r.Context(), userID, subjectID, score, exercises)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) updateLeaderboardEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	subjectID, err := queryInt64(r, "subjectId")
	if err != nil {
		writeError(w, err)
		return
	}
	score, err := queryInt(r, "updatedSubjectScore")
	if err != nil {
		writeError(w, err)
		return
	}
	exercises, err := queryInt(r, "updatedExercisesCompleted")
	if err != nil {
		writeError(w, err)
		return
	}
	row, err := h.scores.UpdateEntry(r.Context(), userID, subjectID, score, exercises)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) deleteLeaderboardEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	subjectID, err := queryInt64(r, "subjectId")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.scores.DeleteEntry(r.Context(), userID, subjectID); err != nil {
		writeError(w, err)
		return
	}
	writeText(w, http.StatusOK, "leaderboard entry deleted")
}
