package http

import (
	"net/http"

	"quizdeck-service/internal/domain"
)

func (h *Handler) listLanguages(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.catalog.Subjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (h *Handler) addLanguage(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.catalog.AddSubject(r.Context(), r.URL.Query().Get("newLanguage"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	questions, err := h.catalog.QuestionsForRound(r.Context(),
		query.Get("subjectLanguage"), query.Get("level"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) addQuestion(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	level, err := queryInt(r, "questionLevel")
	if err != nil {
		writeError(w, err)
		return
	}
	question, err := h.catalog.AddQuestion(r.Context(), domain.Question{
		SubjectName:   query.Get("subjectLanguage"),
		Question:      query.Get("question"),
		OptionA:       query.Get("optionA"),
		OptionB:       query.Get("optionB"),
		OptionC:       query.Get("optionC"),
		OptionD:       query.Get("optionD"),
		CorrectAnswer: query.Get("correctAnswer"),
		Level:         level,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}
