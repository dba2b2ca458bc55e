package app_test

import (
	"context"
	"errors"
	"testing"

	"quizdeck-service/internal/app"
	"quizdeck-service/internal/domain"
	"quizdeck-service/internal/infra/memory"
)

func newCatalog() *app.CatalogService {
	return app.NewCatalogService(memory.NewSubjectRepository(), memory.NewQuestionRepository())
}

func TestSubjectsAreSortedAlphabetically(t *testing.T) {
	ctx := context.Background()
	service := newCatalog()

	for _, name := range []string{"Rust", "Go", "Python"} {
		if _, err := service.AddSubject(ctx, name); err != nil {
			t.Fatalf("add subject %s: %v", name, err)
		}
	}

	subjects, err := service.Subjects(ctx)
	if err != nil {
		t.Fatalf("list subjects: %v", err)
	}
	want := []string{"Go", "Python", "Rust"}
	if len(subjects) != len(want) {
		t.Fatalf("expected %d subjects, got %d", len(want), len(subjects))
	}
	for i, name := range want {
		if subjects[i].Name != name {
			t.Fatalf("expected %s at position %d, got %s", name, i, subjects[i].Name)
		}
	}
}

func TestAddSubjectValidation(t *testing.T) {
	ctx := context.Background()
	service := newCatalog()

	if _, err := service.AddSubject(ctx, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}

	if _, err := service.AddSubject(ctx, "Go"); err != nil {
		t.Fatalf("add subject: %v", err)
	}
	if _, err := service.AddSubject(ctx, "Go"); !errors.Is(err, domain.ErrSubjectExists) {
		t.Fatalf("expected ErrSubjectExists, got %v", err)
	}
}

func TestQuestionsForRoundLevelBuckets(t *testing.T) {
	ctx := context.Background()
	service := newCatalog()

	if _, err := service.AddSubject(ctx, "Go"); err != nil {
		t.Fatalf("add subject: %v", err)
	}
	for level := 1; level <= 5; level++ {
		if _, err := service.AddQuestion(ctx, sampleQuestion("Go", level)); err != nil {
			t.Fatalf("add question level %d: %v", level, err)
		}
	}

	easy, err := service.QuestionsForRound(ctx, "Go", "easy")
	if err != nil {
		t.Fatalf("easy round: %v", err)
	}
	for _, q := range easy {
		if q.Level > 3 {
			t.Fatalf("easy round returned level %d", q.Level)
		}
	}
	if len(easy) != 3 {
		t.Fatalf("expected 3 easy questions, got %d", len(easy))
	}

	medium, err := service.QuestionsForRound(ctx, "Go", "medium")
	if err != nil {
		t.Fatalf("medium round: %v", err)
	}
	for _, q := range medium {
		if q.Level != 3 && q.Level != 4 {
			t.Fatalf("medium round returned level %d", q.Level)
		}
	}

	if _, err := service.QuestionsForRound(ctx, "Go", "extreme"); !errors.Is(err, domain.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestQuestionsForRoundCapsAtTen(t *testing.T) {
	ctx := context.Background()
	service := newCatalog()

	if _, err := service.AddSubject(ctx, "Go"); err != nil {
		t.Fatalf("add subject: %v", err)
	}
	for i := 0; i < 25; i++ {
		if _, err := service.AddQuestion(ctx, sampleQuestion("Go", 2)); err != nil {
			t.Fatalf("add question: %v", err)
		}
	}

	round, err := service.QuestionsForRound(ctx, "Go", "easy")
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	if len(round) != app.QuestionSampleLimit {
		t.Fatalf("expected %d questions, got %d", app.QuestionSampleLimit, len(round))
	}
}

func TestAddQuestionUnknownSubject(t *testing.T) {
	service := newCatalog()
	_, err := service.AddQuestion(context.Background(), sampleQuestion("Haskell", 2))
	if !errors.Is(err, domain.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}
}

func sampleQuestion(subject string, level int) domain.Question {
	return domain.Question{
		SubjectName:   subject,
		Question:      "Which option is right?",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: "b",
		Level:         level,
	}
}
