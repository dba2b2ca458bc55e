package memory

import (
	"context"
	"errors"
	"testing"

	"quizdeck-service/internal/domain"
)

func seedSubjects(t *testing.T, names ...string) *SubjectRepository {
	t.Helper()
	subjects := NewSubjectRepository()
	for _, name := range names {
		if _, err := subjects.Create(context.Background(), name); err != nil {
			t.Fatalf("create subject %s: %v", name, err)
		}
	}
	return subjects
}

func TestAddDeltaAccumulates(t *testing.T) {
	ctx := context.Background()
	scores := NewScoreRepository(seedSubjects(t, "Go"))

	if _, err := scores.Create(ctx, 1, 1, 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := scores.AddDelta(ctx, 1, 1, 10); err != nil {
		t.Fatalf("first delta: %v", err)
	}
	row, err := scores.AddDelta(ctx, 1, 1, 5)
	if err != nil {
		t.Fatalf("second delta: %v", err)
	}
	if row.SubjectScore != 15 || row.ExercisesCompleted != 2 {
		t.Fatalf("expected {15 2}, got {%d %d}", row.SubjectScore, row.ExercisesCompleted)
	}
}

func TestAddDeltaMissingRow(t *testing.T) {
	scores := NewScoreRepository(seedSubjects(t, "Go"))
	_, err := scores.AddDelta(context.Background(), 1, 1, 10)
	if !errors.Is(err, domain.ErrScoreNotFound) {
		t.Fatalf("expected ErrScoreNotFound, got %v", err)
	}
}

func TestResetKeepsExerciseCount(t *testing.T) {
	ctx := context.Background()
	scores := NewScoreRepository(seedSubjects(t, "Go"))

	if _, err := scores.Create(ctx, 1, 1, 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := scores.AddDelta(ctx, 1, 1, 20); err != nil {
		t.Fatalf("delta: %v", err)
	}

	row, err := scores.Reset(ctx, 1, 1)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if row.SubjectScore != 0 || row.ExercisesCompleted != 1 {
		t.Fatalf("expected {0 1}, got {%d %d}", row.SubjectScore, row.ExercisesCompleted)
	}
}

func TestCreateDuplicatePair(t *testing.T) {
	ctx := context.Background()
	scores := NewScoreRepository(seedSubjects(t, "Go"))

	if _, err := scores.Create(ctx, 1, 1, 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := scores.Create(ctx, 1, 1, 5, 1); !errors.Is(err, domain.ErrScoreExists) {
		t.Fatalf("expected ErrScoreExists, got %v", err)
	}
}

func TestDeleteMissingRow(t *testing.T) {
	scores := NewScoreRepository(seedSubjects(t, "Go"))
	if err := scores.Delete(context.Background(), 7, 1); !errors.Is(err, domain.ErrScoreNotFound) {
		t.Fatalf("expected ErrScoreNotFound, got %v", err)
	}
}

func TestTopBySubjectOrderingAndTies(t *testing.T) {
	ctx := context.Background()
	scores := NewScoreRepository(seedSubjects(t, "Go"))

	rows := []struct {
		userID int64
		score  int
	}{
		{1, 40},
		{2, 90},
		{3, 40},
		{4, 70},
	}
	for _, row := range rows {
		if _, err := scores.Create(ctx, row.userID, 1, row.score, 1); err != nil {
			t.Fatalf("create user %d: %v", row.userID, err)
		}
	}

	top, err := scores.TopBySubject(ctx, 1, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []int64{2, 4, 1, 3}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i, userID := range want {
		if top[i].UserID != userID {
			t.Fatalf("expected user %d at position %d, got %d", userID, i, top[i].UserID)
		}
	}
}

func TestTopBySubjectAppliesLimit(t *testing.T) {
	ctx := context.Background()
	scores := NewScoreRepository(seedSubjects(t, "Go"))

	for userID := int64(1); userID <= 5; userID++ {
		if _, err := scores.Create(ctx, userID, 1, int(userID), 1); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	top, err := scores.TopBySubject(ctx, 1, 3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
}

func TestCountUsersIncludesEmptySubjects(t *testing.T) {
	ctx := context.Background()
	subjects := seedSubjects(t, "Go", "Rust")
	scores := NewScoreRepository(subjects)

	if _, err := scores.Create(ctx, 1, 1, 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := scores.Create(ctx, 2, 1, 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	counts, err := scores.CountUsersBySubject(ctx, "")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected both subjects reported, got %d rows", len(counts))
	}
	byName := make(map[string]int)
	for _, count := range counts {
		byName[count.SubjectName] = count.UserCount
	}
	if byName["Go"] != 2 || byName["Rust"] != 0 {
		t.Fatalf("unexpected counts: %v", byName)
	}
}

func TestListByUserResolvesNames(t *testing.T) {
	ctx := context.Background()
	subjects := seedSubjects(t, "Go", "Rust")
	scores := NewScoreRepository(subjects)

	if _, err := scores.Create(ctx, 1, 2, 30, 3); err != nil {
		t.Fatalf("create: %v", err)
	}

	listed, err := scores.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 row, got %d", len(listed))
	}
	if listed[0].SubjectName != "Rust" || listed[0].SubjectScore != 30 {
		t.Fatalf("unexpected row: %+v", listed[0])
	}
}
