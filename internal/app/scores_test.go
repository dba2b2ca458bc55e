package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"quizdeck-service/internal/app"
	"quizdeck-service/internal/domain"
	"quizdeck-service/internal/infra/memory"
)

func newScoreService(t *testing.T, subjectNames ...string) *app.ScoreService {
	t.Helper()
	subjects := memory.NewSubjectRepository()
	for _, name := range subjectNames {
		if _, err := subjects.Create(context.Background(), name); err != nil {
			t.Fatalf("create subject %s: %v", name, err)
		}
	}
	return app.NewScoreService(memory.NewScoreRepository(subjects), subjects, nil)
}

func TestAnswerFlowAccumulates(t *testing.T) {
	ctx := context.Background()
	service := newScoreService(t, "Go")

	if _, err := service.StartSubject(ctx, 1, "Go"); err != nil {
		t.Fatalf("start subject: %v", err)
	}
	if _, err := service.RecordAnswer(ctx, 1, "Go", 10); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	row, err := service.RecordAnswer(ctx, 1, "Go", 5)
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if row.SubjectScore != 15 || row.ExercisesCompleted != 2 {
		t.Fatalf("expected score 15 after 2 exercises, got %+v", row)
	}
}

func TestRestartZeroesScoreOnly(t *testing.T) {
	ctx := context.Background()
	service := newScoreService(t, "Go")

	if _, err := service.StartSubject(ctx, 1, "Go"); err != nil {
		t.Fatalf("start subject: %v", err)
	}
	if _, err := service.RecordAnswer(ctx, 1, "Go", 10); err != nil {
		t.Fatalf("answer: %v", err)
	}

	row, err := service.RestartSubject(ctx, 1, "Go")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if row.SubjectScore != 0 {
		t.Fatalf("expected score reset to 0, got %d", row.SubjectScore)
	}
	if row.ExercisesCompleted != 1 {
		t.Fatalf("expected exercise count preserved, got %d", row.ExercisesCompleted)
	}
}

func TestStartSubjectTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	service := newScoreService(t, "Go")

	if _, err := service.StartSubject(ctx, 1, "Go"); err != nil {
		t.Fatalf("start subject: %v", err)
	}
	if _, err := service.StartSubject(ctx, 1, "Go"); !errors.Is(err, domain.ErrScoreExists) {
		t.Fatalf("expected ErrScoreExists, got %v", err)
	}
}

func TestAnswerUnknownSubject(t *testing.T) {
	service := newScoreService(t, "Go")
	_, err := service.RecordAnswer(context.Background(), 1, "Haskell", 10)
	if !errors.Is(err, domain.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestLeaderboardOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	service := newScoreService(t, "Go")

	for userID := int64(1); userID <= 15; userID++ {
		if _, err := service.CreateEntry(ctx, userID, 1, int(userID)*10, 1); err != nil {
			t.Fatalf("create entry for user %d: %v", userID, err)
		}
	}

	board, err := service.Leaderboard(ctx, "Go")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board.Entries) != app.LeaderboardLimit {
		t.Fatalf("expected %d entries, got %d", app.LeaderboardLimit, len(board.Entries))
	}
	if board.Entries[0].UserID != 15 {
		t.Fatalf("expected user 15 to lead, got %+v", board.Entries[0])
	}
	for i := 1; i < len(board.Entries); i++ {
		if board.Entries[i].SubjectScore > board.Entries[i-1].SubjectScore {
			t.Fatalf("leaderboard not sorted at position %d", i)
		}
	}
}

func TestLeaderboardTiesBreakByUserID(t *testing.T) {
	ctx := context.Background()
	service := newScoreService(t, "Go")

	for _, userID := range []int64{9, 3, 7} {
		if _, err := service.CreateEntry(ctx, userID, 1, 50, 5); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	board, err := service.Leaderboard(ctx, "Go")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	want := []int64{3, 7, 9}
	for i, userID := range want {
		if board.Entries[i].UserID != userID {
			t.Fatalf("expected user %d at position %d, got %d", userID, i, board.Entries[i].UserID)
		}
	}
}

func TestDeleteEntryMissing(t *testing.T) {
	service := newScoreService(t, "Go")
	err := service.DeleteEntry(context.Background(), 42, 1)
	if !errors.Is(err, domain.ErrScoreNotFound) {
		t.Fatalf("expected ErrScoreNotFound, got %v", err)
	}
}

func TestUpdateEntryRejectsNegatives(t *testing.T) {
	service := newScoreService(t, "Go")
	_, err := service.UpdateEntry(context.Background(), 1, 1, -5, 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestConcurrentAnswersLoseNoUpdates(t *testing.T) {
	ctx := context.Background()
	service := newScoreService(t, "Go")

	if _, err := service.StartSubject(ctx, 1, "Go"); err != nil {
		t.Fatalf("start subject: %v", err)
	}

	const writers = 20
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			_, err := service.RecordAnswer(ctx, 1, "Go", 5)
			errs <- err
		}()
	}
	for i := 0; i < writers; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent answer: %v", err)
		}
	}

	scores, err := service.ScoresForUser(ctx, 1)
	if err != nil {
		t.Fatalf("scores for user: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 score row, got %d", len(scores))
	}
	if scores[0].SubjectScore != writers*5 || scores[0].ExercisesCompleted != writers {
		t.Fatalf("lost updates: %+v", scores[0])
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	service := newScoreService(t, "Go")

	if _, err := service.StartSubject(ctx, 1, "Go"); err != nil {
		t.Fatalf("start subject: %v", err)
	}

	updates, cancel, err := service.Subscribe(ctx, "Go")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	initial := <-updates
	if initial.SubjectName != "Go" {
		t.Fatalf("expected initial snapshot for Go, got %+v", initial)
	}

	if _, err := service.RecordAnswer(ctx, 1, "Go", 10); err != nil {
		t.Fatalf("answer: %v", err)
	}

	update := <-updates
	if len(update.Entries) != 1 || update.Entries[0].SubjectScore != 10 {
		t.Fatalf("expected updated score 10, got %+v", update.Entries)
	}
}

func TestSubscribeUnknownSubject(t *testing.T) {
	service := newScoreService(t, "Go")
	_, _, err := service.Subscribe(context.Background(), "Haskell")
	if !errors.Is(err, domain.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestUserCounts(t *testing.T) {
	ctx := context.Background()
	subjects := memory.NewSubjectRepository()
	for _, name := range []string{"Go", "Rust"} {
		if _, err := subjects.Create(ctx, name); err != nil {
			t.Fatalf("create subject: %v", err)
		}
	}
	service := app.NewScoreService(memory.NewScoreRepository(subjects), subjects, nil)

	for userID := int64(1); userID <= 3; userID++ {
		if _, err := service.StartSubject(ctx, userID, "Go"); err != nil {
			t.Fatalf("start: %v", err)
		}
	}

	counts, err := service.UserCounts(ctx, "")
	if err != nil {
		t.Fatalf("user counts: %v", err)
	}
	byName := make(map[string]int)
	for _, count := range counts {
		byName[count.SubjectName] = count.UserCount
	}
	if byName["Go"] != 3 {
		t.Fatalf("expected 3 Go users, got %d", byName["Go"])
	}
	if got, ok := byName["Rust"]; !ok || got != 0 {
		t.Fatalf("expected Rust reported with 0 users, got %v (present=%v)", got, ok)
	}

	one, err := service.UserCounts(ctx, "Go")
	if err != nil {
		t.Fatalf("filtered counts: %v", err)
	}
	if len(one) != 1 || one[0].UserCount != 3 {
		t.Fatalf("expected single Go row with 3 users, got %+v", one)
	}
}

func TestScoresForUserListsSubjectNames(t *testing.T) {
	ctx := context.Background()
	subjects := memory.NewSubjectRepository()
	for _, name := range []string{"Go", "Rust"} {
		if _, err := subjects.Create(ctx, name); err != nil {
			t.Fatalf("create subject: %v", err)
		}
	}
	service := app.NewScoreService(memory.NewScoreRepository(subjects), subjects, nil)

	for _, name := range []string{"Go", "Rust"} {
		if _, err := service.StartSubject(ctx, 1, name); err != nil {
			t.Fatalf("start %s: %v", name, err)
		}
	}

	scores, err := service.ScoresForUser(ctx, 1)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(scores))
	}
	for _, row := range scores {
		if row.SubjectName == "" {
			t.Fatalf("expected subject name resolved, got %+v", row)
		}
	}
}

func ExampleScoreService_RecordAnswer() {
	ctx := context.Background()
	subjects := memory.NewSubjectRepository()
	subjects.Create(ctx, "Go")
	service := app.NewScoreService(memory.NewScoreRepository(subjects), subjects, nil)

	service.StartSubject(ctx, 1, "Go")
	row, _ := service.RecordAnswer(ctx, 1, "Go", 10)
	fmt.Println(row.SubjectScore, row.ExercisesCompleted)
	// Output: 10 1
}
