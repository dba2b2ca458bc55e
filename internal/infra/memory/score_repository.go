package memory

import (
	"context"
	"sort"
	"sync"

	"quizdeck-service/internal/domain"
)

type scoreKey struct {
	userID    int64
	subjectID int64
}

// ScoreRepository is an in-memory implementation of app.ScoreRepository.
// All read-modify-write operations run under the mutex, mirroring the
// single-statement atomicity of the Postgres implementation.
type ScoreRepository struct {
	subjects *SubjectRepository
	mu       sync.RWMutex
	rows     map[scoreKey]domain.ScoreRow
	nextID   int64
}

// NewScoreRepository needs the subject repository to resolve subject names
// the way the SQL implementation joins language_subjects.
func NewScoreRepository(subjects *SubjectRepository) *ScoreRepository {
	return &ScoreRepository{
		subjects: subjects,
		rows:     make(map[scoreKey]domain.ScoreRow),
		nextID:   1,
	}
}

func (r *ScoreRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserSubjectScore, error) {
	r.mu.RLock()
	rows := make([]domain.ScoreRow, 0)
	for key, row := range r.rows {
		if key.userID == userID {
			rows = append(rows, row)
		}
	}
	r.mu.RUnlock()

	scores := make([]domain.UserSubjectScore, 0, len(rows))
	for _, row := range rows {
		subject, err := r.subjects.GetByID(ctx, row.SubjectID)
		if err != nil {
			return nil, err
		}
		scores = append(scores, domain.UserSubjectScore{
			UserID:             row.UserID,
			SubjectID:          row.SubjectID,
			SubjectName:        subject.Name,
			SubjectScore:       row.SubjectScore,
			ExercisesCompleted: row.ExercisesCompleted,
		})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].SubjectID < scores[j].SubjectID })
	return scores, nil
}

func (r *ScoreRepository) Get(_ context.Context, userID, subjectID int64) (domain.ScoreRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[scoreKey{userID, subjectID}]
	if !ok {
		return domain.ScoreRow{}, domain.ErrScoreNotFound
	}
	return row, nil
}

func (r *ScoreRepository) Create(_ context.Context, userID, subjectID int64, score, exercises int) (domain.ScoreRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scoreKey{userID, subjectID}
	if _, ok := r.rows[key]; ok {
		return domain.ScoreRow{}, domain.ErrScoreExists
	}
	row := domain.ScoreRow{
		ScoreID:            r.nextID,
		UserID:             userID,
		SubjectID:          subjectID,
		SubjectScore:       score,
		ExercisesCompleted: exercises,
	}
	r.nextID++
	r.rows[key] = row
	return row, nil
}

func (r *ScoreRepository) Set(_ context.Context, userID, subjectID int64, score, exercises int) (domain.ScoreRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scoreKey{userID, subjectID}
	row, ok := r.rows[key]
	if !ok {
		return domain.ScoreRow{}, domain.ErrScoreNotFound
	}
	row.SubjectScore = score
	row.ExercisesCompleted = exercises
	r.rows[key] = row
	return row, nil
}

func (r *ScoreRepository) AddDelta(_ context.Context, userID, subjectID int64, delta int) (domain.ScoreRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scoreKey{userID, subjectID}
	row, ok := r.rows[key]
	if !ok {
		return domain.ScoreRow{}, domain.ErrScoreNotFound
	}
	row.SubjectScore += delta
	row.ExercisesCompleted++
	r.rows[key] = row
	return row, nil
}

func (r *ScoreRepository) Reset(_ context.Context, userID, subjectID int64) (domain.ScoreRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scoreKey{userID, subjectID}
	row, ok := r.rows[key]
	if !ok {
		return domain.ScoreRow{}, domain.ErrScoreNotFound
	}
	row.SubjectScore = 0
	r.rows[key] = row
	return row, nil
}

func (r *ScoreRepository) Delete(_ context.Context, userID, subjectID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scoreKey{userID, subjectID}
	if _, ok := r.rows[key]; !ok {
		return domain.ErrScoreNotFound
	}
	delete(r.rows, key)
	return nil
}

func (r *ScoreRepository) TopBySubject(_ context.Context, subjectID int64, limit int) ([]domain.LeaderboardEntry, error) {
	r.mu.RLock()
	entries := make([]domain.LeaderboardEntry, 0)
	for key, row := range r.rows {
		if key.subjectID != subjectID {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			UserID:             row.UserID,
			SubjectScore:       row.SubjectScore,
			ExercisesCompleted: row.ExercisesCompleted,
		})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SubjectScore != entries[j].SubjectScore {
			return entries[i].SubjectScore > entries[j].SubjectScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *ScoreRepository) CountUsersBySubject(ctx context.Context, subjectName string) ([]domain.SubjectUserCount, error) {
	subjects, err := r.subjects.List(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	perSubject := make(map[int64]int)
	for key := range r.rows {
		perSubject[key.subjectID]++
	}
	r.mu.RUnlock()

	counts := make([]domain.SubjectUserCount, 0, len(subjects))
	for _, subject := range subjects {
		if subjectName != "" && subject.Name != subjectName {
			continue
		}
		counts = append(counts, domain.SubjectUserCount{
			SubjectName: subject.Name,
			UserCount:   perSubject[subject.ID],
		})
	}
	return counts, nil
}
