package postgres

import (
	"context"
	"errors"
	"fmt"

	"quizdeck-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ScoreRepository stores score rows in the user_scores table. Every mutation
// is a single statement, so concurrent writers to the same (user, subject)
// pair cannot lose updates.
type ScoreRepository struct {
	pool *pgxpool.Pool
}

func NewScoreRepository(pool *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

func (r *ScoreRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserSubjectScore, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT us.user_id, us.subject_id, ls.subject_name,
		        us.subject_score, us.exercises_completed
		 FROM user_scores us
		 INNER JOIN language_subjects ls ON ls.subject_id = us.subject_id
		 WHERE us.user_id = $1
		 ORDER BY ls.subject_name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	scores := make([]domain.UserSubjectScore, 0)
	for rows.Next() {
		var score domain.UserSubjectScore
		if err := rows.Scan(&score.UserID, &score.SubjectID, &score.SubjectName,
			&score.SubjectScore, &score.ExercisesCompleted); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (r *ScoreRepository) Get(ctx context.Context, userID, subjectID int64) (domain.ScoreRow, error) {
	var row domain.ScoreRow
	err := r.pool.QueryRow(ctx,
		`SELECT score_id, user_id, subject_id, subject_score, exercises_completed
		 FROM user_scores WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID).
		Scan(&row.ScoreID, &row.UserID, &row.SubjectID, &row.SubjectScore, &row.ExercisesCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ScoreRow{}, domain.ErrScoreNotFound
	}
	if err != nil {
		return domain.ScoreRow{}, fmt.Errorf("get score: %w", err)
	}
	return row, nil
}

func (r *ScoreRepository) Create(ctx context.Context, userID, subjectID int64, score, exercises int) (domain.ScoreRow, error) {
	var row domain.ScoreRow
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_scores (user_id, subject_id, subject_score, exercises_completed)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, subject_id) DO NOTHING
		 RETURNING score_id, user_id, subject_id, subject_score, exercises_completed`,
		userID, subjectID, score, exercises).
		Scan(&row.ScoreID, &row.UserID, &row.SubjectID, &row.SubjectScore, &row.ExercisesCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ScoreRow{}, domain.ErrScoreExists
	}
	if err != nil {
		return domain.ScoreRow{}, fmt.Errorf("create score: %w", err)
	}
	return row, nil
}

func (r *ScoreRepository) Set(ctx context.Context, userID, subjectID int64, score, exercises int) (domain.ScoreRow, error) {
	var row domain.ScoreRow
	err := r.pool.QueryRow(ctx,
		`UPDATE user_scores
		 SET subject_score = $3, exercises_completed = $4
		 WHERE user_id = $1 AND subject_id = $2
		 RETURNING score_id, user_id, subject_id, subject_score, exercises_completed`,
		userID, subjectID, score, exercises).
		Scan(&row.ScoreID, &row.UserID, &row.SubjectID, &row.SubjectScore, &row.ExercisesCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ScoreRow{}, domain.ErrScoreNotFound
	}
	if err != nil {
		return domain.ScoreRow{}, fmt.Errorf("set score: %w", err)
	}
	return row, nil
}

func (r *ScoreRepository) AddDelta(ctx context.Context, userID, subjectID int64, delta int) (domain.ScoreRow, error) {
	var row domain.ScoreRow
	err := r.pool.QueryRow(ctx,
		`UPDATE user_scores
		 SET subject_score = subject_score + $3,
		     exercises_completed = exercises_completed + 1
		 WHERE user_id = $1 AND subject_id = $2
		 RETURNING score_id, user_id, subject_id, subject_score, exercises_completed`,
		userID, subjectID, delta).
		Scan(&row.ScoreID, &row.UserID, &row.SubjectID, &row.SubjectScore, &row.ExercisesCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ScoreRow{}, domain.ErrScoreNotFound
	}
	if err != nil {
		return domain.ScoreRow{}, fmt.Errorf("add score delta: %w", err)
	}
	return row, nil
}

func (r *ScoreRepository) Reset(ctx context.Context, userID, subjectID int64) (domain.ScoreRow, error) {
	var row domain.ScoreRow
	err := r.pool.QueryRow(ctx,
		`UPDATE user_scores SET subject_score = 0
		 WHERE user_id = $1 AND subject_id = $2
		 RETURNING score_id, user_id, subject_id, subject_score, exercises_completed`,
		userID, subjectID).
		Scan(&row.ScoreID, &row.UserID, &row.SubjectID, &row.SubjectScore, &row.ExercisesCompleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ScoreRow{}, domain.ErrScoreNotFound
	}
	if err != nil {
		return domain.ScoreRow{}, fmt.Errorf("reset score: %w", err)
	}
	return row, nil
}

func (r *ScoreRepository) Delete(ctx context.Context, userID, subjectID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_scores WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID)
	if err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScoreNotFound
	}
	return nil
}

func (r *ScoreRepository) TopBySubject(ctx context.Context, subjectID int64, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, subject_score, exercises_completed
		 FROM user_scores
		 WHERE subject_id = $1
		 ORDER BY subject_score DESC, user_id ASC
		 LIMIT $2`, subjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.SubjectScore, &entry.ExercisesCompleted); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *ScoreRepository) CountUsersBySubject(ctx context.Context, subjectName string) ([]domain.SubjectUserCount, error) {
	query := `SELECT ls.subject_name, COUNT(us.user_id)
	          FROM language_subjects ls
	          LEFT JOIN user_scores us ON ls.subject_id = us.subject_id
	          GROUP BY ls.subject_name ORDER BY ls.subject_name`
	args := []interface{}{}
	if subjectName != "" {
		query = `SELECT ls.subject_name, COUNT(us.user_id)
		         FROM language_subjects ls
		         LEFT JOIN user_scores us ON ls.subject_id = us.subject_id
		         WHERE ls.subject_name = $1
		         GROUP BY ls.subject_name`
		args = append(args, subjectName)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.SubjectUserCount, 0)
	for rows.Next() {
		var count domain.SubjectUserCount
		if err := rows.Scan(&count.SubjectName, &count.UserCount); err != nil {
			return nil, fmt.Errorf("scan user count: %w", err)
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}
