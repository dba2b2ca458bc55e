package postgres

import (
	"context"
	"errors"
	"fmt"

	"quizdeck-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SubjectRepository stores quiz categories in the language_subjects table.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) List(ctx context.Context) ([]domain.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject_id, subject_name FROM language_subjects ORDER BY subject_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	subjects := make([]domain.Subject, 0)
	for rows.Next() {
		var subject domain.Subject
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) Create(ctx context.Context, name string) (domain.Subject, error) {
	var subject domain.Subject
	err := r.pool.QueryRow(ctx,
		`INSERT INTO language_subjects (subject_name) VALUES ($1)
		 ON CONFLICT (subject_name) DO NOTHING
		 RETURNING subject_id, subject_name`, name).
		Scan(&subject.ID, &subject.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subject{}, domain.ErrSubjectExists
	}
	if err != nil {
		return domain.Subject{}, fmt.Errorf("create subject: %w", err)
	}
	return subject, nil
}

func (r *SubjectRepository) GetByName(ctx context.Context, name string) (domain.Subject, error) {
	var subject domain.Subject
	err := r.pool.QueryRow(ctx,
		`SELECT subject_id, subject_name FROM language_subjects WHERE subject_name = $1`, name).
		Scan(&subject.ID, &subject.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subject{}, domain.ErrSubjectNotFound
	}
	if err != nil {
		return domain.Subject{}, fmt.Errorf("get subject by name: %w", err)
	}
	return subject, nil
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (domain.Subject, error) {
	var subject domain.Subject
	err := r.pool.QueryRow(ctx,
		`SELECT subject_id, subject_name FROM language_subjects WHERE subject_id = $1`, id).
		Scan(&subject.ID, &subject.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subject{}, domain.ErrSubjectNotFound
	}
	if err != nil {
		return domain.Subject{}, fmt.Errorf("get subject by id: %w", err)
	}
	return subject, nil
}
