package postgres

import (
	"context"
	"fmt"

	"quizdeck-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionRepository stores quiz questions in the quiz_questions table.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func (r *QuestionRepository) ListBySubjectAndLevels(ctx context.Context, subjectName string, levels []int, limit int) ([]domain.Question, error) {
	wanted := make([]int64, len(levels))
	for i, level := range levels {
		wanted[i] = int64(level)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT question_id, subject_id, subject_name, question,
		        option_a, option_b, option_c, option_d,
		        correct_answer, question_level
		 FROM quiz_questions
		 WHERE subject_name = $1 AND question_level = ANY($2)
		 ORDER BY random() LIMIT $3`,
		subjectName, wanted, limit)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0, limit)
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.SubjectID, &q.SubjectName, &q.Question,
			&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectAnswer, &q.Level); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuestionRepository) Create(ctx context.Context, q domain.Question) (domain.Question, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO quiz_questions
		   (subject_id, subject_name, question, option_a, option_b, option_c, option_d,
		    correct_answer, question_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING question_id`,
		q.SubjectID, q.SubjectName, q.Question, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
		q.CorrectAnswer, q.Level).
		Scan(&q.ID)
	if err != nil {
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

func (r *QuestionRepository) CountBySubject(ctx context.Context, subjectName string) ([]domain.SubjectQuestionCount, error) {
	query := `SELECT subject_name, COUNT(question_id)
	          FROM quiz_questions GROUP BY subject_name ORDER BY subject_name`
	args := []interface{}{}
	if subjectName != "" {
		query = `SELECT subject_name, COUNT(question_id)
		         FROM quiz_questions WHERE subject_name = $1 GROUP BY subject_name`
		args = append(args, subjectName)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.SubjectQuestionCount, 0)
	for rows.Next() {
		var count domain.SubjectQuestionCount
		if err := rows.Scan(&count.SubjectName, &count.TotalQuestions); err != nil {
			return nil, fmt.Errorf("scan question count: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// A subject with zero questions has no grouped row; report the zero explicitly.
	if subjectName != "" && len(counts) == 0 {
		counts = append(counts, domain.SubjectQuestionCount{SubjectName: subjectName})
	}
	return counts, nil
}
