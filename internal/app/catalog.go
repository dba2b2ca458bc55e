package app

import (
	"context"

	"quizdeck-service/internal/domain"
)

// QuestionSampleLimit caps how many questions a single quiz round receives.
const QuestionSampleLimit = 10

// SubjectRepository abstracts subject (quiz category) storage.
type SubjectRepository interface {
	List(ctx context.Context) ([]domain.Subject, error)
	Create(ctx context.Context, name string) (domain.Subject, error)
	GetByName(ctx context.Context, name string) (domain.Subject, error)
	GetByID(ctx context.Context, id int64) (domain.Subject, error)
}

// QuestionRepository abstracts quiz question storage.
type QuestionRepository interface {
	// ListBySubjectAndLevels returns up to limit questions for the subject,
	// randomly sampled from the given levels.
	ListBySubjectAndLevels(ctx context.Context, subjectName string, levels []int, limit int) ([]domain.Question, error)
	Create(ctx context.Context, q domain.Question) (domain.Question, error)
	// CountBySubject returns per-subject question totals; with a non-empty
	// subjectName only that subject's total.
	CountBySubject(ctx context.Context, subjectName string) ([]domain.SubjectQuestionCount, error)
}

// CatalogService contains the subject and question use cases.
type CatalogService struct {
	subjects  SubjectRepository
	questions QuestionRepository
}

func NewCatalogService(subjects SubjectRepository, questions QuestionRepository) *CatalogService {
	return &CatalogService{subjects: subjects, questions: questions}
}

// Subjects lists all quiz subjects alphabetically.
func (s *CatalogService) Subjects(ctx context.Context) ([]domain.Subject, error) {
	return s.subjects.List(ctx)
}

// AddSubject creates a subject and returns the refreshed full list, so the
// caller can render the catalog without a second round trip.
func (s *CatalogService) AddSubject(ctx context.Context, name string) ([]domain.Subject, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.subjects.Create(ctx, name); err != nil {
		return nil, err
	}
	return s.subjects.List(ctx)
}

// QuestionsForRound samples up to QuestionSampleLimit questions for a subject
// at the requested difficulty.
func (s *CatalogService) QuestionsForRound(ctx context.Context, subjectName, level string) ([]domain.Question, error) {
	levels, err := domain.LevelBuckets(level)
	if err != nil {
		return nil, err
	}
	if _, err := s.subjects.GetByName(ctx, subjectName); err != nil {
		return nil, err
	}
	return s.questions.ListBySubjectAndLevels(ctx, subjectName, levels, QuestionSampleLimit)
}

// AddQuestion resolves the subject by name and stores the question under it.
func (s *CatalogService) AddQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	if q.Question == "" || q.CorrectAnswer == "" || q.SubjectName == "" {
		return domain.Question{}, domain.ErrInvalidInput
	}
	if q.Level < 1 || q.Level > 5 {
		return domain.Question{}, domain.ErrInvalidLevel
	}
	subject, err := s.subjects.GetByName(ctx, q.SubjectName)
	if err != nil {
		return domain.Question{}, err
	}
	q.SubjectID = subject.ID
	return s.questions.Create(ctx, q)
}

// QuestionCounts reports per-subject question totals for the admin surface.
func (s *CatalogService) QuestionCounts(ctx context.Context, subjectName string) ([]domain.SubjectQuestionCount, error) {
	return s.questions.CountBySubject(ctx, subjectName)
}
