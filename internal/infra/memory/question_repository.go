package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"quizdeck-service/internal/domain"
)

// QuestionRepository is an in-memory implementation of app.QuestionRepository.
type QuestionRepository struct {
	mu        sync.RWMutex
	questions []domain.Question
	nextID    int64
	rnd       *rand.Rand
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{
		nextID: 1,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) ListBySubjectAndLevels(_ context.Context, subjectName string, levels []int, limit int) ([]domain.Question, error) {
	wanted := make(map[int]struct{}, len(levels))
	for _, level := range levels {
		wanted[level] = struct{}{}
	}

	// Full lock: rnd is not safe for concurrent use.
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]domain.Question, 0, limit)
	for _, q := range r.questions {
		if q.SubjectName != subjectName {
			continue
		}
		if _, ok := wanted[q.Level]; ok {
			matched = append(matched, q)
		}
	}

	r.rnd.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *QuestionRepository) Create(_ context.Context, q domain.Question) (domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q.ID = r.nextID
	r.nextID++
	r.questions = append(r.questions, q)
	return q, nil
}

func (r *QuestionRepository) CountBySubject(_ context.Context, subjectName string) ([]domain.SubjectQuestionCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[string]int)
	for _, q := range r.questions {
		totals[q.SubjectName]++
	}

	if subjectName != "" {
		return []domain.SubjectQuestionCount{
			{SubjectName: subjectName, TotalQuestions: totals[subjectName]},
		}, nil
	}

	counts := make([]domain.SubjectQuestionCount, 0, len(totals))
	for name, total := range totals {
		counts = append(counts, domain.SubjectQuestionCount{SubjectName: name, TotalQuestions: total})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].SubjectName < counts[j].SubjectName })
	return counts, nil
}
