package memory

import (
	"context"
	"sort"
	"sync"

	"quizdeck-service/internal/domain"
)

// SubjectRepository is an in-memory implementation of app.SubjectRepository.
type SubjectRepository struct {
	mu       sync.RWMutex
	byName   map[string]domain.Subject
	byID     map[int64]domain.Subject
	nextID   int64
}

func NewSubjectRepository() *SubjectRepository {
	return &SubjectRepository{
		byName: make(map[string]domain.Subject),
		byID:   make(map[int64]domain.Subject),
		nextID: 1,
	}
}

func (r *SubjectRepository) List(_ context.Context) ([]domain.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subjects := make([]domain.Subject, 0, len(r.byName))
	for _, subject := range r.byName {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects, nil
}

func (r *SubjectRepository) Create(_ context.Context, name string) (domain.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; ok {
		return domain.Subject{}, domain.ErrSubjectExists
	}
	subject := domain.Subject{ID: r.nextID, Name: name}
	r.nextID++
	r.byName[name] = subject
	r.byID[subject.ID] = subject
	return subject, nil
}

func (r *SubjectRepository) GetByName(_ context.Context, name string) (domain.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subject, ok := r.byName[name]
	if !ok {
		return domain.Subject{}, domain.ErrSubjectNotFound
	}
	return subject, nil
}

func (r *SubjectRepository) GetByID(_ context.Context, id int64) (domain.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subject, ok := r.byID[id]
	if !ok {
		return domain.Subject{}, domain.ErrSubjectNotFound
	}
	return subject, nil
}
