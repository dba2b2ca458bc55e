package memory

import (
	"context"
	"sync"
	"time"

	"quizdeck-service/internal/domain"
)

// UserRepository is an in-memory implementation of app.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
	nextID  int64
	clock   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]domain.User),
		nextID:  1,
		clock:   time.Now,
	}
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) Create(_ context.Context, name, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return domain.User{}, domain.ErrUserExists
	}
	user := domain.User{
		ID:               r.nextID,
		Name:             name,
		Email:            email,
		RegistrationDate: r.clock(),
	}
	r.nextID++
	r.byEmail[email] = user
	return user, nil
}

func (r *UserRepository) UpdateName(_ context.Context, email, name string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	user.Name = name
	r.byEmail[email] = user
	return user, nil
}

func (r *UserRepository) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, email)
	return nil
}
