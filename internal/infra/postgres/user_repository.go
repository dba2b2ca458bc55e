package postgres

import (
	"context"
	"errors"
	"fmt"

	"quizdeck-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// UserRepository stores accounts in the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, user_name, user_email, registration_date
		 FROM users WHERE user_email = $1`, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.RegistrationDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, name, email string) (domain.User, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (user_name, user_email, registration_date)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_email) DO NOTHING
		 RETURNING user_id, user_name, user_email, registration_date`,
		name, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.RegistrationDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserExists
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateName(ctx context.Context, email, name string) (domain.User, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET user_name = $2 WHERE user_email = $1
		 RETURNING user_id, user_name, user_email, registration_date`,
		email, name).
		Scan(&user.ID, &user.Name, &user.Email, &user.RegistrationDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("update user name: %w", err)
	}
	return user, nil
}

func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
