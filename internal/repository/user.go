package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/trendora/recommendation-service/internal/domain"
)

// CreateUser inserts a signup row after checking that neither the username
// nor the email is already taken. The password is stored as a bcrypt hash.
func (r *Repository) CreateUser(ctx context.Context, username, email, password string) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM signups WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check existing user %q: %w", username, err)
	}
	if exists {
		return domain.ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO signups (username, email, password_hash) VALUES ($1, $2, $3)`,
		username, email, hash,
	)
	if err != nil {
		return fmt.Errorf("insert signup %q: %w", username, err)
	}
	return nil
}

// Authenticate compares the credential pair against the signups table and
// appends a signins row on success. A missing user or wrong password both
// come back as a plain false, not an error.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (bool, error) {
	var hash string
	err := r.pool.QueryRow(ctx,
		`SELECT password_hash FROM signups WHERE username = $1 ORDER BY id LIMIT 1`,
		username,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query signup %q: %w", username, err)
	}

	if !checkPassword(hash, password) {
		return false, nil
	}

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO signins (username) VALUES ($1)`, username,
	); err != nil {
		return false, fmt.Errorf("record signin %q: %w", username, err)
	}
	return true, nil
}

// GetUserByUsername fetches one signup row.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM signups WHERE username = $1 ORDER BY id LIMIT 1`,
		username,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query signup %q: %w", username, err)
	}
	return user, nil
}

// CountUsers returns the number of signup rows; used by the boot-time seed
// check.
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM signups`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count signups: %w", err)
	}
	return total, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
