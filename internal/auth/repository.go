package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyberxltr/admin-platform/internal/models"
)

const userColumns = `id, email, encrypted_password, first_name, last_name, full_name,
	phone, job_title, department, global_role, is_active, email_verified, created_at, updated_at`

// Repository handles user lookups for authentication.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.FullName,
		&u.Phone, &u.JobTitle, &u.Department, &u.GlobalRole, &u.IsActive, &u.EmailVerified,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetActiveByEmail returns an active user by email, or an error when no
// active account matches.
func (r *Repository) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = TRUE`
	return scanUser(r.pool.QueryRow(ctx, q, email))
}

// GetActiveByID returns an active user by ID. Used by the admin gate to
// confirm the token subject still exists and has not been deactivated.
func (r *Repository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = TRUE`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}
