package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyberxltr/admin-platform/internal/models"
)

const userColumns = `id, email, encrypted_password, first_name, last_name, full_name,
	phone, job_title, department, global_role, is_active, email_verified, created_at, updated_at`

const userColumnsAliased = `u.id, u.email, u.encrypted_password, u.first_name, u.last_name, u.full_name,
	u.phone, u.job_title, u.department, u.global_role, u.is_active, u.email_verified, u.created_at, u.updated_at`

// ListParams filter and paginate user listings.
type ListParams struct {
	Skip           int
	Limit          int
	Search         string // matches email, first or last name, case-insensitive
	OrganizationID *uuid.UUID
}

// CreateParams carry a validated new-user insert. PasswordHash is the
// bcrypt hash; membership links the user into an organization.
type CreateParams struct {
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       *string
	Phone          *string
	JobTitle       *string
	Department     *string
	OrganizationID uuid.UUID
	Role           string
}

// UpdateParams carry the partial field merge for a user update. Nil fields
// are left unchanged.
type UpdateParams struct {
	Email      *string `json:"email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	JobTitle   *string `json:"job_title"`
	Department *string `json:"department"`
	IsActive   *bool   `json:"is_active"`
}

// Repository handles user and membership persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a users repository.
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

// List returns users matching the filter plus the total match count.
func (r *Repository) List(ctx context.Context, p ListParams) ([]models.User, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (u.email ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d)`, n, n, n)
	}
	if p.OrganizationID != nil {
		args = append(args, *p.OrganizationID)
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM user_organizations uo
			WHERE uo.user_id = u.id AND uo.organization_id = $%d)`, len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, p.Limit, p.Skip)
	q := `SELECT ` + userColumnsAliased + ` FROM users u` + where +
		fmt.Sprintf(` ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *u)
	}
	return list, total, rows.Err()
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

// OrganizationIsActive reports whether the organization exists and is active.
func (r *Repository) OrganizationIsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var active bool
	err := r.pool.QueryRow(ctx,
		`SELECT is_active FROM organizations WHERE id = $1`, id).Scan(&active)
	if err != nil {
		return false, err
	}
	return active, nil
}

// Create inserts the user and its organization membership in one
// transaction. Duplicate emails surface as a unique violation.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*models.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	q := `INSERT INTO users (email, encrypted_password, first_name, last_name, phone, job_title,
		department, global_role, is_active, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, TRUE)
		RETURNING ` + userColumns
	u, err := scanUser(tx.QueryRow(ctx, q, p.Email, p.PasswordHash, p.FirstName, p.LastName,
		p.Phone, p.JobTitle, p.Department, models.RoleSalesRep))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `INSERT INTO user_organizations (user_id, organization_id, role, is_active, is_primary)
		VALUES ($1, $2, $3, TRUE, FALSE)`, u.ID, p.OrganizationID, p.Role)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies a partial field merge; nil params keep the stored value.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.User, error) {
	q := `UPDATE users SET
		email = COALESCE($1, email),
		first_name = COALESCE($2, first_name),
		last_name = COALESCE($3, last_name),
		phone = COALESCE($4, phone),
		job_title = COALESCE($5, job_title),
		department = COALESCE($6, department),
		is_active = COALESCE($7, is_active),
		updated_at = NOW()
		WHERE id = $8
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q,
		p.Email, p.FirstName, p.LastName, p.Phone, p.JobTitle, p.Department, p.IsActive, id))
}

// SetActive flips the soft-delete flag. Rows are never removed.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	return err
}
