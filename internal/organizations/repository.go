package organizations

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyberxltr/admin-platform/internal/models"
)

const orgColumns = `id, name, url, subscription_tier, max_storage_gb, billing_email, support_email,
	phone, company_address, primary_color, environment, description, max_users,
	max_monthly_prospects, max_monthly_emails, is_active, features, settings, security_settings,
	created_at, updated_at`

// ListParams filter and paginate organization listings.
type ListParams struct {
	Skip   int
	Limit  int
	Search string // matches name or url, case-insensitive
	Status string // "active", "inactive", or "" for both
}

// UpdateParams carry the partial field merge for an organization update.
// Nil fields are left unchanged.
type UpdateParams struct {
	Name             *string `json:"name"`
	URL              *string `json:"url"`
	SubscriptionTier *string `json:"subscription_tier"`
	MaxStorageGB     *int    `json:"max_storage_gb"`
	BillingEmail     *string `json:"billing_email"`
	SupportEmail     *string `json:"support_email"`
	Phone            *string `json:"phone"`
	CompanyAddress   *string `json:"company_address"`
	PrimaryColor     *string `json:"primary_color"`
	IsActive         *bool   `json:"is_active"`
}

// Repository handles organization persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an organizations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanOrg(row interface{ Scan(dest ...any) error }) (*models.Organization, error) {
	var o models.Organization
	err := row.Scan(&o.ID, &o.Name, &o.URL, &o.SubscriptionTier, &o.MaxStorageGB,
		&o.BillingEmail, &o.SupportEmail, &o.Phone, &o.CompanyAddress, &o.PrimaryColor,
		&o.Environment, &o.Description, &o.MaxUsers, &o.MaxMonthlyProspects, &o.MaxMonthlyEmails,
		&o.IsActive, &o.Features, &o.Settings, &o.SecuritySettings, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns organizations matching the filter plus the total match count.
// Active and inactive rows are both returned unless Status narrows them.
func (r *Repository) List(ctx context.Context, p ListParams) ([]models.Organization, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		where += fmt.Sprintf(` AND (name ILIKE $%d OR url ILIKE $%d)`, len(args), len(args))
	}
	switch p.Status {
	case "active":
		where += ` AND is_active = TRUE`
	case "inactive":
		where += ` AND is_active = FALSE`
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM organizations`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, p.Limit, p.Skip)
	q := `SELECT ` + orgColumns + ` FROM organizations` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []models.Organization
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *o)
	}
	return list, total, rows.Err()
}

// GetByID returns an organization by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	q := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	return scanOrg(r.pool.QueryRow(ctx, q, id))
}

// Create inserts a new organization. A duplicate url surfaces as a unique
// violation from the organizations_url_key constraint.
func (r *Repository) Create(ctx context.Context, o *models.Organization) (*models.Organization, error) {
	q := `INSERT INTO organizations (name, url, subscription_tier, max_storage_gb, billing_email,
		support_email, phone, company_address, primary_color, environment, description,
		max_users, max_monthly_prospects, max_monthly_emails, is_active, features, settings, security_settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + orgColumns
	return scanOrg(r.pool.QueryRow(ctx, q,
		o.Name, o.URL, o.SubscriptionTier, o.MaxStorageGB, o.BillingEmail,
		o.SupportEmail, o.Phone, o.CompanyAddress, o.PrimaryColor, o.Environment, o.Description,
		o.MaxUsers, o.MaxMonthlyProspects, o.MaxMonthlyEmails, o.IsActive,
		o.Features, o.Settings, o.SecuritySettings))
}

// Update applies a partial field merge; nil params keep the stored value.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Organization, error) {
	q := `UPDATE organizations SET
		name = COALESCE($1, name),
		url = COALESCE($2, url),
		subscription_tier = COALESCE($3, subscription_tier),
		max_storage_gb = COALESCE($4, max_storage_gb),
		billing_email = COALESCE($5, billing_email),
		support_email = COALESCE($6, support_email),
		phone = COALESCE($7, phone),
		company_address = COALESCE($8, company_address),
		primary_color = COALESCE($9, primary_color),
		is_active = COALESCE($10, is_active),
		updated_at = NOW()
		WHERE id = $11
		RETURNING ` + orgColumns
	return scanOrg(r.pool.QueryRow(ctx, q,
		p.Name, p.URL, p.SubscriptionTier, p.MaxStorageGB, p.BillingEmail,
		p.SupportEmail, p.Phone, p.CompanyAddress, p.PrimaryColor, p.IsActive, id))
}

// SetActive flips the soft-delete flag. Rows are never removed.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE organizations SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	return err
}
