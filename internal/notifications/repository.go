package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyberxltr/admin-platform/internal/models"
)

const notificationColumns = `id, title, message, type, target, target_spec, priority,
	is_active, created_by, expires_at, created_at, updated_at`

// ListParams filter and paginate notification listings.
type ListParams struct {
	Skip     int
	Limit    int
	IsActive *bool
	Type     string
}

// UpdateParams carry the partial field merge for a notification update.
// Nil fields are left unchanged.
type UpdateParams struct {
	Title      *string         `json:"title"`
	Message    *string         `json:"message"`
	Type       *string         `json:"type"`
	Target     *string         `json:"target"`
	TargetSpec *map[string]any `json:"target_spec"`
	Priority   *int            `json:"priority"`
	ExpiresAt  *time.Time      `json:"expires_at"`
	IsActive   *bool           `json:"is_active"`
}

// Repository handles notification persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notifications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanNotification(row interface{ Scan(dest ...any) error }) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Target, &n.TargetSpec,
		&n.Priority, &n.IsActive, &n.CreatedBy, &n.ExpiresAt, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns notifications newest first plus the total match count.
func (r *Repository) List(ctx context.Context, p ListParams) ([]models.Notification, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if p.IsActive != nil {
		args = append(args, *p.IsActive)
		where += fmt.Sprintf(` AND is_active = $%d`, len(args))
	}
	if p.Type != "" {
		args = append(args, p.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, p.Limit, p.Skip)
	q := `SELECT ` + notificationColumns + ` FROM notifications` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *n)
	}
	return list, total, rows.Err()
}

// GetByID returns a notification by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	q := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	return scanNotification(r.pool.QueryRow(ctx, q, id))
}

// Create inserts a new notification.
func (r *Repository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	q := `INSERT INTO notifications (title, message, type, target, target_spec, priority, is_active, created_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + notificationColumns
	return scanNotification(r.pool.QueryRow(ctx, q,
		n.Title, n.Message, n.Type, n.Target, n.TargetSpec, n.Priority, n.IsActive, n.CreatedBy, n.ExpiresAt))
}

// Update applies a partial field merge; nil params keep the stored value.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Notification, error) {
	var spec map[string]any
	if p.TargetSpec != nil {
		spec = *p.TargetSpec
	}
	q := `UPDATE notifications SET
		title = COALESCE($1, title),
		message = COALESCE($2, message),
		type = COALESCE($3, type),
		target = COALESCE($4, target),
		target_spec = CASE WHEN $5::jsonb IS NULL THEN target_spec ELSE $5::jsonb END,
		priority = COALESCE($6, priority),
		expires_at = COALESCE($7, expires_at),
		is_active = COALESCE($8, is_active),
		updated_at = NOW()
		WHERE id = $9
		RETURNING ` + notificationColumns
	var specArg any
	if p.TargetSpec != nil {
		specArg = spec
	}
	return scanNotification(r.pool.QueryRow(ctx, q,
		p.Title, p.Message, p.Type, p.Target, specArg, p.Priority, p.ExpiresAt, p.IsActive, id))
}

// SetActive flips the soft-delete flag.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	return err
}

// Stats aggregates dashboard counts: total, active, and created within the
// last seven days.
func (r *Repository) Stats(ctx context.Context) (*models.NotificationStats, error) {
	var s models.NotificationStats
	err := r.pool.QueryRow(ctx, `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE is_active),
		COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		FROM notifications`).Scan(&s.Total, &s.Active, &s.Recent)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
