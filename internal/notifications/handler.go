package notifications

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cyberxltr/admin-platform/internal/middleware"
	"github.com/cyberxltr/admin-platform/internal/models"
	"github.com/cyberxltr/admin-platform/pkg/response"
)

// Store is the persistence surface the handler needs.
type Store interface {
	List(ctx context.Context, p ListParams) ([]models.Notification, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Notification, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Stats(ctx context.Context) (*models.NotificationStats, error)
}

// CreateRequest is the body for POST /api/v1/notifications.
type CreateRequest struct {
	Title     string     `json:"title" binding:"required"`
	Message   string     `json:"message" binding:"required"`
	Type      string     `json:"type"`
	Priority  int        `json:"priority"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Handler handles notification HTTP endpoints.
type Handler struct {
	store Store
}

// NewHandler creates a notifications handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List handles GET /api/v1/notifications.
func (h *Handler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 1000 {
		limit = 50
	}
	p := ListParams{Skip: skip, Limit: limit, Type: c.Query("type")}
	if v := c.Query("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "is_active must be true or false")
			return
		}
		p.IsActive = &active
	}

	list, total, err := h.store.List(c.Request.Context(), p)
	if err != nil {
		response.Internal(c, "failed to list notifications")
		return
	}
	if list == nil {
		list = []models.Notification{}
	}
	response.OK(c, gin.H{"notifications": list, "total": total, "skip": skip, "limit": limit})
}

// GetByID handles GET /api/v1/notifications/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}
	n, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "notification not found")
			return
		}
		response.Internal(c, "failed to get notification")
		return
	}
	response.OK(c, n)
}

// Create handles POST /api/v1/notifications. The broadcast targets all
// users; per-segment targeting is edited through update.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title and message are required")
		return
	}
	if req.Type == "" {
		req.Type = "info"
	}
	if !models.ValidNotificationType(req.Type) {
		response.BadRequest(c, "invalid notification type, must be one of: "+strings.Join(models.NotificationTypes, ", "))
		return
	}
	if req.Priority == 0 {
		req.Priority = 1
	}

	createdBy := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	n := &models.Notification{
		Title:      req.Title,
		Message:    req.Message,
		Type:       req.Type,
		Target:     "all_users",
		TargetSpec: map[string]any{},
		Priority:   req.Priority,
		IsActive:   true,
		CreatedBy:  &createdBy,
		ExpiresAt:  req.ExpiresAt,
	}
	created, err := h.store.Create(c.Request.Context(), n)
	if err != nil {
		response.Internal(c, "failed to create notification")
		return
	}
	response.OK(c, created)
}

// Update handles PUT /api/v1/notifications/:id. Nil body fields are left
// unchanged; reactivation goes through is_active here.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}
	var p UpdateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if p.Type != nil && !models.ValidNotificationType(*p.Type) {
		response.BadRequest(c, "invalid notification type, must be one of: "+strings.Join(models.NotificationTypes, ", "))
		return
	}
	n, err := h.store.Update(c.Request.Context(), id, p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "notification not found")
			return
		}
		response.Internal(c, "failed to update notification")
		return
	}
	response.OK(c, n)
}

// Deactivate handles DELETE /api/v1/notifications/:id. Soft delete only.
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}
	if _, err := h.store.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "notification not found")
			return
		}
		response.Internal(c, "failed to deactivate notification")
		return
	}
	if err := h.store.SetActive(c.Request.Context(), id, false); err != nil {
		response.Internal(c, "failed to deactivate notification")
		return
	}
	response.OKMessage(c, "notification deactivated")
}

// Stats handles GET /api/v1/notifications/stats/overview.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to fetch notification stats")
		return
	}
	response.OK(c, stats)
}
