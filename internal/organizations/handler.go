package organizations

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cyberxltr/admin-platform/internal/models"
	"github.com/cyberxltr/admin-platform/pkg/database"
	"github.com/cyberxltr/admin-platform/pkg/response"
)

// Store is the persistence surface the handler needs.
type Store interface {
	List(ctx context.Context, p ListParams) ([]models.Organization, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	Create(ctx context.Context, o *models.Organization) (*models.Organization, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Organization, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// CreateRequest is the body for POST /api/v1/organizations.
type CreateRequest struct {
	Name             string  `json:"name" binding:"required"`
	URL              string  `json:"url" binding:"required"`
	SubscriptionTier string  `json:"subscription_tier"`
	MaxStorageGB     int     `json:"max_storage_gb"`
	BillingEmail     *string `json:"billing_email"`
	SupportEmail     *string `json:"support_email"`
	Phone            *string `json:"phone"`
	CompanyAddress   *string `json:"company_address"`
	PrimaryColor     string  `json:"primary_color"`
}

// Handler handles organization HTTP endpoints.
type Handler struct {
	store Store
}

// NewHandler creates an organizations handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List handles GET /api/v1/organizations.
func (h *Handler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 1000 {
		limit = 50
	}
	p := ListParams{
		Skip:   skip,
		Limit:  limit,
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	list, total, err := h.store.List(c.Request.Context(), p)
	if err != nil {
		response.Internal(c, "failed to list organizations")
		return
	}
	if list == nil {
		list = []models.Organization{}
	}
	response.OK(c, gin.H{"organizations": list, "total": total, "skip": skip, "limit": limit})
}

// GetByID handles GET /api/v1/organizations/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	org, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organization not found")
			return
		}
		response.Internal(c, "failed to get organization")
		return
	}
	response.OK(c, org)
}

// Create handles POST /api/v1/organizations.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and url are required")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.URL = strings.TrimSpace(req.URL)
	if req.Name == "" || req.URL == "" {
		response.BadRequest(c, "name and url are required")
		return
	}
	if req.SubscriptionTier == "" {
		req.SubscriptionTier = "starter"
	}
	if req.MaxStorageGB <= 0 {
		req.MaxStorageGB = 5
	}
	if req.PrimaryColor == "" {
		req.PrimaryColor = "#3B82F6"
	}

	empty := ""
	org := &models.Organization{
		Name:                req.Name,
		URL:                 req.URL,
		SubscriptionTier:    req.SubscriptionTier,
		MaxStorageGB:        req.MaxStorageGB,
		BillingEmail:        req.BillingEmail,
		SupportEmail:        req.SupportEmail,
		Phone:               req.Phone,
		CompanyAddress:      req.CompanyAddress,
		PrimaryColor:        req.PrimaryColor,
		Environment:         "production",
		Description:         &empty,
		MaxUsers:            10,
		MaxMonthlyProspects: 1000,
		MaxMonthlyEmails:    5000,
		IsActive:            true,
		Features:            models.DefaultFeatures(),
		Settings:            models.DefaultSettings(),
		SecuritySettings:    models.DefaultSecuritySettings(),
	}
	created, err := h.store.Create(c.Request.Context(), org)
	if err != nil {
		if database.IsUniqueViolation(err) {
			response.Conflict(c, "organization url already exists")
			return
		}
		response.Internal(c, "failed to create organization")
		return
	}
	response.OK(c, created)
}

// Update handles PUT /api/v1/organizations/:id. Nil body fields are left
// unchanged (partial merge).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	var p UpdateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	org, err := h.store.Update(c.Request.Context(), id, p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organization not found")
			return
		}
		if database.IsUniqueViolation(err) {
			response.Conflict(c, "organization url already exists")
			return
		}
		response.Internal(c, "failed to update organization")
		return
	}
	response.OK(c, org)
}

// Deactivate handles DELETE /api/v1/organizations/:id. The row is retained;
// only the active flag flips.
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	if _, err := h.store.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organization not found")
			return
		}
		response.Internal(c, "failed to deactivate organization")
		return
	}
	if err := h.store.SetActive(c.Request.Context(), id, false); err != nil {
		response.Internal(c, "failed to deactivate organization")
		return
	}
	response.OKMessage(c, "organization deactivated")
}

// Reactivate handles POST /api/v1/organizations/:id/reactivate.
func (h *Handler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	org, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "organization not found")
			return
		}
		response.Internal(c, "failed to reactivate organization")
		return
	}
	if org.IsActive {
		response.BadRequest(c, "organization is already active")
		return
	}
	if err := h.store.SetActive(c.Request.Context(), id, true); err != nil {
		response.Internal(c, "failed to reactivate organization")
		return
	}
	response.OKMessage(c, "organization reactivated")
}
