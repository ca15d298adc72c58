package users

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/cyberxltr/admin-platform/internal/auth"
	"github.com/cyberxltr/admin-platform/internal/models"
	"github.com/cyberxltr/admin-platform/pkg/database"
	"github.com/cyberxltr/admin-platform/pkg/response"
	"github.com/cyberxltr/admin-platform/pkg/utils"
)

// Store is the persistence surface the handler needs.
type Store interface {
	List(ctx context.Context, p ListParams) ([]models.User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	OrganizationIsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, p CreateParams) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// CreateRequest is the body for POST /api/v1/users.
type CreateRequest struct {
	Email           string  `json:"email" binding:"required,email"`
	FirstName       string  `json:"first_name" binding:"required"`
	LastName        *string `json:"last_name"`
	Phone           *string `json:"phone"`
	JobTitle        *string `json:"job_title"`
	Department      *string `json:"department"`
	Password        string  `json:"password" binding:"required"`
	ConfirmPassword string  `json:"confirm_password" binding:"required"`
	OrganizationID  string  `json:"organization_id" binding:"required"`
	Role            string  `json:"role"`
}

// Handler handles user HTTP endpoints.
type Handler struct {
	store     Store
	allowList auth.AllowList
	logger    *zap.Logger
}

// NewHandler creates a users handler. Allow-listed administrator accounts
// are hidden from listings.
func NewHandler(store Store, allowList auth.AllowList, logger *zap.Logger) *Handler {
	return &Handler{store: store, allowList: allowList, logger: logger}
}

// List handles GET /api/v1/users. Administrator accounts are filtered out.
func (h *Handler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 1000 {
		limit = 50
	}
	p := ListParams{Skip: skip, Limit: limit, Search: c.Query("search")}
	if orgID := c.Query("organization_id"); orgID != "" {
		id, err := uuid.Parse(orgID)
		if err != nil {
			response.BadRequest(c, "invalid organization id")
			return
		}
		p.OrganizationID = &id
	}

	list, total, err := h.store.List(c.Request.Context(), p)
	if err != nil {
		response.Internal(c, "failed to list users")
		return
	}
	out := make([]models.UserPublic, 0, len(list))
	for i := range list {
		if h.allowList.Contains(list[i].Email) {
			continue
		}
		out = append(out, list[i].ToPublic())
	}
	response.OK(c, gin.H{"users": out, "total": total, "skip": skip, "limit": limit})
}

// GetByID handles GET /api/v1/users/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	user, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		response.Internal(c, "failed to get user")
		return
	}
	response.OK(c, user.ToPublic())
}

// Create handles POST /api/v1/users. The new user is linked into an
// existing active organization; no orphan accounts.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if len(req.Password) < utils.MinPasswordLength {
		response.BadRequest(c, "password must be at least 8 characters")
		return
	}
	if req.Password != req.ConfirmPassword {
		response.BadRequest(c, "passwords do not match")
		return
	}
	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}

	active, err := h.store.OrganizationIsActive(c.Request.Context(), orgID)
	if err != nil || !active {
		response.BadRequest(c, "organization not found or inactive")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleSalesRep
	}
	user, err := h.store.Create(c.Request.Context(), CreateParams{
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   hash,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       trimPtr(req.LastName),
		Phone:          req.Phone,
		JobTitle:       req.JobTitle,
		Department:     req.Department,
		OrganizationID: orgID,
		Role:           role,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			response.Conflict(c, "user with this email already exists")
			return
		}
		h.logger.Error("create user", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}
	response.OK(c, user.ToPublic())
}

// Update handles PUT /api/v1/users/:id. Nil body fields are left unchanged.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var p UpdateParams
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if p.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*p.Email))
		p.Email = &normalized
	}
	user, err := h.store.Update(c.Request.Context(), id, p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		if database.IsUniqueViolation(err) {
			response.Conflict(c, "user with this email already exists")
			return
		}
		response.Internal(c, "failed to update user")
		return
	}
	response.OK(c, user.ToPublic())
}

// Deactivate handles DELETE /api/v1/users/:id. Soft delete only.
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if _, err := h.store.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		response.Internal(c, "failed to deactivate user")
		return
	}
	if err := h.store.SetActive(c.Request.Context(), id, false); err != nil {
		response.Internal(c, "failed to deactivate user")
		return
	}
	response.OKMessage(c, "user deactivated")
}

// Reactivate handles POST /api/v1/users/:id/reactivate.
func (h *Handler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	user, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		response.Internal(c, "failed to reactivate user")
		return
	}
	if user.IsActive {
		response.BadRequest(c, "user is already active")
		return
	}
	if err := h.store.SetActive(c.Request.Context(), id, true); err != nil {
		response.Internal(c, "failed to reactivate user")
		return
	}
	response.OKMessage(c, "user reactivated")
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
