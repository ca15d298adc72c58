package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cyberxltr/admin-platform/internal/models"
	"github.com/cyberxltr/admin-platform/pkg/response"
	"github.com/cyberxltr/admin-platform/pkg/utils"
)

// invalidCredentials is the single message returned for every credential
// failure: unknown email, inactive account, and wrong password are not
// distinguishable from the response.
const invalidCredentials = "invalid credentials"

// UserStore is the user lookup the login handler needs.
type UserStore interface {
	GetActiveByEmail(ctx context.Context, email string) (*models.User, error)
}

// LoginRequest is the body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser is the identity block returned on successful login.
type LoginUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
}

// LoginResponse is the body returned on successful login.
type LoginResponse struct {
	Success      bool      `json:"success"`
	User         LoginUser `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Message      string    `json:"message"`
}

// Handler handles authentication HTTP endpoints.
type Handler struct {
	store     UserStore
	jwt       *JWTService
	allowList AllowList
	logger    *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(store UserStore, jwt *JWTService, allowList AllowList, logger *zap.Logger) *Handler {
	return &Handler{store: store, jwt: jwt, allowList: allowList, logger: logger}
}

// Login handles POST /api/v1/auth/login. Only allow-listed administrators
// can log in; everyone else gets 403 before credentials are even checked.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.allowList.Contains(email) {
		h.logger.Warn("login attempt by non-admin", zap.String("email", email))
		response.Forbidden(c, "admin privileges required")
		return
	}

	user, err := h.store.GetActiveByEmail(c.Request.Context(), email)
	if err != nil {
		response.Unauthorized(c, invalidCredentials)
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, invalidCredentials)
		return
	}

	accessToken, err := h.jwt.GenerateAccess(user.ID, user.Email)
	if err != nil {
		h.logger.Error("generate access token", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	refreshToken, err := h.jwt.GenerateRefresh(user.ID, user.Email)
	if err != nil {
		h.logger.Error("generate refresh token", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		User: LoginUser{
			ID:        user.ID.String(),
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			FullName:  user.DisplayName(),
			Role:      models.RoleAdmin,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Message:      "Login successful",
	})
}
