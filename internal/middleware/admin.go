package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cyberxltr/admin-platform/internal/auth"
	"github.com/cyberxltr/admin-platform/internal/models"
	"github.com/cyberxltr/admin-platform/pkg/response"
)

const contextClaims = "token_claims"

// ActiveUserStore confirms the token subject still exists and is active.
type ActiveUserStore interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RequireAdmin returns a middleware gating requests to allow-listed
// administrators. It runs after JWT: the token must carry the admin scope
// (403 otherwise), the email must be on the allow-list (403), and the
// subject must still be an active user (401).
func RequireAdmin(allowList auth.AllowList, store ActiveUserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsVal, ok := c.Get(contextClaims)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		claims, ok := claimsVal.(*auth.Claims)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		if claims.Scope != auth.ScopeAdmin {
			response.Forbidden(c, "admin privileges required")
			c.Abort()
			return
		}
		if !allowList.Contains(claims.Email) {
			response.Forbidden(c, "admin privileges required")
			c.Abort()
			return
		}
		userID := c.MustGet(ContextUserID).(uuid.UUID)
		if _, err := store.GetActiveByID(c.Request.Context(), userID); err != nil {
			response.Unauthorized(c, "admin user not found or inactive")
			c.Abort()
			return
		}
		c.Next()
	}
}
