package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberxltr/admin-platform/internal/auth"
	"github.com/cyberxltr/admin-platform/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeActiveUserStore struct {
	active map[uuid.UUID]*models.User
}

func (f *fakeActiveUserStore) GetActiveByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.active[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func newGatedRouter(allowList auth.AllowList, store ActiveUserStore) (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)
	svc := auth.NewJWTService(testSecret, 24, 168)
	r := gin.New()
	protected := r.Group("")
	protected.Use(JWT(svc))
	protected.Use(RequireAdmin(allowList, store))
	protected.GET("/guarded", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet(ContextUserID).(uuid.UUID).String()})
	})
	return r, svc
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGateAllowsAdmin(t *testing.T) {
	userID := uuid.New()
	store := &fakeActiveUserStore{active: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "admin@example.com", IsActive: true},
	}}
	r, svc := newGatedRouter(auth.NewAllowList([]string{"admin@example.com"}), store)

	token, err := svc.GenerateAccess(userID, "admin@example.com")
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateMissingHeader(t *testing.T) {
	r, _ := newGatedRouter(auth.NewAllowList([]string{"admin@example.com"}), &fakeActiveUserStore{})
	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateMalformedHeader(t *testing.T) {
	r, _ := newGatedRouter(auth.NewAllowList([]string{"admin@example.com"}), &fakeActiveUserStore{})
	w := get(r, "Token abcdef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateGarbageToken(t *testing.T) {
	r, _ := newGatedRouter(auth.NewAllowList([]string{"admin@example.com"}), &fakeActiveUserStore{})
	w := get(r, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateExpiredToken(t *testing.T) {
	userID := uuid.New()
	store := &fakeActiveUserStore{active: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "admin@example.com", IsActive: true},
	}}
	r, _ := newGatedRouter(auth.NewAllowList([]string{"admin@example.com"}), store)

	expired := auth.NewJWTService(testSecret, -1, 168)
	token, err := expired.GenerateAccess(userID, "admin@example.com")
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A refresh token must not open protected routes even though it verifies.
func TestGateRejectsRefreshToken(t *testing.T) {
	userID := uuid.New()
	store := &fakeActiveUserStore{active: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "admin@example.com", IsActive: true},
	}}
	r, svc := newGatedRouter(auth.NewAllowList([]string{"admin@example.com"}), store)

	token, err := svc.GenerateRefresh(userID, "admin@example.com")
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A valid token for an email off the allow-list is 403, not 401.
func TestGateNotAllowListedIsForbidden(t *testing.T) {
	userID := uuid.New()
	store := &fakeActiveUserStore{active: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "other@example.com", IsActive: true},
	}}
	r, svc := newGatedRouter(auth.NewAllowList([]string{"admin@example.com"}), store)

	token, err := svc.GenerateAccess(userID, "other@example.com")
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// A token for a since-deactivated account stops working immediately.
func TestGateInactiveSubject(t *testing.T) {
	userID := uuid.New()
	r, svc := newGatedRouter(auth.NewAllowList([]string{"admin@example.com"}), &fakeActiveUserStore{})

	token, err := svc.GenerateAccess(userID, "admin@example.com")
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
