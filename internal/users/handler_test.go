package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cyberxltr/admin-platform/internal/auth"
	"github.com/cyberxltr/admin-platform/internal/models"
	"github.com/cyberxltr/admin-platform/pkg/utils"
)

type fakeStore struct {
	users      map[uuid.UUID]*models.User
	activeOrgs map[uuid.UUID]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uuid.UUID]*models.User),
		activeOrgs: make(map[uuid.UUID]bool),
	}
}

func (f *fakeStore) List(_ context.Context, _ ListParams) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) OrganizationIsActive(_ context.Context, id uuid.UUID) (bool, error) {
	active, ok := f.activeOrgs[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	return active, nil
}

func (f *fakeStore) Create(_ context.Context, p CreateParams) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == p.Email {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	u := &models.User{
		ID:            uuid.New(),
		Email:         p.Email,
		Password:      p.PasswordHash,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		JobTitle:      p.JobTitle,
		Department:    p.Department,
		GlobalRole:    p.Role,
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeStore) Update(_ context.Context, id uuid.UUID, p UpdateParams) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.IsActive = active
	return nil
}

func (f *fakeStore) seedUser(email string) *models.User {
	u := &models.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Test",
		IsActive:  true,
	}
	f.users[u.ID] = u
	return u
}

func newRouter(store Store, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, auth.NewAllowList(allowed), zap.NewNop())
	r := gin.New()
	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	r.GET("/users/:id", h.GetByID)
	r.PUT("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Deactivate)
	r.POST("/users/:id/reactivate", h.Reactivate)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	return body.Data
}

func createBody(orgID uuid.UUID) gin.H {
	return gin.H{
		"email":            "Jane.Doe@Example.com",
		"first_name":       "Jane",
		"password":         "s3cret-pass",
		"confirm_password": "s3cret-pass",
		"organization_id":  orgID.String(),
	}
}

func TestCreateUserSuccess(t *testing.T) {
	store := newFakeStore()
	orgID := uuid.New()
	store.activeOrgs[orgID] = true
	r := newRouter(store)

	w := do(t, r, http.MethodPost, "/users", createBody(orgID))
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "jane.doe@example.com", data["email"])
	assert.Equal(t, true, data["is_active"])
	assert.Equal(t, true, data["email_verified"])
	assert.NotContains(t, data, "password")

	for _, u := range store.users {
		assert.Equal(t, models.RoleSalesRep, u.GlobalRole)
		assert.True(t, utils.CheckPassword("s3cret-pass", u.Password))
	}
}

func TestCreateUserShortPassword(t *testing.T) {
	store := newFakeStore()
	orgID := uuid.New()
	store.activeOrgs[orgID] = true
	r := newRouter(store)

	body := createBody(orgID)
	body["password"] = "short"
	body["confirm_password"] = "short"
	w := do(t, r, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserPasswordMismatch(t *testing.T) {
	store := newFakeStore()
	orgID := uuid.New()
	store.activeOrgs[orgID] = true
	r := newRouter(store)

	body := createBody(orgID)
	body["confirm_password"] = "different-pass"
	w := do(t, r, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserInactiveOrganization(t *testing.T) {
	store := newFakeStore()
	orgID := uuid.New()
	store.activeOrgs[orgID] = false
	r := newRouter(store)

	w := do(t, r, http.MethodPost, "/users", createBody(orgID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserUnknownOrganization(t *testing.T) {
	r := newRouter(newFakeStore())
	w := do(t, r, http.MethodPost, "/users", createBody(uuid.New()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	orgID := uuid.New()
	store.activeOrgs[orgID] = true
	r := newRouter(store)

	w := do(t, r, http.MethodPost, "/users", createBody(orgID))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/users", createBody(orgID))
	assert.Equal(t, http.StatusConflict, w.Code)
}

// Administrator accounts never show up in user listings.
func TestListHidesAllowListedAccounts(t *testing.T) {
	store := newFakeStore()
	store.seedUser("admin@example.com")
	visible := store.seedUser("rep@example.com")
	r := newRouter(store, "admin@example.com")

	w := do(t, r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	list, ok := data["users"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	entry := list[0].(map[string]any)
	assert.Equal(t, visible.Email, entry["email"])
}

func TestListBadOrganizationFilter(t *testing.T) {
	r := newRouter(newFakeStore())
	w := do(t, r, http.MethodGet, "/users?organization_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserNotFound(t *testing.T) {
	r := newRouter(newFakeStore())
	w := do(t, r, http.MethodGet, "/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserNormalizesEmail(t *testing.T) {
	store := newFakeStore()
	u := store.seedUser("old@example.com")
	r := newRouter(store)

	w := do(t, r, http.MethodPut, "/users/"+u.ID.String(), gin.H{"email": " New@Example.COM "})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "new@example.com", data["email"])
}

func TestDeactivateReactivateUser(t *testing.T) {
	store := newFakeStore()
	u := store.seedUser("rep@example.com")
	r := newRouter(store)

	w := do(t, r, http.MethodDelete, "/users/"+u.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.users[u.ID].IsActive)

	w = do(t, r, http.MethodPost, "/users/"+u.ID.String()+"/reactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.users[u.ID].IsActive)

	w = do(t, r, http.MethodPost, "/users/"+u.ID.String()+"/reactivate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
