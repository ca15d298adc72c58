package notifications

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberxltr/admin-platform/internal/middleware"
	"github.com/cyberxltr/admin-platform/internal/models"
)

type fakeStore struct {
	items map[uuid.UUID]*models.Notification

	lastList ListParams
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[uuid.UUID]*models.Notification)}
}

func (f *fakeStore) List(_ context.Context, p ListParams) ([]models.Notification, int64, error) {
	f.lastList = p
	var out []models.Notification
	for _, n := range f.items {
		if p.IsActive != nil && n.IsActive != *p.IsActive {
			continue
		}
		if p.Type != "" && n.Type != p.Type {
			continue
		}
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*models.Notification, error) {
	n, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *n
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, n *models.Notification) (*models.Notification, error) {
	cp := *n
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) Update(_ context.Context, id uuid.UUID, p UpdateParams) (*models.Notification, error) {
	n, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.IsActive != nil {
		n.IsActive = *p.IsActive
	}
	cp := *n
	return &cp, nil
}

func (f *fakeStore) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	n, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	n.IsActive = active
	return nil
}

func (f *fakeStore) Stats(_ context.Context) (*models.NotificationStats, error) {
	s := &models.NotificationStats{}
	cutoff := time.Now().AddDate(0, 0, -7)
	for _, n := range f.items {
		s.Total++
		if n.IsActive {
			s.Active++
		}
		if n.CreatedAt.After(cutoff) {
			s.Recent++
		}
	}
	return s, nil
}

// currentUser injects the authenticated user ID the way the token
// middleware does.
func currentUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Next()
	}
}

func newRouter(store Store, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store)
	r := gin.New()
	r.Use(currentUser(userID))
	r.GET("/notifications", h.List)
	r.POST("/notifications", h.Create)
	r.GET("/notifications/stats/overview", h.Stats)
	r.GET("/notifications/:id", h.GetByID)
	r.PUT("/notifications/:id", h.Update)
	r.DELETE("/notifications/:id", h.Deactivate)
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

func TestCreateNotificationDefaults(t *testing.T) {
	store := newFakeStore()
	adminID := uuid.New()
	r := newRouter(store, adminID)

	w := do(t, r, http.MethodPost, "/notifications", gin.H{
		"title":   "Scheduled maintenance",
		"message": "The platform will be down Sunday 02:00 UTC.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "info", data["type"])
	assert.Equal(t, float64(1), data["priority"])
	assert.Equal(t, "all_users", data["target"])
	assert.Equal(t, true, data["is_active"])
	assert.Equal(t, adminID.String(), data["created_by"])
}

func TestCreateNotificationInvalidType(t *testing.T) {
	r := newRouter(newFakeStore(), uuid.New())
	w := do(t, r, http.MethodPost, "/notifications", gin.H{
		"title":   "x",
		"message": "y",
		"type":    "shouting",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNotificationMissingFields(t *testing.T) {
	r := newRouter(newFakeStore(), uuid.New())
	w := do(t, r, http.MethodPost, "/notifications", gin.H{"title": "no message"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFilters(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, uuid.New())

	w := do(t, r, http.MethodGet, "/notifications?is_active=true&type=maintenance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, store.lastList.IsActive)
	assert.True(t, *store.lastList.IsActive)
	assert.Equal(t, "maintenance", store.lastList.Type)
}

func TestListBadActiveFilter(t *testing.T) {
	r := newRouter(newFakeStore(), uuid.New())
	w := do(t, r, http.MethodGet, "/notifications?is_active=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateNotificationRejectsInvalidType(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, uuid.New())

	w := do(t, r, http.MethodPost, "/notifications", gin.H{"title": "a", "message": "b"})
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeData(t, w)["id"].(string)

	w = do(t, r, http.MethodPut, "/notifications/"+id, gin.H{"type": "loud"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Reactivation of a notification goes through PUT with is_active.
func TestDeactivateThenReactivateViaUpdate(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, uuid.New())

	w := do(t, r, http.MethodPost, "/notifications", gin.H{"title": "a", "message": "b"})
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeData(t, w)["id"].(string)

	w = do(t, r, http.MethodDelete, "/notifications/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/notifications/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["is_active"])

	w = do(t, r, http.MethodPut, "/notifications/"+id, gin.H{"is_active": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["is_active"])
}

func TestDeactivateNotificationNotFound(t *testing.T) {
	r := newRouter(newFakeStore(), uuid.New())
	w := do(t, r, http.MethodDelete, "/notifications/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsOverview(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store, uuid.New())

	for i := 0; i < 3; i++ {
		w := do(t, r, http.MethodPost, "/notifications", gin.H{"title": "a", "message": "b"})
		require.Equal(t, http.StatusOK, w.Code)
	}
	var anyID uuid.UUID
	for id := range store.items {
		anyID = id
		break
	}
	require.NoError(t, store.SetActive(context.Background(), anyID, false))

	w := do(t, r, http.MethodGet, "/notifications/stats/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, float64(3), data["total_notifications"])
	assert.Equal(t, float64(2), data["active_notifications"])
	assert.Equal(t, float64(3), data["recent_notifications"])
}
