package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Organization is the tenant record as returned by the API.
type Organization struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	URL              string    `json:"url"`
	SubscriptionTier string    `json:"subscription_tier"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrganizationPage is a paginated organization listing.
type OrganizationPage struct {
	Organizations []Organization `json:"organizations"`
	Total         int64          `json:"total"`
	Skip          int            `json:"skip"`
	Limit         int            `json:"limit"`
}

// User is the account record as returned by the API.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      *string   `json:"last_name"`
	FullName      string    `json:"full_name"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserPage is a paginated user listing.
type UserPage struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// Notification is a broadcast message as returned by the API.
type Notification struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Target    string     `json:"target"`
	Priority  int        `json:"priority"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationPage is a paginated notification listing.
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	Total         int64          `json:"total"`
	Skip          int            `json:"skip"`
	Limit         int            `json:"limit"`
}

// NotificationStats aggregates dashboard counts.
type NotificationStats struct {
	Total  int64 `json:"total_notifications"`
	Active int64 `json:"active_notifications"`
	Recent int64 `json:"recent_notifications"`
}

// ListOptions are the common listing filters.
type ListOptions struct {
	Skip   int
	Limit  int
	Search string
	Status string
}

func (o ListOptions) query() string {
	v := url.Values{}
	if o.Skip > 0 {
		v.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		v.Set("search", o.Search)
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListOrganizations returns a page of organizations.
func (c *Client) ListOrganizations(ctx context.Context, opts ListOptions) (*OrganizationPage, error) {
	var page OrganizationPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/organizations"+opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrganization returns one organization by ID.
func (c *Client) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	if err := c.do(ctx, http.MethodGet, "/api/v1/organizations/"+id, nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// CreateOrganizationRequest is the body for organization creation.
type CreateOrganizationRequest struct {
	Name             string `json:"name"`
	URL              string `json:"url"`
	SubscriptionTier string `json:"subscription_tier,omitempty"`
	BillingEmail     string `json:"billing_email,omitempty"`
}

// CreateOrganization creates a tenant.
func (c *Client) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	var org Organization
	if err := c.do(ctx, http.MethodPost, "/api/v1/organizations", req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// DeactivateOrganization soft-deletes a tenant.
func (c *Client) DeactivateOrganization(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/organizations/"+id, nil, nil)
}

// ReactivateOrganization restores a soft-deleted tenant.
func (c *Client) ReactivateOrganization(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/reactivate", id), nil, nil)
}

// ListUsers returns a page of users.
func (c *Client) ListUsers(ctx context.Context, opts ListOptions) (*UserPage, error) {
	var page UserPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/users"+opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUser returns one user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/"+id, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeactivateUser soft-deletes a user.
func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/users/"+id, nil, nil)
}

// ReactivateUser restores a soft-deleted user.
func (c *Client) ReactivateUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/users/%s/reactivate", id), nil, nil)
}

// ListNotifications returns a page of notifications.
func (c *Client) ListNotifications(ctx context.Context, opts ListOptions) (*NotificationPage, error) {
	var page NotificationPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/notifications"+opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateNotificationRequest is the body for notification creation.
type CreateNotificationRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// CreateNotification broadcasts a message to all users.
func (c *Client) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error) {
	var n Notification
	if err := c.do(ctx, http.MethodPost, "/api/v1/notifications", req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// NotificationOverview returns dashboard counts.
func (c *Client) NotificationOverview(ctx context.Context) (*NotificationStats, error) {
	var s NotificationStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/notifications/stats/overview", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
