package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a tenant account that groups users.
type Organization struct {
	ID                  uuid.UUID      `json:"id"`
	Name                string         `json:"name"`
	URL                 string         `json:"url"`
	SubscriptionTier    string         `json:"subscription_tier"`
	MaxStorageGB        int            `json:"max_storage_gb"`
	BillingEmail        *string        `json:"billing_email"`
	SupportEmail        *string        `json:"support_email"`
	Phone               *string        `json:"phone"`
	CompanyAddress      *string        `json:"company_address"`
	PrimaryColor        string         `json:"primary_color"`
	Environment         string         `json:"environment"`
	Description         *string        `json:"description"`
	MaxUsers            int            `json:"max_users"`
	MaxMonthlyProspects int            `json:"max_monthly_prospects"`
	MaxMonthlyEmails    int            `json:"max_monthly_emails"`
	IsActive            bool           `json:"is_active"`
	Features            map[string]any `json:"features"`
	Settings            map[string]any `json:"settings"`
	SecuritySettings    map[string]any `json:"security_settings"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// UserOrganization links a user to an organization with a role.
type UserOrganization struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"is_active"`
	IsPrimary      bool      `json:"is_primary"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultFeatures returns the feature flag set assigned to new tenants.
func DefaultFeatures() map[string]any {
	return map[string]any{
		"sso_auth":            false,
		"ai_scoring":          true,
		"api_access":          false,
		"audit_logs":          true,
		"data_export":         true,
		"white_label":         false,
		"web_scraping":        true,
		"email_outreach":      true,
		"multi_language":      false,
		"priority_support":    false,
		"advanced_analytics":  false,
		"custom_integrations": false,
	}
}

// DefaultSettings returns the workspace settings assigned to new tenants.
func DefaultSettings() map[string]any {
	return map[string]any{
		"currency":               "USD",
		"timezone":               "UTC",
		"date_format":            "MM/DD/YYYY",
		"auto_follow_up":         true,
		"email_signature":        "",
		"lead_scoring_enabled":   true,
		"default_email_template": "professional",
		"notification_preferences": map[string]any{
			"deal_alerts":         true,
			"weekly_reports":      true,
			"email_notifications": true,
		},
	}
}

// DefaultSecuritySettings returns the security posture assigned to new tenants.
func DefaultSecuritySettings() map[string]any {
	return map[string]any{
		"ip_whitelist":        []any{},
		"audit_logging":       true,
		"password_policy":     "strong",
		"session_timeout":     480,
		"two_factor_required": false,
	}
}
