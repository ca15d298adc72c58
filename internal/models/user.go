package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GlobalRole values assigned to platform users.
const (
	RoleAdmin    = "admin"
	RoleSalesRep = "sales_rep"
)

// User represents a platform user account.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      *string   `json:"last_name"`
	FullName      *string   `json:"full_name"`
	Phone         *string   `json:"phone"`
	JobTitle      *string   `json:"job_title"`
	Department    *string   `json:"department"`
	GlobalRole    string    `json:"global_role"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName returns full_name when set, otherwise "first last" assembled
// from the name parts.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	last := ""
	if u.LastName != nil {
		last = *u.LastName
	}
	return strings.TrimSpace(u.FirstName + " " + last)
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      *string   `json:"last_name"`
	FullName      string    `json:"full_name"`
	Phone         *string   `json:"phone"`
	JobTitle      *string   `json:"job_title"`
	Department    *string   `json:"department"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.DisplayName(),
		Phone:         u.Phone,
		JobTitle:      u.JobTitle,
		Department:    u.Department,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}
