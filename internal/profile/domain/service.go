package domain

import (
	"context"
	"errors"
	"time"
)

type ProvisionRequest struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type UpdateRequest struct {
	UserID      string          `json:"-"`
	FullName    *string         `json:"full_name,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	Role        *string         `json:"role,omitempty"`
	Permissions *map[string]any `json:"permissions,omitempty"`
}

type Response struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id,omitempty"`
	FullName       string         `json:"full_name"`
	Phone          string         `json:"phone,omitempty"`
	Role           string         `json:"role"`
	Permissions    map[string]any `json:"permissions"`
	LastLogin      *time.Time     `json:"last_login,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type Service interface {
	// Provision creates the profile row for a freshly created user and binds
	// it to the default organization when one exists.
	Provision(ctx context.Context, req ProvisionRequest) (*Response, error)
	// Resolve returns the user's profile, backfilling the default
	// organization for legacy profiles created before provisioning assigned
	// one. Calling it repeatedly never reassigns a bound profile.
	Resolve(ctx context.Context, userID string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	TouchLastLogin(ctx context.Context, userID string) error
}

var (
	ErrInvalidUserID   = errors.New("invalid_user_id")
	ErrInvalidFullName = errors.New("invalid_full_name")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrNotFound        = errors.New("not_found")
)
