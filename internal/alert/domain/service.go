package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// CreateRequest carries an explicit OrganizationID because alerts are also
// raised by background jobs running outside any request context; when zero,
// the organization is taken from the caller's context.
type CreateRequest struct {
	OrganizationID snowflake.ID  `json:"-"`
	UserID         *snowflake.ID `json:"-"`
	Type           Type          `json:"type"`
	Severity       Severity      `json:"severity"`
	Title          string        `json:"title"`
	TitleAr        string        `json:"title_ar"`
	Message        string        `json:"message"`
	MessageAr      string        `json:"message_ar"`
}

type ListRequest struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
}

type Response struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id,omitempty"`
	Type           Type      `json:"type"`
	Severity       Severity  `json:"severity"`
	Title          string    `json:"title"`
	TitleAr        string    `json:"title_ar,omitempty"`
	Message        string    `json:"message"`
	MessageAr      string    `json:"message_ar,omitempty"`
	ReadStatus     bool      `json:"read_status"`
	CreatedAt      time.Time `json:"created_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidSeverity     = errors.New("invalid_severity")
	ErrInvalidTitle        = errors.New("invalid_title")
	ErrInvalidMessage      = errors.New("invalid_message")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
