package domain

import (
	"context"
	"errors"
	"time"
)

type CreateRequest struct {
	SubscriberID string     `json:"subscriber_id"`
	PeriodStart  *time.Time `json:"period_start"`
	PeriodEnd    *time.Time `json:"period_end"`
	Consumption  float64    `json:"consumption"`
	Amount       *float64   `json:"amount"`
	DueDate      *time.Time `json:"due_date"`
	Notes        string     `json:"notes"`
}

type ListRequest struct {
	SubscriberID string `form:"subscriber_id"`
	Status       string `form:"status"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status Status `json:"status"`
}

type Response struct {
	ID           string     `json:"id"`
	SubscriberID string     `json:"subscriber_id"`
	PeriodStart  time.Time  `json:"period_start"`
	PeriodEnd    time.Time  `json:"period_end"`
	Consumption  float64    `json:"consumption"`
	Amount       float64    `json:"amount"`
	DueDate      time.Time  `json:"due_date"`
	Status       Status     `json:"status"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	GeneratedAt  time.Time  `json:"generated_at"`
	Notes        string     `json:"notes,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*Response, error)
	// MarkOverdue flips pending bills past due as of the given time to
	// overdue and raises one alert per bill. Returns how many were swept.
	MarkOverdue(ctx context.Context, asOf time.Time) (int, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidSubscriber   = errors.New("invalid_subscriber")
	ErrSubscriberNotFound  = errors.New("subscriber_not_found")
	ErrInvalidPeriod       = errors.New("invalid_period")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidConsumption  = errors.New("invalid_consumption")
	ErrInvalidDueDate      = errors.New("invalid_due_date")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidTransition   = errors.New("invalid_status_transition")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
