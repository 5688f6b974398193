package domain

import (
	"context"
	"errors"
	"time"
)

type CreateRequest struct {
	Category      Category   `json:"category"`
	Description   string     `json:"description"`
	DescriptionAr string     `json:"description_ar"`
	Amount        *float64   `json:"amount"`
	ExpenseDate   *time.Time `json:"expense_date,omitempty"`
	ApprovedBy    string     `json:"approved_by"`
	ReceiptURL    string     `json:"receipt_url"`
}

type UpdateRequest struct {
	Category      *Category `json:"category,omitempty"`
	Description   *string   `json:"description,omitempty"`
	DescriptionAr *string   `json:"description_ar,omitempty"`
	Amount        *float64  `json:"amount,omitempty"`
	ApprovedBy    *string   `json:"approved_by,omitempty"`
	ReceiptURL    *string   `json:"receipt_url,omitempty"`
}

type ListRequest struct {
	Category string `form:"category"`
}

type Response struct {
	ID            string    `json:"id"`
	Category      Category  `json:"category"`
	Description   string    `json:"description"`
	DescriptionAr string    `json:"description_ar"`
	Amount        float64   `json:"amount"`
	ExpenseDate   time.Time `json:"expense_date"`
	ApprovedBy    string    `json:"approved_by,omitempty"`
	ReceiptURL    string    `json:"receipt_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCategory     = errors.New("invalid_category")
	ErrInvalidDescription  = errors.New("invalid_description")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
