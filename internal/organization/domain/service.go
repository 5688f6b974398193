package domain

import (
	"context"
	"errors"
	"time"
)

type CreateRequest struct {
	Name    string `json:"name"`
	NameAr  string `json:"name_ar"`
	Address string `json:"address"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type UpdateRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	NameAr  *string `json:"name_ar,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Region  *string `json:"region,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Status  *string `json:"status,omitempty"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameAr    string    `json:"name_ar,omitempty"`
	Slug      string    `json:"slug"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Region    string    `json:"region,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidAddress = errors.New("invalid_address")
	ErrInvalidCity    = errors.New("invalid_city")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
