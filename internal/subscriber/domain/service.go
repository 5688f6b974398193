package domain

import (
	"context"
	"errors"
	"time"

	"github.com/aquacoop/aquacoop/pkg/db/pagination"
)

type CreateRequest struct {
	Name           string     `json:"name"`
	NameAr         string     `json:"name_ar"`
	Address        string     `json:"address"`
	AddressAr      string     `json:"address_ar"`
	Phone          string     `json:"phone"`
	MeterNumber    string     `json:"meter_number"`
	Status         *Status    `json:"status,omitempty"`
	ConnectionDate *time.Time `json:"connection_date,omitempty"`
	TariffType     string     `json:"tariff_type"`
	FamilySize     *int       `json:"family_size,omitempty"`
	Notes          string     `json:"notes"`
}

type UpdateRequest struct {
	ID             string     `json:"-"`
	Name           *string    `json:"name,omitempty"`
	NameAr         *string    `json:"name_ar,omitempty"`
	Address        *string    `json:"address,omitempty"`
	AddressAr      *string    `json:"address_ar,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	MeterNumber    *string    `json:"meter_number,omitempty"`
	Status         *Status    `json:"status,omitempty"`
	ConnectionDate *time.Time `json:"connection_date,omitempty"`
	TariffType     *string    `json:"tariff_type,omitempty"`
	FamilySize     *int       `json:"family_size,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

type ListRequest struct {
	PageToken string
	PageSize  int
	Status    string
	Search    string
}

type ListResponse struct {
	pagination.PageInfo
	Subscribers []Response `json:"subscribers"`
}

type Response struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	NameAr         string    `json:"name_ar,omitempty"`
	Address        string    `json:"address"`
	AddressAr      string    `json:"address_ar,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	MeterNumber    string    `json:"meter_number"`
	Status         Status    `json:"status"`
	ConnectionDate time.Time `json:"connection_date"`
	TariffType     string    `json:"tariff_type"`
	FamilySize     int       `json:"family_size"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidOrganization  = errors.New("invalid_organization")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidAddress       = errors.New("invalid_address")
	ErrInvalidMeterNumber   = errors.New("invalid_meter_number")
	ErrDuplicateMeterNumber = errors.New("duplicate_meter_number")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrInvalidFamilySize    = errors.New("invalid_family_size")
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
)
