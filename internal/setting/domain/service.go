package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

type UpsertRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type Response struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Service interface {
	Get(ctx context.Context, key string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Upsert(ctx context.Context, req UpsertRequest) (*Response, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidKey          = errors.New("invalid_setting_key")
	ErrInvalidValue        = errors.New("invalid_setting_value")
	ErrNotFound            = errors.New("not_found")
)
