package domain

import (
	"context"
	"errors"
	"time"
)

type CreateRequest struct {
	SubscriberID   string     `json:"subscriber_id"`
	CurrentReading *float64   `json:"current_reading"`
	ReadingDate    *time.Time `json:"reading_date,omitempty"`
	ReaderName     string     `json:"reader_name"`
	Notes          string     `json:"notes"`
	PhotoURL       string     `json:"photo_url"`
}

type Response struct {
	ID              string    `json:"id"`
	SubscriberID    string    `json:"subscriber_id"`
	CurrentReading  float64   `json:"current_reading"`
	PreviousReading *float64  `json:"previous_reading,omitempty"`
	Consumption     *float64  `json:"consumption,omitempty"`
	ReadingDate     time.Time `json:"reading_date"`
	ReaderName      string    `json:"reader_name,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	ListBySubscriber(ctx context.Context, subscriberID string) ([]Response, error)
	List(ctx context.Context) ([]Response, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidSubscriber   = errors.New("invalid_subscriber")
	ErrInvalidReading      = errors.New("invalid_reading")
	ErrSubscriberNotFound  = errors.New("subscriber_not_found")
)
