package domain

import (
	"context"
	"errors"
	"time"
)

type CreateRequest struct {
	SubscriberID  string     `json:"subscriber_id"`
	BillID        string     `json:"bill_id"`
	Amount        *float64   `json:"amount"`
	Method        Method     `json:"payment_method"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	CollectorName string     `json:"collector_name"`
	Notes         string     `json:"notes"`
}

type ListRequest struct {
	SubscriberID string `form:"subscriber_id"`
	Method       string `form:"payment_method"`
}

type Response struct {
	ID            string    `json:"id"`
	SubscriberID  string    `json:"subscriber_id"`
	BillID        string    `json:"bill_id,omitempty"`
	Amount        float64   `json:"amount"`
	Method        Method    `json:"payment_method"`
	PaymentDate   time.Time `json:"payment_date"`
	ReceiptNumber string    `json:"receipt_number"`
	CollectorName string    `json:"collector_name,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidSubscriber   = errors.New("invalid_subscriber")
	ErrSubscriberNotFound  = errors.New("subscriber_not_found")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidMethod       = errors.New("invalid_payment_method")
	ErrInvalidBill         = errors.New("invalid_bill")
	ErrBillNotFound        = errors.New("bill_not_found")
	ErrBillMismatch        = errors.New("bill_subscriber_mismatch")
	ErrBillNotPayable      = errors.New("bill_not_payable")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
