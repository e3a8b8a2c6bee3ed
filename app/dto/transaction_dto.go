package dto

import (
	"encoding/json"
	"time"
)

// TransactionRequest is the body of PUT /transactions/:id
type TransactionRequest struct {
	ClientID   uint        `json:"client_id" validate:"required"`
	PlatformID uint        `json:"platform_id" validate:"required"`
	InvoiceID  uint        `json:"invoice_id" validate:"required"`
	Timestamp  time.Time   `json:"timestamp" validate:"required"`
	Amount     json.Number `json:"amount" validate:"required"`
	Status     string      `json:"status" validate:"required,max=50"`
	Type       string      `json:"type" validate:"required,max=50"`
}

// CreateTransactionRequest is the body of POST /transactions; ids are chosen by the caller
type CreateTransactionRequest struct {
	ID string `json:"id" validate:"required,max=50"`
	TransactionRequest
}
