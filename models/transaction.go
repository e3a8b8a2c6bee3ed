package models

import "time"

// Transaction is a payment movement of a client through a platform against an invoice
// Table: transactions
// client_id, platform_id and invoice_id are enforced by foreign keys
type Transaction struct {
	ID         string    `gorm:"primaryKey;size:50" json:"id"`
	ClientID   uint      `gorm:"not null;index:idx_transactions_client_id" json:"client_id"`
	PlatformID uint      `gorm:"not null" json:"platform_id"`
	InvoiceID  uint      `gorm:"not null" json:"invoice_id"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null;index:idx_transactions_occurred_at" json:"timestamp"`
	Amount     string    `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status     string    `gorm:"size:50;not null" json:"status"`
	Type       string    `gorm:"size:50;not null" json:"type"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Assignments returns every non-key column for full-row updates
func (t Transaction) Assignments() map[string]any {
	return map[string]any{
		"client_id":   t.ClientID,
		"platform_id": t.PlatformID,
		"invoice_id":  t.InvoiceID,
		"occurred_at": t.OccurredAt,
		"amount":      t.Amount,
		"status":      t.Status,
		"type":        t.Type,
	}
}

// TransactionDetail is a transaction joined with the rows it references.
// Client columns are empty when the projection does not select them.
type TransactionDetail struct {
	Transaction

	ClientName                 string `json:"client_name,omitempty"`
	ClientIdentificationNumber string `json:"client_identification_number,omitempty"`
	ClientEmail                string `json:"client_email,omitempty"`
	PlatformName               string `json:"platform_name"`
	InvoiceNumber              string `json:"invoice_number"`
	BillingPeriod              string `json:"billing_period"`
	BilledAmount               string `json:"billed_amount"`
	PaidAmount                 string `json:"paid_amount"`
}

// TransactionReferences counts the distinct parent rows referenced by transactions
type TransactionReferences struct {
	ClientsWithTransactions  int64 `json:"clients_with_transactions"`
	PlatformsUsed            int64 `json:"platforms_used"`
	InvoicesWithTransactions int64 `json:"invoices_with_transactions"`
}
