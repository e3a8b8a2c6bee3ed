package dto

import "encoding/json"

// InvoiceRequest is the body of POST and PUT /invoices.
// Amounts accept a JSON number or a numeric string and keep their exact decimal text.
type InvoiceRequest struct {
	InvoiceNumber string      `json:"invoice_number" validate:"required,max=50"`
	BillingPeriod string      `json:"billing_period" validate:"required,max=20"`
	BilledAmount  json.Number `json:"billed_amount" validate:"required"`
	PaidAmount    json.Number `json:"paid_amount" validate:"required"`
}
