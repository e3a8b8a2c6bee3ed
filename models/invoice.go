package models

// Invoice is a billing document for one period.
// Amounts are kept as the decimal text Postgres returns for NUMERIC columns.
// Table: invoices
type Invoice struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	InvoiceNumber string `gorm:"size:50;not null" json:"invoice_number"`
	BillingPeriod string `gorm:"size:20;not null;index:idx_invoices_billing_period" json:"billing_period"`
	BilledAmount  string `gorm:"type:numeric(12,2);not null" json:"billed_amount"`
	PaidAmount    string `gorm:"type:numeric(12,2);not null" json:"paid_amount"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// Assignments returns every non-key column for full-row updates
func (i Invoice) Assignments() map[string]any {
	return map[string]any{
		"invoice_number": i.InvoiceNumber,
		"billing_period": i.BillingPeriod,
		"billed_amount":  i.BilledAmount,
		"paid_amount":    i.PaidAmount,
	}
}
