package models

// Seed rows carry CSV values verbatim. Every field is text so the database
// column types are the only validation applied at insert time.

type PlatformRow struct {
	ID   string `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

func (PlatformRow) TableName() string { return "platforms" }

type ClientRow struct {
	ID                   string `gorm:"column:id"`
	Name                 string `gorm:"column:name"`
	IdentificationNumber string `gorm:"column:identification_number"`
	Address              string `gorm:"column:address"`
	Phone                string `gorm:"column:phone"`
	Email                string `gorm:"column:email"`
}

func (ClientRow) TableName() string { return "clients" }

type InvoiceRow struct {
	ID            string `gorm:"column:id"`
	InvoiceNumber string `gorm:"column:invoice_number"`
	BillingPeriod string `gorm:"column:billing_period"`
	BilledAmount  string `gorm:"column:billed_amount"`
	PaidAmount    string `gorm:"column:paid_amount"`
}

func (InvoiceRow) TableName() string { return "invoices" }

type TransactionRow struct {
	ID         string `gorm:"column:id"`
	ClientID   string `gorm:"column:client_id"`
	PlatformID string `gorm:"column:platform_id"`
	InvoiceID  string `gorm:"column:invoice_id"`
	OccurredAt string `gorm:"column:occurred_at"`
	Amount     string `gorm:"column:amount"`
	Status     string `gorm:"column:status"`
	Type       string `gorm:"column:type"`
}

func (TransactionRow) TableName() string { return "transactions" }
