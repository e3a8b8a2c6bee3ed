package models

// Client is a billed customer
// Table: clients
type Client struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	Name                 string `gorm:"size:150;not null;index:idx_clients_name" json:"name"`
	IdentificationNumber string `gorm:"size:30;not null" json:"identification_number"`
	Address              string `gorm:"size:255;not null" json:"address"`
	Phone                string `gorm:"size:50;not null" json:"phone"`
	Email                string `gorm:"size:150;not null" json:"email"`
}

func (Client) TableName() string {
	return "clients"
}

// Assignments returns every non-key column for full-row updates
func (c Client) Assignments() map[string]any {
	return map[string]any{
		"name":                  c.Name,
		"identification_number": c.IdentificationNumber,
		"address":               c.Address,
		"phone":                 c.Phone,
		"email":                 c.Email,
	}
}
