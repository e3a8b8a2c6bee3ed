// Package models contains the billing entities persisted by the API and the seed pipeline
package models

// Platform is a billing channel such as a payment app or a bank
// Table: platforms
type Platform struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Platform) TableName() string {
	return "platforms"
}

// Assignments returns every non-key column for full-row updates
func (p Platform) Assignments() map[string]any {
	return map[string]any{
		"name": p.Name,
	}
}
