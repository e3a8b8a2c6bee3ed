package dto

// ClientRequest is the body of POST and PUT /clients
type ClientRequest struct {
	Name                 string `json:"name" validate:"required,max=150"`
	IdentificationNumber string `json:"identification_number" validate:"required,max=30"`
	Address              string `json:"address" validate:"required,max=255"`
	Phone                string `json:"phone" validate:"required,max=50"`
	Email                string `json:"email" validate:"required,max=150"`
}
