package dto

// PlatformRequest is the body of POST and PUT /platforms
type PlatformRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
