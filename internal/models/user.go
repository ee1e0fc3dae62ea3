// internal/models/user.go
package models

type UserProfile struct {
	Name    string   `json:"name" validate:"required,min=1,max=100"`
	Email   string   `json:"email" validate:"required,email"`
	Role    UserRole `json:"role"`
	AppRole AppRole  `json:"app_role" validate:"required"`
	HubID   *string  `json:"hub_id,omitempty"`
}
