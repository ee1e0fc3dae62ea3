// internal/models/hub.go
package models

// Location is a latitude, longitude pair.
type Location [2]float64

func (l Location) Lat() float64 { return l[0] }
func (l Location) Lng() float64 { return l[1] }

type Hub struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     Location  `json:"location"`
	Capacity     int64     `json:"capacity"`
	Status       HubStatus `json:"status"`
	BusinessInfo string    `json:"business_info"`
	ContactInfo  string    `json:"contact_info"`
	Services     string    `json:"services"`
	CreatedAt    int64     `json:"created_at"`
	UpdatedAt    int64     `json:"updated_at"`
}

type HubApplication struct {
	Name         string   `json:"name" validate:"required,min=2,max=120"`
	Location     Location `json:"location"`
	Capacity     int64    `json:"capacity" validate:"required,min=1"`
	BusinessInfo string   `json:"business_info" validate:"required"`
	ContactInfo  string   `json:"contact_info" validate:"required"`
	Services     string   `json:"services"`
}
