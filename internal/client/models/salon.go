// Package models defines the records exchanged with the salon booking service.
package models

// Salon is a physical location offering services. Read-only for this client.
type Salon struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	PhotoURL string   `json:"photo_url,omitempty"`

	// Masters is only populated by the single-salon endpoint.
	Masters []Master `json:"masters,omitempty"`
}

// Master is a service provider employed at exactly one salon.
type Master struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	SalonID        int64  `json:"salon_id"`
	Specialization string `json:"specialization,omitempty"`
	Experience     string `json:"experience,omitempty"`
	PhotoURL       string `json:"photo_url,omitempty"`
}
