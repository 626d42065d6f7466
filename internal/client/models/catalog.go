package models

import "fmt"

// Default map centre (Moscow). Salons without coordinates are spread around
// it by id so their markers do not overlap.
const (
	DefaultLat = 55.751574
	DefaultLon = 37.573856

	markerSpread = 0.01
)

// Slot is one hour of a master's working day as returned by
// GET /masters/{id}/available-slots.
type Slot struct {
	Time      string `json:"time"`
	Hour      int    `json:"hour"`
	Available bool   `json:"available"`
}

// Marker is what the map capability needs to draw one salon.
type Marker struct {
	SalonID int64
	Lat     float64
	Lon     float64
	Title   string
	Balloon string
}

// MarkerFor places s on the map.
func MarkerFor(s Salon) Marker {
	lat := DefaultLat + float64(s.ID)*markerSpread
	lon := DefaultLon + float64(s.ID)*markerSpread
	if s.Lat != nil && s.Lon != nil {
		lat, lon = *s.Lat, *s.Lon
	}
	return Marker{
		SalonID: s.ID,
		Lat:     lat,
		Lon:     lon,
		Title:   s.Name,
		Balloon: fmt.Sprintf("%s\n%s", s.Name, s.Address),
	}
}
