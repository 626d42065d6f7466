package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Service is the name of a salon service drawn from a fixed set.
type Service string

const (
	ServiceHaircut         Service = "Стрижка"
	ServiceColoring        Service = "Окрашивание"
	ServiceStyling         Service = "Укладка"
	ServiceManicure        Service = "Маникюр"
	ServicePedicure        Service = "Педикюр"
	ServiceSpa             Service = "SPA-уход"
	ServiceHighlights      Service = "Мелирование"
	ServicePerm            Service = "Химическая завивка"
	ServiceKeratinStraight Service = "Кератиновое выпрямление"
)

// DefaultService is preselected on a fresh booking form.
const DefaultService = ServiceHaircut

var ErrUnknownService = errors.New("unknown service")

// BaseServices are offered by the booking form.
var BaseServices = []Service{ServiceHaircut, ServiceColoring, ServiceStyling, ServiceManicure}

// ExtendedServices is the full catalog, base set first.
var ExtendedServices = []Service{
	ServiceHaircut, ServiceColoring, ServiceStyling, ServiceManicure,
	ServicePedicure, ServiceSpa, ServiceHighlights, ServicePerm, ServiceKeratinStraight,
}

// display durations; booking length is always AppointmentDuration
var serviceDurations = map[Service]time.Duration{
	ServiceHaircut:         45 * time.Minute,
	ServiceColoring:        120 * time.Minute,
	ServiceStyling:         30 * time.Minute,
	ServiceManicure:        60 * time.Minute,
	ServicePedicure:        75 * time.Minute,
	ServiceSpa:             90 * time.Minute,
	ServiceHighlights:      150 * time.Minute,
	ServicePerm:            180 * time.Minute,
	ServiceKeratinStraight: 120 * time.Minute,
}

// Valid reports whether s belongs to the extended catalog.
func (s Service) Valid() bool {
	_, ok := serviceDurations[s]
	return ok
}

// DisplayDuration is the advertised length of the service. It is shown to
// the user only.
func (s Service) DisplayDuration() time.Duration {
	return serviceDurations[s]
}

// ParseService maps user input to a Service.
func ParseService(name string) (Service, error) {
	s := Service(name)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownService, name)
	}
	return s, nil
}

// ServicePrice is one row of GET /services-with-prices/.
type ServicePrice struct {
	Name  Service         `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Duration returns the display duration of the priced service.
func (p ServicePrice) Duration() time.Duration {
	return p.Name.DisplayDuration()
}
