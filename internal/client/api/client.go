// Package api talks to the remote salon booking service.
//
// Every method issues exactly one HTTP request and never retries. Failures
// come back as *RequestError, *AuthError (login) or *ValidationError
// (registration).
package api

import (
	"context"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error

	ListSalons(ctx context.Context) ([]models.Salon, error)
	GetSalon(ctx context.Context, id int64) (*models.Salon, error)
	// ListMasters lists every master, or only those of salonID when it is set.
	ListMasters(ctx context.Context, salonID *int64) ([]models.Master, error)
	GetMaster(ctx context.Context, id int64) (*models.Master, error)

	CreateClient(ctx context.Context, c models.NewClient) (*models.Client, error)
	CreateAppointment(ctx context.Context, a models.NewAppointment) (*models.Appointment, error)
	ListAppointments(ctx context.Context, clientID int64) ([]models.Appointment, error)

	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, r models.Registration) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) (*models.User, error)
	// GetClientByUser returns (nil, nil) when the user has no linked client.
	GetClientByUser(ctx context.Context, userID int64) (*models.Client, error)

	ListServicePrices(ctx context.Context) ([]models.ServicePrice, error)
	AvailableSlots(ctx context.Context, masterID int64, date time.Time) ([]models.Slot, error)

	AnalyticsOverview(ctx context.Context) (*models.Overview, error)
	PopularServices(ctx context.Context) ([]models.ServiceStat, error)
}
