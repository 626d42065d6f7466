package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
)

// fakeAPI реализует api.Client и записывает порядок вызовов.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	ClientRet *models.Client
	ClientErr error
	// если задан, CreateClient ждёт закрытия канала
	ClientGate chan struct{}
	ClientSeen chan struct{}

	AppointmentRet *models.Appointment
	AppointmentErr error

	LoginRet *models.User
	LoginErr error

	RegisterErr error

	UpdateRet *models.User
	UpdateErr error

	ClientByUserRet *models.Client
	ClientByUserErr error
	AppointmentsRet []models.Appointment

	SalonsRet []models.Salon
	PricesRet []models.ServicePrice
	SlotsRet  []models.Slot

	OverviewRet *models.Overview
	PopularRet  []models.ServiceStat

	LastNewClient      models.NewClient
	LastNewAppointment models.NewAppointment
	LastLoginUser      string
	LastLoginPassword  string
	LastRegistration   models.Registration
	LastUpdateID       int64
	LastUpdate         models.ProfileUpdate
	LastSlotsDate      time.Time
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Ping(ctx context.Context) error { f.record("Ping"); return nil }

func (f *fakeAPI) ListSalons(ctx context.Context) ([]models.Salon, error) {
	f.record("ListSalons")
	return f.SalonsRet, nil
}

func (f *fakeAPI) GetSalon(ctx context.Context, id int64) (*models.Salon, error) {
	f.record("GetSalon")
	for _, s := range f.SalonsRet {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, &api.RequestError{Op: api.OpGetSalon, Status: 404, Detail: "Salon not found"}
}

func (f *fakeAPI) ListMasters(ctx context.Context, salonID *int64) ([]models.Master, error) {
	f.record("ListMasters")
	return nil, nil
}

func (f *fakeAPI) GetMaster(ctx context.Context, id int64) (*models.Master, error) {
	f.record("GetMaster")
	return &models.Master{ID: id}, nil
}

func (f *fakeAPI) CreateClient(ctx context.Context, c models.NewClient) (*models.Client, error) {
	f.record("CreateClient")
	f.mu.Lock()
	f.LastNewClient = c
	f.mu.Unlock()
	if f.ClientSeen != nil {
		close(f.ClientSeen)
	}
	if f.ClientGate != nil {
		<-f.ClientGate
	}
	if f.ClientErr != nil {
		return nil, f.ClientErr
	}
	return f.ClientRet, nil
}

func (f *fakeAPI) CreateAppointment(ctx context.Context, a models.NewAppointment) (*models.Appointment, error) {
	f.record("CreateAppointment")
	f.mu.Lock()
	f.LastNewAppointment = a
	f.mu.Unlock()
	if f.AppointmentErr != nil {
		return nil, f.AppointmentErr
	}
	return f.AppointmentRet, nil
}

func (f *fakeAPI) ListAppointments(ctx context.Context, clientID int64) ([]models.Appointment, error) {
	f.record("ListAppointments")
	return f.AppointmentsRet, nil
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*models.User, error) {
	f.record("Login")
	f.LastLoginUser, f.LastLoginPassword = username, password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeAPI) Register(ctx context.Context, r models.Registration) error {
	f.record("Register")
	f.LastRegistration = r
	return f.RegisterErr
}

func (f *fakeAPI) GetUser(ctx context.Context, id int64) (*models.User, error) {
	f.record("GetUser")
	return nil, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) (*models.User, error) {
	f.record("UpdateProfile")
	f.LastUpdateID, f.LastUpdate = id, p
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return f.UpdateRet, nil
}

func (f *fakeAPI) GetClientByUser(ctx context.Context, userID int64) (*models.Client, error) {
	f.record("GetClientByUser")
	return f.ClientByUserRet, f.ClientByUserErr
}

func (f *fakeAPI) ListServicePrices(ctx context.Context) ([]models.ServicePrice, error) {
	f.record("ListServicePrices")
	return f.PricesRet, nil
}

func (f *fakeAPI) AvailableSlots(ctx context.Context, masterID int64, date time.Time) ([]models.Slot, error) {
	f.record("AvailableSlots")
	f.LastSlotsDate = date
	return f.SlotsRet, nil
}

func (f *fakeAPI) AnalyticsOverview(ctx context.Context) (*models.Overview, error) {
	f.record("AnalyticsOverview")
	return f.OverviewRet, nil
}

func (f *fakeAPI) PopularServices(ctx context.Context) ([]models.ServiceStat, error) {
	f.record("PopularServices")
	return f.PopularRet, nil
}

var _ api.Client = (*fakeAPI)(nil)

// recordingReporter captures what would go to Sentry.
type recordingReporter struct {
	errs   []error
	extras []map[string]any
}

func (r *recordingReporter) Capture(err error, extra map[string]any) {
	r.errs = append(r.errs, err)
	r.extras = append(r.extras, extra)
}

func (r *recordingReporter) Flush() {}
