package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/session"
	"github.com/dmitrijs2005/beautybook/internal/common"
)

// AppointmentView is an appointment marked relative to the time it was read.
type AppointmentView struct {
	models.Appointment
	Upcoming bool
}

// Profile is the logged-in user with the linked client record (if any) and
// its appointments, newest first.
type Profile struct {
	User         models.User
	Client       *models.Client
	Appointments []AppointmentView
}

type ProfileService interface {
	Show(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, name, username string) (*models.User, error)
}

type profileService struct {
	client api.Client
	store  session.Store
	now    func() time.Time
}

func NewProfileService(client api.Client, store session.Store) ProfileService {
	return &profileService{client: client, store: store, now: time.Now}
}

func (p *profileService) currentUser(ctx context.Context) (*models.User, error) {
	u, err := p.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if u == nil {
		return nil, common.ErrNotLoggedIn
	}
	return u, nil
}

func (p *profileService) Show(ctx context.Context) (*Profile, error) {
	u, err := p.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	prof := &Profile{User: *u}

	client, err := p.client.GetClientByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return prof, nil
	}
	prof.Client = client

	appts, err := p.client.ListAppointments(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	now := p.now()
	for _, a := range appts {
		prof.Appointments = append(prof.Appointments, AppointmentView{Appointment: a, Upcoming: a.Upcoming(now)})
	}
	sort.SliceStable(prof.Appointments, func(i, j int) bool {
		return prof.Appointments[i].StartTime.After(prof.Appointments[j].StartTime.Time)
	})
	return prof, nil
}

// Update renames the logged-in user, keeping the current role, and writes
// the server's copy back to the session store.
func (p *profileService) Update(ctx context.Context, name, username string) (*models.User, error) {
	u, err := p.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	name, username = strings.TrimSpace(name), strings.TrimSpace(username)
	if name == "" {
		return nil, &FieldError{Field: "name", Reason: ReasonRequired}
	}
	if username == "" {
		return nil, &FieldError{Field: "username", Reason: ReasonRequired}
	}

	updated, err := p.client.UpdateProfile(ctx, u.ID, models.ProfileUpdate{Name: name, Username: username, Role: u.Role})
	if err != nil {
		return nil, err
	}
	if err := p.store.Set(ctx, *updated); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return updated, nil
}
