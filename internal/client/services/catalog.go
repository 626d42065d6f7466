package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/session"
	"github.com/dmitrijs2005/beautybook/internal/common"
)

// PricedService is a catalog entry with its advertised duration.
type PricedService struct {
	models.ServicePrice
	Duration time.Duration
}

// CatalogService is the read-only side: salons, masters, prices and slots.
type CatalogService interface {
	Salons(ctx context.Context) ([]models.Salon, error)
	Salon(ctx context.Context, id int64) (*models.Salon, error)
	Masters(ctx context.Context, salonID *int64) ([]models.Master, error)
	Master(ctx context.Context, id int64) (*models.Master, error)
	Services(ctx context.Context) ([]PricedService, error)
	Slots(ctx context.Context, masterID int64, date time.Time) ([]models.Slot, error)
	Markers(ctx context.Context) ([]models.Marker, error)
}

type catalogService struct {
	client api.Client
}

func NewCatalogService(client api.Client) CatalogService {
	return &catalogService{client: client}
}

func (c *catalogService) Salons(ctx context.Context) ([]models.Salon, error) {
	return c.client.ListSalons(ctx)
}

func (c *catalogService) Salon(ctx context.Context, id int64) (*models.Salon, error) {
	return c.client.GetSalon(ctx, id)
}

func (c *catalogService) Masters(ctx context.Context, salonID *int64) ([]models.Master, error) {
	return c.client.ListMasters(ctx, salonID)
}

func (c *catalogService) Master(ctx context.Context, id int64) (*models.Master, error) {
	return c.client.GetMaster(ctx, id)
}

// Services merges the server's prices with display durations. Names outside
// the known catalog are dropped.
func (c *catalogService) Services(ctx context.Context) ([]PricedService, error) {
	prices, err := c.client.ListServicePrices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PricedService, 0, len(prices))
	for _, p := range prices {
		if !p.Name.Valid() {
			continue
		}
		out = append(out, PricedService{ServicePrice: p, Duration: p.Duration()})
	}
	return out, nil
}

func (c *catalogService) Slots(ctx context.Context, masterID int64, date time.Time) ([]models.Slot, error) {
	return c.client.AvailableSlots(ctx, masterID, date)
}

// Markers places every salon on the map.
func (c *catalogService) Markers(ctx context.Context) ([]models.Marker, error) {
	salons, err := c.client.ListSalons(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Marker, 0, len(salons))
	for _, s := range salons {
		out = append(out, models.MarkerFor(s))
	}
	return out, nil
}

// Analytics is the admin dashboard.
type Analytics struct {
	Overview models.Overview
	Popular  []models.ServiceStat
}

type AnalyticsService interface {
	Dashboard(ctx context.Context) (*Analytics, error)
}

type analyticsService struct {
	client api.Client
	store  session.Store
}

func NewAnalyticsService(client api.Client, store session.Store) AnalyticsService {
	return &analyticsService{client: client, store: store}
}

// Dashboard is available to admins only.
func (a *analyticsService) Dashboard(ctx context.Context) (*Analytics, error) {
	u, err := a.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, common.ErrNotLoggedIn
	}
	if !u.IsAdmin() {
		return nil, common.ErrForbidden
	}

	overview, err := a.client.AnalyticsOverview(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := a.client.PopularServices(ctx)
	if err != nil {
		return nil, err
	}
	return &Analytics{Overview: *overview, Popular: popular}, nil
}
