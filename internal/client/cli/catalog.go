package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/services"
)

func (a *App) Salons(ctx context.Context, _ []string) error {
	salons, err := a.catalog.Salons(ctx)
	if err != nil {
		return err
	}
	if len(salons) == 0 {
		fmt.Fprintln(a.out, "Салонов пока нет")
		return nil
	}
	for _, s := range salons {
		fmt.Fprintf(a.out, "%d. %s, %s\n", s.ID, s.Name, s.Address)
	}
	return nil
}

func (a *App) Salon(ctx context.Context, args []string) error {
	id, err := parseID(args, "salon")
	if err != nil {
		return err
	}
	s, err := a.catalog.Salon(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s\n", s.Name, s.Address)
	if len(s.Masters) == 0 {
		fmt.Fprintln(a.out, "Мастеров нет")
		return nil
	}
	fmt.Fprintln(a.out, "Мастера:")
	for _, m := range s.Masters {
		fmt.Fprintf(a.out, "  %d. %s\n", m.ID, masterLine(m))
	}
	return nil
}

func masterLine(m models.Master) string {
	line := m.Name
	if m.Specialization != "" {
		line += ", " + m.Specialization
	}
	if m.Experience != "" {
		line += " (" + m.Experience + ")"
	}
	return line
}

func (a *App) Masters(ctx context.Context, args []string) error {
	var salonID *int64
	if len(args) > 0 {
		id, err := parseID(args, "masters")
		if err != nil {
			return err
		}
		salonID = &id
	}
	masters, err := a.catalog.Masters(ctx, salonID)
	if err != nil {
		return err
	}
	for _, m := range masters {
		fmt.Fprintf(a.out, "%d. %s [салон %d]\n", m.ID, masterLine(m), m.SalonID)
	}
	return nil
}

func (a *App) Master(ctx context.Context, args []string) error {
	id, err := parseID(args, "master")
	if err != nil {
		return err
	}
	m, err := a.catalog.Master(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, masterLine(*m))
	fmt.Fprintf(a.out, "Записаться: book %d\n", m.ID)
	return nil
}

func (a *App) Map(ctx context.Context, _ []string) error {
	markers, err := a.catalog.Markers(ctx)
	if err != nil {
		return err
	}
	for _, mk := range markers {
		fmt.Fprintf(a.out, "%s (%.6f, %.6f)\n  https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=16/%.6f/%.6f\n",
			mk.Title, mk.Lat, mk.Lon, mk.Lat, mk.Lon, mk.Lat, mk.Lon)
	}
	return nil
}

func (a *App) Services(ctx context.Context, _ []string) error {
	list, err := a.catalog.Services(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Fprintf(a.out, "%-24s %8s ₽  ~%d мин\n", s.Name, s.Price.StringFixed(0), int(s.Duration.Minutes()))
	}
	return nil
}

func (a *App) Slots(ctx context.Context, args []string) error {
	id, err := parseID(args, "slots")
	if err != nil {
		return err
	}
	day := time.Now().In(a.loc)
	if len(args) > 1 {
		day, err = time.ParseInLocation(services.DateLayout, args[1], a.loc)
		if err != nil {
			return &usageError{msg: "Дата в формате ГГГГ-ММ-ДД"}
		}
	}
	slots, err := a.catalog.Slots(ctx, id, day)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Мастер %d, %s:\n", id, day.Format(services.DateLayout))
	for _, s := range slots {
		state := "свободно"
		if !s.Available {
			state = "занято"
		}
		fmt.Fprintf(a.out, "  %s %s\n", s.Time, state)
	}
	return nil
}
