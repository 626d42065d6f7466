package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/services"
)

// bookingForm returns the form bound to m, creating it on first use. A
// form outlives a failed submission so the entered values are offered
// again.
func (a *App) bookingForm(m *models.Master) *services.BookingForm {
	f, ok := a.bookingForms[m.ID]
	if !ok {
		f = services.NewBookingForm(a.booking, m.ID, m.SalonID)
		a.bookingForms[m.ID] = f
	}
	return f
}

func (a *App) Book(ctx context.Context, args []string) error {
	id, err := parseID(args, "book")
	if err != nil {
		return err
	}
	master, err := a.catalog.Master(ctx, id)
	if err != nil {
		return err
	}
	f := a.bookingForm(master)

	fmt.Fprintf(a.out, "Запись к мастеру: %s\n", master.Name)

	if f.Name, err = GetTextWithDefault(a.reader, "Ваше имя", f.Name, a.out); err != nil {
		return err
	}
	if f.Phone, err = GetTextWithDefault(a.reader, "Телефон", f.Phone, a.out); err != nil {
		return err
	}
	if f.Date, err = GetTextWithDefault(a.reader, "Дата (ГГГГ-ММ-ДД)", f.Date, a.out); err != nil {
		return err
	}
	if f.Time, err = GetChoice(a.reader, "Время", services.TimeOptions, f.Time, a.out); err != nil {
		return err
	}

	names := make([]string, len(models.BaseServices))
	for i, s := range models.BaseServices {
		names[i] = string(s)
	}
	svc, err := GetChoice(a.reader, "Услуга", names, string(f.Service), a.out)
	if err != nil {
		return err
	}
	f.Service = models.Service(svc)

	res := f.Submit(ctx)
	fmt.Fprintln(a.out, res.Message)
	return nil
}
