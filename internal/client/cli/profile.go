package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/beautybook/internal/common"
)

const displayLayout = "2006-01-02 15:04"

func (a *App) Profile(ctx context.Context, _ []string) error {
	p, err := a.profile.Show(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s), роль: %s\n", p.User.Name, p.User.Username, p.User.Role)
	if p.Client == nil {
		fmt.Fprintln(a.out, "Записей нет")
		return nil
	}
	fmt.Fprintf(a.out, "Телефон: %s\n", p.Client.Phone)
	if len(p.Appointments) == 0 {
		fmt.Fprintln(a.out, "Записей нет")
		return nil
	}
	fmt.Fprintln(a.out, "Мои записи:")
	for _, v := range p.Appointments {
		state := "завершена"
		if v.Upcoming {
			state = "предстоит"
		}
		fmt.Fprintf(a.out, "  %s  %s, мастер %d [%s]\n", v.StartTime.In(a.loc).Format(displayLayout), v.Service, v.MasterID, state)
	}
	return nil
}

func (a *App) Edit(ctx context.Context, _ []string) error {
	u := a.currentUser(ctx)
	if u == nil {
		return common.ErrNotLoggedIn
	}

	name, err := GetTextWithDefault(a.reader, "Имя", u.Name, a.out)
	if err != nil {
		return err
	}
	username, err := GetTextWithDefault(a.reader, "Логин", u.Username, a.out)
	if err != nil {
		return err
	}

	if _, err := a.profile.Update(ctx, name, username); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Профиль обновлён")
	return nil
}

func (a *App) Stats(ctx context.Context, _ []string) error {
	d, err := a.analytics.Dashboard(ctx)
	if err != nil {
		return err
	}
	o := d.Overview
	fmt.Fprintf(a.out, "Салонов: %d\nМастеров: %d\nКлиентов: %d\n", o.TotalSalons, o.TotalMasters, o.TotalClients)
	fmt.Fprintf(a.out, "Записей: %d (за 30 дней: %d, предстоит: %d, сегодня: %d)\n",
		o.TotalAppointments, o.RecentAppointments, o.UpcomingAppointments, o.TodayAppointments)
	if len(d.Popular) > 0 {
		fmt.Fprintln(a.out, "Популярные услуги:")
		for _, s := range d.Popular {
			fmt.Fprintf(a.out, "  %-24s %d\n", s.Service, s.Count)
		}
	}
	return nil
}
