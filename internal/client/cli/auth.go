package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/beautybook/internal/client/services"
	"github.com/dmitrijs2005/beautybook/internal/common"
)

// Login reads credentials and logs in. The username is prefilled from a
// failed attempt, then from the last successful one.
func (a *App) Login(ctx context.Context, args []string) error {
	f := a.authForm
	if f.Mode != services.ModeLogin {
		f.Toggle()
	}

	def := f.Username
	if len(args) > 0 {
		def = args[0]
	}
	if def == "" {
		def = a.lastUsername(ctx)
	}

	var err error
	if f.Username, err = GetTextWithDefault(a.reader, "Логин", def, a.out); err != nil {
		return err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	common.WipeByteArray(f.Password)
	f.Password = pw

	res := f.Submit(ctx)
	fmt.Fprintln(a.out, res.Message)
	return nil
}

func (a *App) Register(ctx context.Context, _ []string) error {
	f := a.authForm
	if f.Mode != services.ModeRegister {
		f.Toggle()
	}

	var err error
	if f.Username, err = GetTextWithDefault(a.reader, "Логин", f.Username, a.out); err != nil {
		return err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	common.WipeByteArray(f.Password)
	f.Password = pw
	if f.Name, err = GetTextWithDefault(a.reader, "Имя", f.Name, a.out); err != nil {
		return err
	}

	res := f.Submit(ctx)
	fmt.Fprintln(a.out, res.Message)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Вы вышли из системы")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u := a.currentUser(ctx)
	if u == nil {
		return common.ErrNotLoggedIn
	}
	fmt.Fprintf(a.out, "%s (%s), роль: %s\n", u.Name, u.Username, u.Role)
	return nil
}
