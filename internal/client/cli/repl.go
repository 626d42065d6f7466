package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/services"
	"github.com/dmitrijs2005/beautybook/internal/common"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a recording stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	isAdmin(ctx context.Context) bool

	Salons(ctx context.Context, args []string) error
	Salon(ctx context.Context, args []string) error
	Masters(ctx context.Context, args []string) error
	Master(ctx context.Context, args []string) error
	Map(ctx context.Context, args []string) error
	Services(ctx context.Context, args []string) error
	Slots(ctx context.Context, args []string) error
	Book(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Register(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Команды: salons, salon <id>, masters [salon_id], master <id>, map, services, slots <master_id> [дата], book <master_id>, login, register, exit"
	helpClient = "Команды: salons, salon <id>, masters [salon_id], master <id>, map, services, slots <master_id> [дата], book <master_id>, profile, edit, whoami, logout, exit"
	helpAdmin  = helpClient + ", stats"
)

// runREPL reads one command per line from reader and dispatches it to a.
// The prompt shows statusFn(), evaluated before every command. The loop
// exits on EOF or "exit"/"quit". A handler error is printed and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		prompt := "bb> "
		if s := statusFn(); s != "" {
			prompt = "bb " + s + "> "
		}
		fmt.Fprint(w, prompt)

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var handler func(context.Context, []string) error
		switch cmd {
		case "help":
			switch {
			case a.isAdmin(ctx):
				fmt.Fprintln(w, helpAdmin)
			case a.isLoggedIn(ctx):
				fmt.Fprintln(w, helpClient)
			default:
				fmt.Fprintln(w, helpGuest)
			}
			continue
		case "salons":
			handler = a.Salons
		case "salon":
			handler = a.Salon
		case "masters":
			handler = a.Masters
		case "master":
			handler = a.Master
		case "map":
			handler = a.Map
		case "services":
			handler = a.Services
		case "slots":
			handler = a.Slots
		case "book":
			handler = a.Book
		case "login":
			handler = a.Login
		case "register":
			handler = a.Register
		case "logout":
			handler = a.Logout
		case "whoami":
			handler = a.WhoAmI
		case "profile":
			handler = a.Profile
		case "edit":
			handler = a.Edit
		case "stats":
			handler = a.Stats
		case "exit", "quit":
			fmt.Fprintln(w, "До свидания!")
			return
		default:
			fmt.Fprintln(w, "Неизвестная команда:", cmd)
			continue
		}

		if err := handler(ctx, args); err != nil {
			fmt.Fprintln(w, errorText(err))
		}
	}
}

// usageError is a malformed command line; its text is shown as is.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func errorText(err error) string {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		return ue.msg
	case errors.Is(err, common.ErrNotLoggedIn):
		return "Войдите в систему (login)"
	case errors.Is(err, common.ErrForbidden):
		return "Доступно только администратору"
	case errors.Is(err, services.ErrValidation):
		return "Заполните все поля"
	default:
		return api.Message(err)
	}
}
