package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/config"
	"github.com/dmitrijs2005/beautybook/internal/client/metrics"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/reporting"
	"github.com/dmitrijs2005/beautybook/internal/client/services"
	"github.com/dmitrijs2005/beautybook/internal/client/session"
	"github.com/dmitrijs2005/beautybook/internal/logging"
)

// Deps is everything an App needs. Logger, Metrics and Reporter may be nil.
type Deps struct {
	Client   api.Client
	Store    session.Store
	Location *time.Location
	Logger   logging.Logger
	Metrics  *metrics.Metrics
	Reporter reporting.Reporter
	In       io.Reader
	Out      io.Writer
}

type App struct {
	client    api.Client
	catalog   services.CatalogService
	booking   services.BookingService
	auth      services.AuthService
	profile   services.ProfileService
	analytics services.AnalyticsService

	store  session.Store
	loc    *time.Location
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	authForm     *services.AuthForm
	bookingForms map[int64]*services.BookingForm
}

// New builds an App over already constructed dependencies.
func New(d Deps) *App {
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	auth := services.NewAuthService(d.Client, d.Store, d.Logger, d.Metrics)
	return &App{
		client:       d.Client,
		catalog:      services.NewCatalogService(d.Client),
		booking:      services.NewBookingService(d.Client, d.Location, d.Logger, d.Metrics, d.Reporter),
		auth:         auth,
		profile:      services.NewProfileService(d.Client, d.Store),
		analytics:    services.NewAnalyticsService(d.Client, d.Store),
		store:        d.Store,
		loc:          d.Location,
		logger:       d.Logger,
		reader:       bufio.NewReader(d.In),
		out:          d.Out,
		authForm:     services.NewAuthForm(auth),
		bookingForms: make(map[int64]*services.BookingForm),
	}
}

// NewApp opens the session store and the API client described by c and
// binds them to the terminal.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, m *metrics.Metrics, r reporting.Reporter) (*App, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	store, err := session.Open(ctx, c.SessionOptions())
	if err != nil {
		return nil, fmt.Errorf("error opening session store: %w", err)
	}

	client, err := api.NewHTTPClient(c.APIBaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger),
		api.WithMetrics(m),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return New(Deps{
		Client:   client,
		Store:    store,
		Location: loc,
		Logger:   logger,
		Metrics:  m,
		Reporter: r,
		In:       os.Stdin,
		Out:      os.Stdout,
	}), nil
}

// Run checks the service is reachable and starts the REPL. It returns when
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Добро пожаловать в beautybook (help - список команд)")

	if err := a.client.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "api not reachable", "error", err)
		fmt.Fprintln(a.out, api.Message(err))
	}

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader, a.out)
}

// Close releases the session store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) currentUser(ctx context.Context) *models.User {
	u, err := a.auth.Current(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session read failed", "error", err)
		return nil
	}
	return u
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.currentUser(ctx) != nil
}

func (a *App) isAdmin(ctx context.Context) bool {
	u := a.currentUser(ctx)
	return u != nil && u.IsAdmin()
}

func (a *App) status(ctx context.Context) string {
	u := a.currentUser(ctx)
	if u == nil {
		return ""
	}
	if u.IsAdmin() {
		return fmt.Sprintf("(%s, admin)", u.Username)
	}
	return fmt.Sprintf("(%s)", u.Username)
}

type lastUsernamer interface {
	LastUsername(ctx context.Context) (string, error)
}

// lastUsername is the login prefill, when the store remembers one.
func (a *App) lastUsername(ctx context.Context) string {
	lu, ok := a.store.(lastUsernamer)
	if !ok {
		return ""
	}
	name, err := lu.LastUsername(ctx)
	if err != nil {
		return ""
	}
	return name
}
