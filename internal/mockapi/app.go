package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/beautybook/internal/logging"
	"github.com/dmitrijs2005/beautybook/internal/mockapi/config"
)

// App runs the mock service over HTTP until a signal or context
// cancellation, then drains in-flight requests.
type App struct {
	config *config.Config
	logger logging.Logger
	store  *Store
	router *gin.Engine
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	store := NewStore(c.BcryptCost)
	if c.Seed {
		if err := Seed(store); err != nil {
			return nil, fmt.Errorf("seed init error: %w", err)
		}
	}
	router := NewRouter(NewHandler(store, logger), logger)
	return &App{config: c, logger: logger, store: store, router: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.ListenAddr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: app.router, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "mock api listening", "addr", ln.Addr().String(), "seeded", app.config.Seed)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
