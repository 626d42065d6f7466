package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/metrics"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/session"
	"github.com/dmitrijs2005/beautybook/internal/common"
	"github.com/dmitrijs2005/beautybook/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and store the user snapshot.
//     Nothing is written to the session store when login fails.
//   - Register: create an account with the client role. Does not log in.
//   - Logout: clear the session store.
//   - Current: the stored user, or nil when nobody is logged in.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Register(ctx context.Context, username string, password []byte, name string) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.User, error)
}

type authService struct {
	client  api.Client
	store   session.Store
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewAuthService constructs an AuthService bound to the API client and the
// session store. logger and m may be nil.
func NewAuthService(client api.Client, store session.Store, logger logging.Logger, m *metrics.Metrics) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: client, store: store, logger: logger, metrics: m}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	user, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		a.metrics.Auth("login", metrics.OutcomeFailed)
		a.logger.Info(ctx, "login failed", "username", username, "error", err)
		return nil, err
	}

	if err := a.store.Set(ctx, *user); err != nil {
		a.metrics.Auth("login", metrics.OutcomeFailed)
		return nil, fmt.Errorf("save session: %w", err)
	}

	a.metrics.Auth("login", metrics.OutcomeSuccess)
	a.logger.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (a *authService) Register(ctx context.Context, username string, password []byte, name string) error {
	err := a.client.Register(ctx, models.Registration{
		Username: username,
		Password: string(password),
		Name:     name,
		Role:     models.RoleClient,
	})
	if err != nil {
		a.metrics.Auth("register", metrics.OutcomeFailed)
		return err
	}
	a.metrics.Auth("register", metrics.OutcomeSuccess)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.User, error) {
	return a.store.Get(ctx)
}

// AuthMode selects which submission an AuthForm performs.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

func (m AuthMode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

const (
	msgFillAllFields      = "Заполните все поля"
	msgRegistrationFailed = "Ошибка регистрации"
	msgRegistered         = "Регистрация успешна! Теперь войдите в систему."
	msgSessionFailed      = "Не удалось сохранить сессию"
)

// AuthForm is the login/registration form: two modes over one field set.
type AuthForm struct {
	Mode     AuthMode
	Username string
	Password []byte
	Name     string

	// Error is the failure shown in place; Info is a one-off notice.
	Error string
	Info  string

	submitting atomic.Bool
	svc        AuthService
}

func NewAuthForm(svc AuthService) *AuthForm {
	return &AuthForm{svc: svc}
}

// Toggle switches mode and clears every field and message.
func (f *AuthForm) Toggle() {
	if f.Mode == ModeLogin {
		f.Mode = ModeRegister
	} else {
		f.Mode = ModeLogin
	}
	f.reset()
	f.Info = ""
}

func (f *AuthForm) reset() {
	f.Username = ""
	common.WipeByteArray(f.Password)
	f.Password = nil
	f.Name = ""
	f.Error = ""
}

// Empty reports whether no field or error is set.
func (f *AuthForm) Empty() bool {
	return f.Username == "" && len(f.Password) == 0 && f.Name == "" && f.Error == ""
}

// AuthResult is what an AuthForm submission hands to the view.
type AuthResult struct {
	OK      bool
	Message string
	User    *models.User
	Err     error
}

// Submit performs the action of the current mode.
func (f *AuthForm) Submit(ctx context.Context) AuthResult {
	if !f.submitting.CompareAndSwap(false, true) {
		return AuthResult{Err: ErrSubmissionInFlight}
	}
	defer f.submitting.Store(false)

	f.Error, f.Info = "", ""

	if f.Mode == ModeRegister {
		return f.register(ctx)
	}
	return f.login(ctx)
}

func (f *AuthForm) login(ctx context.Context) AuthResult {
	if strings.TrimSpace(f.Username) == "" || len(f.Password) == 0 {
		f.Error = msgFillAllFields
		return AuthResult{Message: f.Error, Err: ErrValidation}
	}

	user, err := f.svc.Login(ctx, f.Username, f.Password)
	if err != nil {
		if errors.Is(err, api.ErrAuthenticationFailed) {
			f.Error = api.Message(err)
		} else {
			f.Error = msgSessionFailed
		}
		return AuthResult{Message: f.Error, Err: err}
	}

	f.reset()
	return AuthResult{OK: true, Message: "Добро пожаловать, " + user.Name + "!", User: user}
}

func (f *AuthForm) register(ctx context.Context) AuthResult {
	if strings.TrimSpace(f.Username) == "" || len(f.Password) == 0 || strings.TrimSpace(f.Name) == "" {
		f.Error = msgFillAllFields
		return AuthResult{Message: f.Error, Err: ErrValidation}
	}

	if err := f.svc.Register(ctx, f.Username, f.Password, f.Name); err != nil {
		f.Error = registrationFailureMessage(err)
		return AuthResult{Message: f.Error, Err: err}
	}

	f.Mode = ModeLogin
	f.reset()
	f.Info = msgRegistered
	return AuthResult{OK: true, Message: msgRegistered}
}

// registrationFailureMessage shows whatever detail the server sent with the
// rejection, whatever the status.
func registrationFailureMessage(err error) string {
	var ve *api.ValidationError
	if errors.As(err, &ve) && ve.Detail != "" {
		return ve.Detail
	}
	var re *api.RequestError
	if errors.As(err, &re) && re.Detail != "" {
		return re.Detail
	}
	return msgRegistrationFailed
}
