package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/metrics"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/session"
)

// brokenStore отказывает на запись.
type brokenStore struct {
	session.MemoryStore
}

func (b *brokenStore) Set(context.Context, models.User) error { return errors.New("disk full") }

var maria = models.User{ID: 2, Username: "maria", Name: "Мария", Role: models.RoleClient}

func TestAuthService_LoginStoresSnapshot(t *testing.T) {
	fa := &fakeAPI{LoginRet: &maria}
	store := session.NewMemoryStore()
	m := metrics.New()
	svc := NewAuthService(fa, store, nil, m)

	u, err := svc.Login(context.Background(), "maria", []byte("12345"))
	require.NoError(t, err)
	assert.Equal(t, maria, *u)
	assert.Equal(t, "maria", fa.LastLoginUser)
	assert.Equal(t, "12345", fa.LastLoginPassword)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, maria, *got)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("login", metrics.OutcomeSuccess)))
}

func TestAuthService_FailedLoginWritesNothing(t *testing.T) {
	fa := &fakeAPI{LoginErr: &api.AuthError{Detail: "Invalid credentials"}}
	store := session.NewMemoryStore()
	svc := NewAuthService(fa, store, nil, nil)

	u, err := svc.Login(context.Background(), "maria", []byte("wrong"))
	require.ErrorIs(t, err, api.ErrAuthenticationFailed)
	assert.Nil(t, u)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthService_FailedLoginKeepsPreviousSession(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), maria))

	fa := &fakeAPI{LoginErr: &api.AuthError{}}
	_, err := NewAuthService(fa, store, nil, nil).Login(context.Background(), "ivan", []byte("x"))
	require.Error(t, err)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, maria, *got)
}

func TestAuthService_StoreFailure(t *testing.T) {
	fa := &fakeAPI{LoginRet: &maria}
	_, err := NewAuthService(fa, &brokenStore{}, nil, nil).Login(context.Background(), "maria", []byte("12345"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

func TestAuthService_RegisterAlwaysClientRole(t *testing.T) {
	fa := &fakeAPI{}
	store := session.NewMemoryStore()

	err := NewAuthService(fa, store, nil, nil).Register(context.Background(), "olga", []byte("pw"), "Ольга")
	require.NoError(t, err)
	assert.Equal(t, models.Registration{Username: "olga", Password: "pw", Name: "Ольга", Role: models.RoleClient}, fa.LastRegistration)

	got, _ := store.Get(context.Background())
	assert.Nil(t, got, "registration does not log in")
}

func TestAuthService_LogoutAndCurrent(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewAuthService(&fakeAPI{}, store, nil, nil)
	require.NoError(t, store.Set(context.Background(), maria))

	u, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, maria, *u)

	require.NoError(t, svc.Logout(context.Background()))
	u, err = svc.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAuthForm_ToggleClearsEverything(t *testing.T) {
	f := NewAuthForm(NewAuthService(&fakeAPI{}, session.NewMemoryStore(), nil, nil))
	f.Username, f.Password, f.Name, f.Error = "maria", []byte("12345"), "Мария", "old error"
	pw := f.Password

	f.Toggle()
	assert.Equal(t, ModeRegister, f.Mode)
	assert.True(t, f.Empty())
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, pw, "password bytes are wiped")

	f.Username = "x"
	f.Toggle()
	assert.Equal(t, ModeLogin, f.Mode)
	assert.True(t, f.Empty())

	// два переключения подряд дают пустую форму в исходном режиме
	f.Toggle()
	f.Toggle()
	assert.Equal(t, ModeLogin, f.Mode)
	assert.True(t, f.Empty())
}

func TestAuthForm_LoginSuccess(t *testing.T) {
	store := session.NewMemoryStore()
	f := NewAuthForm(NewAuthService(&fakeAPI{LoginRet: &maria}, store, nil, nil))
	f.Username, f.Password = "maria", []byte("12345")

	res := f.Submit(context.Background())
	require.True(t, res.OK)
	assert.Equal(t, "Добро пожаловать, Мария!", res.Message)
	assert.True(t, f.Empty())

	got, _ := store.Get(context.Background())
	assert.Equal(t, maria, *got)
}

func TestAuthForm_LoginFailureKeepsFields(t *testing.T) {
	store := session.NewMemoryStore()
	fa := &fakeAPI{LoginErr: &api.AuthError{Detail: "Invalid credentials"}}
	f := NewAuthForm(NewAuthService(fa, store, nil, nil))
	f.Username, f.Password = "maria", []byte("wrong")

	res := f.Submit(context.Background())
	require.False(t, res.OK)
	assert.Equal(t, "Неверный логин или пароль", f.Error)
	assert.Equal(t, "maria", f.Username)
	assert.Equal(t, []byte("wrong"), f.Password)
	assert.Equal(t, ModeLogin, f.Mode)

	got, _ := store.Get(context.Background())
	assert.Nil(t, got)
}

func TestAuthForm_LoginRequiresFields(t *testing.T) {
	fa := &fakeAPI{}
	f := NewAuthForm(NewAuthService(fa, session.NewMemoryStore(), nil, nil))
	f.Username = "maria"

	res := f.Submit(context.Background())
	require.ErrorIs(t, res.Err, ErrValidation)
	assert.Equal(t, "Заполните все поля", f.Error)
	assert.Empty(t, fa.Calls())
}

func TestAuthForm_RegisterSuccessSwitchesToLogin(t *testing.T) {
	fa := &fakeAPI{}
	f := NewAuthForm(NewAuthService(fa, session.NewMemoryStore(), nil, nil))
	f.Toggle()
	f.Username, f.Password, f.Name = "olga", []byte("pw"), "Ольга"

	res := f.Submit(context.Background())
	require.True(t, res.OK)
	assert.Equal(t, ModeLogin, f.Mode)
	assert.True(t, f.Empty())
	assert.Equal(t, "Регистрация успешна! Теперь войдите в систему.", f.Info)
}

func TestAuthForm_RegisterFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server detail", &api.ValidationError{Status: 400, Detail: "Username already exists"}, "Username already exists"},
		{"validation without detail", &api.ValidationError{Status: 422}, "Ошибка регистрации"},
		{"other failure", &api.RequestError{Op: api.OpRegister, Status: 500}, "Ошибка регистрации"},
		{"server error with detail", &api.RequestError{Op: api.OpRegister, Status: 500, Detail: "База данных недоступна"}, "База данных недоступна"},
		{"network", &api.RequestError{Op: api.OpRegister, Err: api.ErrUnavailable}, "Ошибка регистрации"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAuthForm(NewAuthService(&fakeAPI{RegisterErr: tt.err}, session.NewMemoryStore(), nil, nil))
			f.Toggle()
			f.Username, f.Password, f.Name = "olga", []byte("pw"), "Ольга"

			res := f.Submit(context.Background())
			require.False(t, res.OK)
			assert.Equal(t, tt.want, f.Error)
			assert.Equal(t, ModeRegister, f.Mode)
			assert.Equal(t, "olga", f.Username)
		})
	}
}

func TestAuthForm_RegisterServerErrorShowsDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"База данных недоступна"}`))
	}))
	defer srv.Close()

	client, err := api.NewHTTPClient(srv.URL)
	require.NoError(t, err)

	f := NewAuthForm(NewAuthService(client, session.NewMemoryStore(), nil, nil))
	f.Toggle()
	f.Username, f.Password, f.Name = "olga", []byte("pw"), "Ольга"

	res := f.Submit(context.Background())
	require.False(t, res.OK)
	assert.Equal(t, "База данных недоступна", f.Error)
	assert.Equal(t, ModeRegister, f.Mode)
}

func TestAuthMode_String(t *testing.T) {
	assert.Equal(t, "login", ModeLogin.String())
	assert.Equal(t, "register", ModeRegister.String())
}
