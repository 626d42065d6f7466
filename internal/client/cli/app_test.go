package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/session"
	"github.com/dmitrijs2005/beautybook/internal/logging"
	"github.com/dmitrijs2005/beautybook/internal/mockapi"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// passwords подменяет ввод пароля: по одному значению на вызов.
func passwords(t *testing.T, pws ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	i := 0
	readPassword = func(int) ([]byte, error) {
		pw := pws[i%len(pws)]
		i++
		return []byte(pw), nil
	}
}

func newTestApp(t *testing.T, store session.Store, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	ms := mockapi.NewStore(bcrypt.MinCost)
	require.NoError(t, mockapi.Seed(ms))
	srv := httptest.NewServer(mockapi.NewRouter(mockapi.NewHandler(ms, logging.Discard()), logging.Discard()))
	t.Cleanup(srv.Close)

	client, err := api.NewHTTPClient(srv.URL)
	require.NoError(t, err)

	var out bytes.Buffer
	app := New(Deps{
		Client:   client,
		Store:    store,
		Location: time.UTC,
		In:       strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:      &out,
	})
	return app, &out
}

func TestApp_LoginBookProfileLogout(t *testing.T) {
	passwords(t, "12345")
	store := session.NewMemoryStore()
	app, out := newTestApp(t, store,
		"login", "maria",
		"whoami",
		"book 3", "Анна", "+7 900 000-00-00", "2030-03-10", "2", "4",
		"profile",
		"logout",
		"whoami",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Добро пожаловать, Мария Иванова!")
	assert.Contains(t, s, "bb (maria)> ")
	assert.Contains(t, s, "Мария Иванова (maria), роль: client")
	assert.Contains(t, s, "Запись к мастеру: Елена Сидорова")
	assert.Contains(t, s, "Спасибо, Анна! Вы записаны на 2030-03-10 в 11:00")
	assert.Contains(t, s, "Мои записи:")
	assert.Contains(t, s, "[предстоит]")
	assert.Contains(t, s, "Вы вышли из системы")
	assert.Contains(t, s, "Войдите в систему (login)")

	u, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestApp_FailedLoginKeepsUsername(t *testing.T) {
	passwords(t, "wrong", "12345")
	store := session.NewMemoryStore()
	app, out := newTestApp(t, store,
		"login", "maria",
		"whoami",
		"login", "",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Неверный логин или пароль")
	assert.Contains(t, s, "Логин [maria]", "second attempt offers the username again")
	assert.Contains(t, s, "Добро пожаловать, Мария Иванова!")

	u, err := store.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "maria", u.Username)
}

func TestApp_LoginPrefillsLastUsername(t *testing.T) {
	passwords(t, "12345")
	ctx := context.Background()

	store, err := session.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, models.User{ID: 3, Username: "ivan", Name: "Иван Петров", Role: models.RoleClient}))
	require.NoError(t, store.Clear(ctx))

	app, out := newTestApp(t, store, "login", "", "exit")
	t.Cleanup(func() { _ = app.Close() })
	app.Run(ctx)

	assert.Contains(t, out.String(), "Логин [ivan]")
	assert.Contains(t, out.String(), "Добро пожаловать, Иван Петров!")
}

func TestApp_FailedBookingKeepsForm(t *testing.T) {
	app, out := newTestApp(t, session.NewMemoryStore(),
		"book 3", "", "+7 900", "2030-03-10", "", "",
		"book 3", "Анна", "", "", "", "",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Заполните поле «Ваше имя»")
	assert.Contains(t, s, "Телефон [+7 900]")
	assert.Contains(t, s, "Дата (ГГГГ-ММ-ДД) [2030-03-10]")
	assert.Contains(t, s, "Спасибо, Анна! Вы записаны на 2030-03-10 в 10:00")
}

func TestApp_RegisterThenLogin(t *testing.T) {
	passwords(t, "pw")
	app, out := newTestApp(t, session.NewMemoryStore(),
		"register", "olga", "Ольга",
		"register", "olga", "Ольга",
		"login", "olga",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Регистрация успешна! Теперь войдите в систему.")
	assert.Contains(t, s, "Username already exists")
	assert.Contains(t, s, "Добро пожаловать, Ольга!")
}

func TestApp_CatalogViews(t *testing.T) {
	app, out := newTestApp(t, session.NewMemoryStore(),
		"salons", "salon 2", "salon 99", "masters 1", "master 1", "map", "services", "slots 1 2030-01-01", "slots 1 01.01.2030",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "2. Beauty Studio 'Жасмин', Кутузовский проспект, д. 5")
	assert.Contains(t, s, "Мастера:")
	assert.Contains(t, s, "Ошибка при получении салона")
	assert.Contains(t, s, "Анна Иванова, Парикмахер-стилист (5+ лет опыта) [салон 1]")
	assert.Contains(t, s, "Записаться: book 1")
	assert.Contains(t, s, "openstreetmap.org/?mlat=55.764276&mlon=37.606831")
	assert.Contains(t, s, "Стрижка")
	assert.Contains(t, s, "Мастер 1, 2030-01-01:")
	assert.Contains(t, s, "09:00 свободно")
	assert.Contains(t, s, "Дата в формате ГГГГ-ММ-ДД")
}

func TestApp_AdminStats(t *testing.T) {
	passwords(t, "12345", "admin")
	app, out := newTestApp(t, session.NewMemoryStore(),
		"stats",
		"login", "maria",
		"stats",
		"logout",
		"login", "admin",
		"stats",
		"edit", "Главный админ", "",
		"whoami",
		"exit",
	)

	app.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Войдите в систему (login)")
	assert.Contains(t, s, "Доступно только администратору")
	assert.Contains(t, s, "bb (admin, admin)> ")
	assert.Contains(t, s, "Салонов: 4")
	assert.Contains(t, s, "Популярные услуги:")
	assert.Contains(t, s, "Имя [Администратор]")
	assert.Contains(t, s, "Профиль обновлён")
	assert.Contains(t, s, "Главный админ (admin), роль: admin")
}
