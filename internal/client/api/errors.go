package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is a transport failure: unreachable host, refused
	// connection, timeout.
	ErrUnavailable = errors.New("server unavailable")
	// ErrDecode means the service answered 2xx with a body we could not read.
	ErrDecode = errors.New("malformed response")
	// ErrAuthenticationFailed matches every *AuthError.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Operation names, used in errors, logs and metrics.
const (
	OpPing              = "ping"
	OpListSalons        = "list_salons"
	OpGetSalon          = "get_salon"
	OpListMasters       = "list_masters"
	OpGetMaster         = "get_master"
	OpCreateClient      = "create_client"
	OpCreateAppointment = "create_appointment"
	OpListAppointments  = "list_appointments"
	OpLogin             = "login"
	OpRegister          = "register"
	OpGetUser           = "get_user"
	OpUpdateProfile     = "update_profile"
	OpGetClientByUser   = "get_client_by_user"
	OpListServicePrices = "list_service_prices"
	OpAvailableSlots    = "available_slots"
	OpAnalyticsOverview = "analytics_overview"
	OpPopularServices   = "popular_services"
)

// Static per-operation texts shown to the user. The server body is never
// shown for these.
var userMessages = map[string]string{
	OpPing:              "Сервис недоступен",
	OpListSalons:        "Ошибка при получении салонов",
	OpGetSalon:          "Ошибка при получении салона",
	OpListMasters:       "Ошибка при получении мастеров",
	OpGetMaster:         "Ошибка при получении мастера",
	OpCreateClient:      "Ошибка при создании клиента",
	OpCreateAppointment: "Ошибка при создании записи",
	OpListAppointments:  "Ошибка при получении записей",
	OpLogin:             "Неверный логин или пароль",
	OpRegister:          "Ошибка регистрации",
	OpGetUser:           "Ошибка при получении пользователя",
	OpUpdateProfile:     "Ошибка обновления",
	OpGetClientByUser:   "Ошибка при получении клиента",
	OpListServicePrices: "Ошибка при получении услуг",
	OpAvailableSlots:    "Ошибка при получении свободного времени",
	OpAnalyticsOverview: "Ошибка при получении статистики",
	OpPopularServices:   "Ошибка при получении статистики",
}

// UserMessage returns the static text for op.
func UserMessage(op string) string {
	if m, ok := userMessages[op]; ok {
		return m
	}
	return "Ошибка запроса"
}

// RequestError is any failed call. Status is 0 when no response was
// received (Err is then ErrUnavailable) or when the body could not be
// decoded (Err is ErrDecode).
type RequestError struct {
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) UserMessage() string { return UserMessage(e.Op) }

// AuthError is a failed login. Bad credentials and transport failures are
// one kind for the caller; Err keeps the underlying cause.
type AuthError struct {
	Detail string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return "authentication failed: " + e.Detail
	}
	return "authentication failed"
}

func (e *AuthError) Is(target error) bool { return target == ErrAuthenticationFailed }

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) UserMessage() string { return UserMessage(OpLogin) }

// ValidationError is a registration rejected by the server, typically a
// duplicate username. Detail is the server's text, verbatim.
type ValidationError struct {
	Status int
	Detail string
}

func (e *ValidationError) Error() string {
	return "registration rejected: " + e.Detail
}

func (e *ValidationError) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return UserMessage(OpRegister)
}

// Message turns any error from this package into text for the user.
func Message(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	if errors.Is(err, ErrUnavailable) {
		return UserMessage(OpPing)
	}
	return err.Error()
}
