package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/beautybook/internal/client/api"
	"github.com/dmitrijs2005/beautybook/internal/client/metrics"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/client/reporting"
	"github.com/dmitrijs2005/beautybook/internal/logging"
)

// Input layouts of the booking form.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultTime = "10:00"
)

// TimeOptions are the start times offered by the booking form.
var TimeOptions = []string{"10:00", "11:00", "12:00", "14:00", "15:00", "16:00"}

var (
	// ErrValidation matches every *FieldError.
	ErrValidation = errors.New("invalid booking request")
	// ErrSubmissionInFlight is returned by a Submit issued while the
	// previous one on the same form has not finished.
	ErrSubmissionInFlight = errors.New("submission already in progress")
)

// BookingRequest is what the booking form collects. Date and Time are kept
// as entered and interpreted in the viewer's time zone.
type BookingRequest struct {
	Name     string
	Phone    string
	Date     string
	Time     string
	Service  models.Service
	MasterID int64
	SalonID  int64
}

// Reasons a field is rejected.
const (
	ReasonRequired = "required"
	ReasonFormat   = "bad format"
	ReasonUnknown  = "unknown value"
)

// FieldError reports one unusable form field. No remote call is made.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool { return target == ErrValidation }

// Stage names the remote step a booking failed at.
type Stage string

const (
	StageClient      Stage = "create_client"
	StageAppointment Stage = "create_appointment"
)

// BookingError is a failure of the first step. Nothing was created.
type BookingError struct {
	Stage Stage
	Err   error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("booking failed at %s: %v", e.Stage, e.Err)
}

func (e *BookingError) Unwrap() error { return e.Err }

// PartialCompletionError means the client record was created but the
// appointment was not. The client is left in place; Client carries its id.
type PartialCompletionError struct {
	Client models.Client
	Err    error
}

func (e *PartialCompletionError) Error() string {
	return fmt.Sprintf("client %d created but appointment failed: %v", e.Client.ID, e.Err)
}

func (e *PartialCompletionError) Unwrap() error { return e.Err }

// Confirmation is a completed booking.
type Confirmation struct {
	Client      models.Client
	Appointment models.Appointment
	Message     string
}

// BookingService creates a client record and then an appointment for it.
type BookingService interface {
	Book(ctx context.Context, req BookingRequest) (*Confirmation, error)
}

type bookingService struct {
	client   api.Client
	loc      *time.Location
	logger   logging.Logger
	metrics  *metrics.Metrics
	reporter reporting.Reporter
}

// NewBookingService binds the workflow to an API client. Times are read in
// loc (time.Local when nil). logger, m and r may be nil.
func NewBookingService(client api.Client, loc *time.Location, logger logging.Logger, m *metrics.Metrics, r reporting.Reporter) BookingService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if r == nil {
		r = reporting.Nop()
	}
	return &bookingService{client: client, loc: loc, logger: logger, metrics: m, reporter: r}
}

// validate checks the form and resolves the appointment start.
func (s *bookingService) validate(req BookingRequest) (time.Time, error) {
	if strings.TrimSpace(req.Name) == "" {
		return time.Time{}, &FieldError{Field: "name", Reason: ReasonRequired}
	}
	if strings.TrimSpace(req.Phone) == "" {
		return time.Time{}, &FieldError{Field: "phone", Reason: ReasonRequired}
	}
	if !req.Service.Valid() {
		return time.Time{}, &FieldError{Field: "service", Reason: ReasonUnknown}
	}
	if req.MasterID <= 0 {
		return time.Time{}, &FieldError{Field: "master", Reason: ReasonRequired}
	}
	if req.SalonID <= 0 {
		return time.Time{}, &FieldError{Field: "salon", Reason: ReasonRequired}
	}
	if strings.TrimSpace(req.Date) == "" {
		return time.Time{}, &FieldError{Field: "date", Reason: ReasonRequired}
	}
	if _, err := time.Parse(DateLayout, req.Date); err != nil {
		return time.Time{}, &FieldError{Field: "date", Reason: ReasonFormat}
	}
	if strings.TrimSpace(req.Time) == "" {
		return time.Time{}, &FieldError{Field: "time", Reason: ReasonRequired}
	}
	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, req.Date+" "+req.Time, s.loc)
	if err != nil {
		return time.Time{}, &FieldError{Field: "time", Reason: ReasonFormat}
	}
	return start, nil
}

func (s *bookingService) Book(ctx context.Context, req BookingRequest) (*Confirmation, error) {
	start, err := s.validate(req)
	if err != nil {
		s.metrics.Booking(metrics.OutcomeInvalid)
		return nil, err
	}
	end := start.Add(models.AppointmentDuration)

	log := s.logger.With("master_id", req.MasterID, "salon_id", req.SalonID)

	client, err := s.client.CreateClient(ctx, models.NewClient{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		SalonID: req.SalonID,
	})
	if err != nil {
		s.metrics.Booking(metrics.OutcomeClientFailed)
		log.Warn(ctx, "client creation failed", "error", err)
		return nil, &BookingError{Stage: StageClient, Err: err}
	}

	appt, err := s.client.CreateAppointment(ctx, models.NewAppointment{
		MasterID:  req.MasterID,
		ClientID:  client.ID,
		StartTime: start,
		EndTime:   end,
		Service:   req.Service,
	})
	if err != nil {
		s.metrics.Booking(metrics.OutcomeAppointmentFailed)
		log.Error(ctx, "appointment creation failed, client record left orphaned",
			"client_id", client.ID, "error", err)
		s.reporter.Capture(err, map[string]any{
			"stage":     string(StageAppointment),
			"client_id": client.ID,
			"master_id": req.MasterID,
			"salon_id":  req.SalonID,
			"start":     start.Format(time.RFC3339),
		})
		return nil, &PartialCompletionError{Client: *client, Err: err}
	}

	s.metrics.Booking(metrics.OutcomeSuccess)
	log.Info(ctx, "appointment booked", "client_id", client.ID, "appointment_id", appt.ID)

	return &Confirmation{
		Client:      *client,
		Appointment: *appt,
		Message:     fmt.Sprintf("Спасибо, %s! Вы записаны на %s в %s", strings.TrimSpace(req.Name), req.Date, req.Time),
	}, nil
}

var fieldLabels = map[string]string{
	"name":    "Ваше имя",
	"phone":   "Телефон",
	"date":    "Дата",
	"time":    "Время",
	"service": "Услуга",
	"master":  "Мастер",
	"salon":   "Салон",

	"username": "Логин",
}

var fieldFormats = map[string]string{
	"date": "ГГГГ-ММ-ДД",
	"time": "ЧЧ:ММ",
}

// BookingFailureMessage renders a Book error for the user.
func BookingFailureMessage(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		switch fe.Reason {
		case ReasonFormat:
			return "Поле «" + fieldLabels[fe.Field] + "» в формате " + fieldFormats[fe.Field]
		case ReasonUnknown:
			return "Выберите значение поля «" + fieldLabels[fe.Field] + "» из списка"
		}
		return "Заполните поле «" + fieldLabels[fe.Field] + "»"
	}
	if errors.Is(err, ErrSubmissionInFlight) {
		return "Запись уже отправляется, подождите"
	}
	return "Ошибка при записи: " + api.Message(err)
}

// Result is what a form submission hands to the view.
type Result struct {
	OK           bool
	Message      string
	Confirmation *Confirmation
	Err          error
}

// BookingForm is the state of one booking form bound to a master and salon.
// A form accepts one submission at a time. The fields belong to the caller
// between submissions and must not be written while Submit runs.
type BookingForm struct {
	Name    string
	Phone   string
	Date    string
	Time    string
	Service models.Service

	masterID int64
	salonID  int64

	submitting atomic.Bool
	svc        BookingService
}

func NewBookingForm(svc BookingService, masterID, salonID int64) *BookingForm {
	return &BookingForm{
		Time:     DefaultTime,
		Service:  models.DefaultService,
		masterID: masterID,
		salonID:  salonID,
		svc:      svc,
	}
}

func (f *BookingForm) MasterID() int64 { return f.masterID }
func (f *BookingForm) SalonID() int64  { return f.salonID }

// Submitting reports whether a submission is in flight.
func (f *BookingForm) Submitting() bool {
	return f.submitting.Load()
}

// Submit books with the current field values. On success Name, Phone and
// Date are cleared and Time and Service kept. On failure nothing changes.
func (f *BookingForm) Submit(ctx context.Context) Result {
	if !f.submitting.CompareAndSwap(false, true) {
		return Result{Message: BookingFailureMessage(ErrSubmissionInFlight), Err: ErrSubmissionInFlight}
	}
	defer f.submitting.Store(false)

	req := BookingRequest{
		Name:     f.Name,
		Phone:    f.Phone,
		Date:     f.Date,
		Time:     f.Time,
		Service:  f.Service,
		MasterID: f.masterID,
		SalonID:  f.salonID,
	}

	conf, err := f.svc.Book(ctx, req)
	if err != nil {
		return Result{Message: BookingFailureMessage(err), Err: err}
	}

	f.Name, f.Phone, f.Date = "", "", ""

	return Result{OK: true, Message: conf.Message, Confirmation: conf}
}
