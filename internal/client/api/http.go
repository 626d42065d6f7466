package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/beautybook/internal/client/metrics"
	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/common"
	"github.com/dmitrijs2005/beautybook/internal/logging"
)

const maxErrorBody = 64 << 10

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
	metrics *metrics.Metrics
	newID   func() string
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds every request. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logging.Discard(),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do performs one request. in is sent as JSON when non-nil; a 2xx body is
// decoded into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("op", op, "request_id", requestID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(op, 0, time.Since(started))
		log.Warn(ctx, "api request failed", "method", method, "path", path, "error", err)
		return &RequestError{Op: op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	c.metrics.ObserveRequest(op, resp.StatusCode, time.Since(started))
	log.Debug(ctx, "api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestError{Op: op, Status: resp.StatusCode, Detail: parseDetail(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn(ctx, "api response not decoded", "error", err)
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	return nil
}

// parseDetail extracts {"detail": "..."}; anything else (validation lists,
// HTML error pages) yields "".
func parseDetail(raw []byte) string {
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &e); err != nil || len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err != nil {
		return ""
	}
	return s
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, strconv.FormatInt(id, 10))
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, OpPing, http.MethodGet, "/", nil, nil, nil)
}

func (c *HTTPClient) ListSalons(ctx context.Context) ([]models.Salon, error) {
	var out []models.Salon
	if err := c.do(ctx, OpListSalons, http.MethodGet, "/salons/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetSalon(ctx context.Context, id int64) (*models.Salon, error) {
	var out models.Salon
	if err := c.do(ctx, OpGetSalon, http.MethodGet, idPath("/salons/%s", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListMasters(ctx context.Context, salonID *int64) ([]models.Master, error) {
	var q url.Values
	if salonID != nil {
		q = url.Values{"salon_id": {strconv.FormatInt(*salonID, 10)}}
	}
	var out []models.Master
	if err := c.do(ctx, OpListMasters, http.MethodGet, "/masters/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetMaster(ctx context.Context, id int64) (*models.Master, error) {
	var out models.Master
	if err := c.do(ctx, OpGetMaster, http.MethodGet, idPath("/masters/%s", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateClient(ctx context.Context, in models.NewClient) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, OpCreateClient, http.MethodPost, "/clients/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateAppointment(ctx context.Context, in models.NewAppointment) (*models.Appointment, error) {
	if err := in.Validate(); err != nil {
		return nil, &RequestError{Op: OpCreateAppointment, Err: err}
	}
	var out models.Appointment
	if err := c.do(ctx, OpCreateAppointment, http.MethodPost, "/appointments/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListAppointments(ctx context.Context, clientID int64) ([]models.Appointment, error) {
	q := url.Values{"client_id": {strconv.FormatInt(clientID, 10)}}
	var out []models.Appointment
	if err := c.do(ctx, OpListAppointments, http.MethodGet, "/appointments/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	var out models.User
	err := c.do(ctx, OpLogin, http.MethodPost, "/login/", nil, models.Credentials{Username: username, Password: password}, &out)
	if err != nil {
		ae := &AuthError{Err: err}
		var re *RequestError
		if errors.As(err, &re) {
			ae.Detail = re.Detail
		}
		return nil, ae
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) error {
	err := c.do(ctx, OpRegister, http.MethodPost, "/register/", nil, r, nil)
	var re *RequestError
	if errors.As(err, &re) {
		switch re.Status {
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			return &ValidationError{Status: re.Status, Detail: re.Detail}
		}
	}
	return err
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, OpGetUser, http.MethodGet, idPath("/users/%s", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, OpUpdateProfile, http.MethodPut, idPath("/users/%s", id), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetClientByUser(ctx context.Context, userID int64) (*models.Client, error) {
	var out *models.Client
	if err := c.do(ctx, OpGetClientByUser, http.MethodGet, idPath("/users/%s/client", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListServicePrices(ctx context.Context) ([]models.ServicePrice, error) {
	var out []models.ServicePrice
	if err := c.do(ctx, OpListServicePrices, http.MethodGet, "/services-with-prices/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AvailableSlots(ctx context.Context, masterID int64, date time.Time) ([]models.Slot, error) {
	q := url.Values{"date": {date.Format(time.DateOnly)}}
	var out []models.Slot
	if err := c.do(ctx, OpAvailableSlots, http.MethodGet, idPath("/masters/%s/available-slots", masterID), q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AnalyticsOverview(ctx context.Context) (*models.Overview, error) {
	var out models.Overview
	if err := c.do(ctx, OpAnalyticsOverview, http.MethodGet, "/api/analytics/overview", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PopularServices(ctx context.Context) ([]models.ServiceStat, error) {
	var out []models.ServiceStat
	if err := c.do(ctx, OpPopularServices, http.MethodGet, "/api/analytics/popular-services", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Client = (*HTTPClient)(nil)
