package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/beautybook/internal/client/models"
	"github.com/dmitrijs2005/beautybook/internal/common"
	"github.com/dmitrijs2005/beautybook/internal/logging"
)

type Handler struct {
	store  *Store
	logger logging.Logger
}

func NewHandler(store *Store, logger logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// detail writes the {"detail": "..."} error body the client parses.
func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// unprocessable mirrors a field validation failure: detail is a list, so
// the client shows its static message.
func unprocessable(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"detail": []gin.H{{"msg": err.Error()}},
	})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		unprocessable(c, err)
		return 0, false
	}
	return id, true
}

func optionalQueryID(c *gin.Context, name string) (*int64, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		unprocessable(c, err)
		return nil, false
	}
	return &id, true
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Beauty Salon API is running!", "docs": "/docs"})
}

func (h *Handler) ListSalons(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Salons())
}

func (h *Handler) GetSalon(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s, err := h.store.Salon(id)
	if err != nil {
		detail(c, http.StatusNotFound, "Salon not found")
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) ListMasters(c *gin.Context) {
	salonID, ok := optionalQueryID(c, "salon_id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.Masters(salonID))
}

func (h *Handler) GetMaster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.store.Master(id)
	if err != nil {
		detail(c, http.StatusNotFound, "Master not found")
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		unprocessable(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.AvailableSlots(id, date))
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req models.NewClient
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, err)
		return
	}
	cl, err := h.store.AddClient(req, nil)
	if errors.Is(err, common.ErrorNotFound) {
		detail(c, http.StatusNotFound, "Salon not found")
		return
	}
	if err != nil {
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	h.logger.Info(c.Request.Context(), "client created", "client_id", cl.ID, "salon_id", cl.SalonID)
	c.JSON(http.StatusOK, cl)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req models.NewAppointment
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, err)
		return
	}
	a, err := h.store.AddAppointment(req)
	switch {
	case errors.Is(err, models.ErrInvalidTimeRange):
		unprocessable(c, err)
		return
	case errors.Is(err, common.ErrorNotFound):
		detail(c, http.StatusNotFound, err.Error())
		return
	case err != nil:
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	h.logger.Info(c.Request.Context(), "appointment created", "appointment_id", a.ID, "master_id", a.MasterID, "client_id", a.ClientID)
	c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	clientID, ok := optionalQueryID(c, "client_id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.Appointments(clientID))
}

func (h *Handler) Register(c *gin.Context) {
	var req models.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, err)
		return
	}
	if req.Role != "" && !req.Role.Valid() {
		detail(c, http.StatusBadRequest, "Invalid role")
		return
	}
	u, err := h.store.AddUser(req.Username, req.Password, req.Name, req.Role)
	if errors.Is(err, common.ErrorAlreadyExists) {
		detail(c, http.StatusBadRequest, "Username already exists")
		return
	}
	if err != nil {
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, err)
		return
	}
	u, err := h.store.Authenticate(req.Username, req.Password)
	if err != nil {
		h.logger.Warn(c.Request.Context(), "login failed", "username", req.Username)
		detail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.store.User(id)
	if err != nil {
		detail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, err)
		return
	}
	u, err := h.store.UpdateUser(id, req)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		detail(c, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, common.ErrorAlreadyExists):
		detail(c, http.StatusBadRequest, "Username already exists")
		return
	case err != nil:
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetUserClient answers JSON null when the user has no client record.
func (h *Handler) GetUserClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.ClientByUser(id))
}

func (h *Handler) ServicePrices(c *gin.Context) {
	c.JSON(http.StatusOK, ServicePrices())
}

func (h *Handler) AnalyticsOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Overview())
}

func (h *Handler) PopularServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.PopularServices())
}
