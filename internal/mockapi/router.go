package mockapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/beautybook/internal/common"
	"github.com/dmitrijs2005/beautybook/internal/logging"
)

// AllowedOrigins are the web front-ends allowed by CORS.
var AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// requestID echoes X-Request-ID, generating one when the caller sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(common.RequestIDHeader, id)
		c.Set(common.RequestIDHeader, id)
		c.Next()
	}
}

func accessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(started),
			"request_id", c.GetString(common.RequestIDHeader),
		)
	}
}

// NewRouter wires every endpoint of the booking service onto a gin engine.
func NewRouter(h *Handler, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", common.RequestIDHeader},
		ExposeHeaders:    []string{common.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.GET("/", h.Root)

	r.GET("/salons/", h.ListSalons)
	r.GET("/salons/:id", h.GetSalon)

	r.GET("/masters/", h.ListMasters)
	r.GET("/masters/:id", h.GetMaster)
	r.GET("/masters/:id/available-slots", h.AvailableSlots)

	r.POST("/clients/", h.CreateClient)

	r.GET("/appointments/", h.ListAppointments)
	r.POST("/appointments/", h.CreateAppointment)

	r.POST("/register/", h.Register)
	r.POST("/login/", h.Login)

	r.GET("/users/:id", h.GetUser)
	r.PUT("/users/:id", h.UpdateUser)
	r.GET("/users/:id/client", h.GetUserClient)

	r.GET("/services-with-prices/", h.ServicePrices)

	analytics := r.Group("/api/analytics")
	{
		analytics.GET("/overview", h.AnalyticsOverview)
		analytics.GET("/popular-services", h.PopularServices)
	}

	return r
}
