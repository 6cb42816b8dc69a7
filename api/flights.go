package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	now     func() time.Time
}

type scheduleFlightRequest struct {
	ID            string          `json:"id" binding:"required"`
	Origin        string          `json:"origin" binding:"required"`
	Destination   string          `json:"destination" binding:"required"`
	DepartureTime time.Time       `json:"departure_time"`
	ArrivalTime   time.Time       `json:"arrival_time"`
	DistanceKM    int             `json:"distance_km"`
	Aircraft      domain.Aircraft `json:"aircraft"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type delayRequest struct {
	Minutes int `json:"minutes"`
}

type assignGateRequest struct {
	GateID string `json:"gate_id" binding:"required"`
}

type registerGateRequest struct {
	ID                    string `json:"id" binding:"required"`
	TerminalCode          string `json:"terminal_code" binding:"required"`
	SupportsInternational bool   `json:"supports_international"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service, now: func() time.Time { return time.Now().UTC() }}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.schedule)
	router.GET("/route", h.findByRoute)
	router.GET("/upcoming", h.upcoming)
	router.GET("/day", h.flightsOn)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
	router.DELETE("/:id/schedule", h.remove)
	router.PUT("/:id/status", h.updateStatus)
	router.POST("/:id/delay", h.delay)
	router.PUT("/:id/gate", h.assignGate)
	router.PUT("/:id/seats/:seat", h.reserveSeat)
	router.DELETE("/:id/seats/:seat", h.releaseSeat)
}

// RegisterGates mounts gate management, which lives with flights because only
// flights occupy gates.
func (h *FlightHandler) RegisterGates(router *gin.RouterGroup) {
	router.POST("/", h.registerGate)
}

func (h *FlightHandler) list(c *gin.Context) {
	found, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *FlightHandler) schedule(c *gin.Context) {
	var req scheduleFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := h.service.ScheduleFlight(c.Request.Context(), domain.Flight{
		ID:            req.ID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		DistanceKM:    req.DistanceKM,
		Aircraft:      req.Aircraft,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	respondFlight(c, flight, err)
}

func (h *FlightHandler) findByRoute(c *gin.Context) {
	origin, destination := c.Query("origin"), c.Query("destination")
	if origin == "" || destination == "" {
		writeError(c, domain.InvalidArgumentf("origin and destination query parameters are required"))
		return
	}
	found, err := h.service.FindByRoute(c.Request.Context(), origin, destination)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *FlightHandler) upcoming(c *gin.Context) {
	found, err := h.service.UpcomingFlights(c.Request.Context(), h.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// flightsOn lists departures for ?date=YYYY-MM-DD, UTC.
func (h *FlightHandler) flightsOn(c *gin.Context) {
	day, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		writeError(c, domain.InvalidArgumentf("date must be YYYY-MM-DD"))
		return
	}
	found, err := h.service.FlightsOn(c.Request.Context(), day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *FlightHandler) remove(c *gin.Context) {
	if err := h.service.RemoveFlight(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) cancel(c *gin.Context) {
	flight, err := h.service.CancelFlight(c.Request.Context(), c.Param("id"))
	respondFlight(c, flight, err)
}

func (h *FlightHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), domain.FlightStatus(req.Status))
	respondFlight(c, flight, err)
}

func (h *FlightHandler) delay(c *gin.Context) {
	var req delayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := h.service.Delay(c.Request.Context(), c.Param("id"), req.Minutes)
	respondFlight(c, flight, err)
}

func (h *FlightHandler) assignGate(c *gin.Context) {
	var req assignGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := h.service.AssignGate(c.Request.Context(), c.Param("id"), req.GateID)
	respondFlight(c, flight, err)
}

func (h *FlightHandler) reserveSeat(c *gin.Context) {
	flight, err := h.service.ReserveSeat(c.Request.Context(), c.Param("id"), c.Param("seat"))
	respondFlight(c, flight, err)
}

func (h *FlightHandler) releaseSeat(c *gin.Context) {
	flight, err := h.service.ReleaseSeat(c.Request.Context(), c.Param("id"), c.Param("seat"))
	respondFlight(c, flight, err)
}

func (h *FlightHandler) registerGate(c *gin.Context) {
	var req registerGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	gate := domain.NewGate(req.ID, req.TerminalCode)
	gate.SupportsInternational = req.SupportsInternational

	created, err := h.service.RegisterGate(c.Request.Context(), *gate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func respondFlight(c *gin.Context, flight *domain.Flight, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}
