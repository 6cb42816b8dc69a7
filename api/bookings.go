package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	PassengerID string `json:"passenger_id" binding:"required"`
	FlightID    string `json:"flight_id" binding:"required"`
	Refundable  bool   `json:"refundable"`
}

type issueTicketRequest struct {
	SeatNumber string       `json:"seat_number" binding:"required"`
	SeatClass  string       `json:"seat_class"`
	BasePrice  moneyRequest `json:"base_price"`
	FareBasis  string       `json:"fare_basis"`
	Refundable bool         `json:"refundable"`
}

type bookingResponse struct {
	ID           string   `json:"id"`
	PassengerID  string   `json:"passenger_id"`
	FlightID     string   `json:"flight_id"`
	Status       string   `json:"status"`
	TicketIDs    []string `json:"ticket_ids"`
	PaymentIDs   []string `json:"payment_ids"`
	Refundable   bool     `json:"refundable"`
	IsRefundable bool     `json:"is_refundable"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func newBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		PassengerID:  b.PassengerID,
		FlightID:     b.FlightID,
		Status:       string(b.Status),
		TicketIDs:    b.TicketIDs,
		PaymentIDs:   b.PaymentIDs,
		Refundable:   b.Refundable,
		IsRefundable: b.IsRefundable(),
		CreatedAt:    b.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.listForPassenger)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.confirm)
	router.DELETE("/:id", h.cancel)
	router.POST("/:id/checkin", h.checkIn)
	router.POST("/:id/tickets", h.issueTicket)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		PassengerID: req.PassengerID,
		FlightID:    req.FlightID,
		Refundable:  req.Refundable,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingResponse(b))
}

func (h *BookingHandler) listForPassenger(c *gin.Context) {
	passengerID := c.Query("passenger_id")
	if passengerID == "" {
		writeError(c, domain.InvalidArgumentf("passenger_id query parameter is required"))
		return
	}
	bookings, err := h.service.BookingsForPassenger(c.Request.Context(), passengerID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	h.respond(c, b, err)
}

func (h *BookingHandler) confirm(c *gin.Context) {
	b, err := h.service.ConfirmBooking(c.Request.Context(), c.Param("id"))
	h.respond(c, b, err)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	h.respond(c, b, err)
}

func (h *BookingHandler) checkIn(c *gin.Context) {
	b, err := h.service.CheckIn(c.Request.Context(), c.Param("id"))
	h.respond(c, b, err)
}

func (h *BookingHandler) issueTicket(c *gin.Context) {
	var req issueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	price, err := req.BasePrice.toMoney()
	if err != nil {
		writeError(c, err)
		return
	}
	class := domain.SeatClass(req.SeatClass)
	if class == "" {
		class = domain.SeatClassEconomy
	}

	ticket, err := h.service.IssueTicket(c.Request.Context(), c.Param("id"), booking.IssueTicketInput{
		SeatNumber: req.SeatNumber,
		SeatClass:  class,
		BasePrice:  price,
		FareBasis:  req.FareBasis,
		Refundable: req.Refundable,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *BookingHandler) respond(c *gin.Context, b *domain.Booking, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}
