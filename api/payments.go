package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/loyalty"
	"github.com/Domenick1991/airport/internal/service/payment"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments payment.PaymentUseCase
	bookings booking.BookingUseCase
	loyalty  loyalty.LoyaltyUseCase
	logger   *zap.Logger
}

type chargeRequest struct {
	BookingID     string       `json:"booking_id" binding:"required"`
	Amount        moneyRequest `json:"amount"`
	Card          domain.Card  `json:"card"`
	LoyaltyNumber string       `json:"loyalty_number"`
}

type splitRequest struct {
	BookingID string       `json:"booking_id" binding:"required"`
	Total     moneyRequest `json:"total"`
	Parts     int          `json:"parts"`
	Card      domain.Card  `json:"card"`
}

type transferRequest struct {
	From   domain.Card  `json:"from"`
	To     domain.Card  `json:"to"`
	Amount moneyRequest `json:"amount"`
}

type chargeResponse struct {
	Payment *domain.Payment        `json:"payment"`
	Booking *bookingResponse       `json:"booking,omitempty"`
	Loyalty *domain.LoyaltyAccount `json:"loyalty,omitempty"`
}

// NewPaymentHandler wires checkout: a successful charge marks the booking
// paid and, when a loyalty service is given, credits points.
func NewPaymentHandler(payments payment.PaymentUseCase, bookings booking.BookingUseCase, accounts loyalty.LoyaltyUseCase, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{payments: payments, bookings: bookings, loyalty: accounts, logger: logger}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.charge)
	router.GET("/", h.listForBooking)
	router.POST("/split", h.split)
	router.POST("/transfer", h.transfer)
	router.GET("/:id", h.get)
	router.POST("/:id/refund", h.refund)
}

func (h *PaymentHandler) charge(c *gin.Context) {
	var req chargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	amount, err := req.Amount.toMoney()
	if err != nil {
		writeError(c, err)
		return
	}
	ctx := c.Request.Context()

	if _, err := h.bookings.GetBooking(ctx, req.BookingID); err != nil {
		writeError(c, err)
		return
	}

	p, err := h.payments.ChargeCard(ctx, req.BookingID, amount, req.Card)
	if err != nil {
		if p != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error(), "kind": domain.KindOf(err).String(), "payment": p})
			return
		}
		writeError(c, err)
		return
	}

	b, err := h.bookings.MarkPaid(ctx, req.BookingID, p.ID)
	if err != nil {
		if _, refundErr := h.payments.RefundPayment(ctx, p.ID); refundErr != nil {
			h.logger.Error("refund after failed checkout",
				zap.String("payment_id", p.ID),
				zap.Error(refundErr))
		}
		writeError(c, err)
		return
	}

	resp := chargeResponse{Payment: p}
	br := newBookingResponse(b)
	resp.Booking = &br

	if req.LoyaltyNumber != "" && h.loyalty != nil {
		account, err := h.loyalty.AccrueForPayment(ctx, req.LoyaltyNumber, *p)
		if err != nil {
			h.logger.Warn("loyalty accrual skipped",
				zap.String("loyalty_number", req.LoyaltyNumber),
				zap.String("payment_id", p.ID),
				zap.Error(err))
		} else {
			resp.Loyalty = account
		}
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PaymentHandler) split(c *gin.Context) {
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	total, err := req.Total.toMoney()
	if err != nil {
		writeError(c, err)
		return
	}

	payments, err := h.payments.SplitPayment(c.Request.Context(), req.BookingID, total, req.Parts, req.Card)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "kind": domain.KindOf(err).String(), "payments": payments})
		return
	}
	c.JSON(http.StatusCreated, payments)
}

func (h *PaymentHandler) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	amount, err := req.Amount.toMoney()
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.payments.TransferBetweenCards(c.Request.Context(), req.From, req.To, amount); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "transferred", "amount": amount})
}

func (h *PaymentHandler) get(c *gin.Context) {
	p, err := h.payments.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) listForBooking(c *gin.Context) {
	bookingID := c.Query("booking_id")
	if bookingID == "" {
		writeError(c, domain.InvalidArgumentf("booking_id query parameter is required"))
		return
	}
	payments, err := h.payments.PaymentsForBooking(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) refund(c *gin.Context) {
	p, err := h.payments.RefundPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
