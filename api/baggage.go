package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/baggage"
	"github.com/gin-gonic/gin"
)

type BaggageHandler struct {
	service baggage.BaggageUseCase
}

type checkInBaggageRequest struct {
	TagID      string            `json:"tag_id" binding:"required"`
	BookingID  string            `json:"booking_id" binding:"required"`
	WeightKG   float64           `json:"weight_kg"`
	Location   string            `json:"location"`
	Priority   bool              `json:"priority"`
	OwnerID    string            `json:"owner_id"`
	Dimensions domain.Dimensions `json:"dimensions"`
}

type locationRequest struct {
	Location string `json:"location" binding:"required"`
}

var baggageStatuses = []domain.BaggageStatus{
	domain.BaggageStatusCreated,
	domain.BaggageStatusCheckedIn,
	domain.BaggageStatusLoaded,
	domain.BaggageStatusUnloaded,
	domain.BaggageStatusLost,
	domain.BaggageStatusDelivered,
}

func NewBaggageHandler(service baggage.BaggageUseCase) *BaggageHandler {
	return &BaggageHandler{service: service}
}

func (h *BaggageHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.checkIn)
	router.GET("/", h.listForBooking)
	router.GET("/stats", h.stats)
	router.GET("/:tag", h.get)
	router.PUT("/:tag/load", h.load)
	router.PUT("/:tag/unload", h.unload)
	router.PUT("/:tag/deliver", h.deliver)
	router.PUT("/:tag/lost", h.lost)
}

func (h *BaggageHandler) checkIn(c *gin.Context) {
	var req checkInBaggageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.service.CheckInBaggage(c.Request.Context(), baggage.CheckInInput{
		TagID:      req.TagID,
		BookingID:  req.BookingID,
		WeightKG:   req.WeightKG,
		Location:   req.Location,
		Priority:   req.Priority,
		OwnerID:    req.OwnerID,
		Dimensions: req.Dimensions,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *BaggageHandler) listForBooking(c *gin.Context) {
	bookingID := c.Query("booking_id")
	if bookingID == "" {
		writeError(c, domain.InvalidArgumentf("booking_id query parameter is required"))
		return
	}
	items, err := h.service.FindByBooking(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *BaggageHandler) stats(c *gin.Context) {
	ctx := c.Request.Context()
	counts := make(map[domain.BaggageStatus]int, len(baggageStatuses))
	for _, status := range baggageStatuses {
		n, err := h.service.CountByStatus(ctx, status)
		if err != nil {
			writeError(c, err)
			return
		}
		counts[status] = n
	}
	total, err := h.service.TotalWeight(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"by_status": counts, "total_weight_kg": total})
}

func (h *BaggageHandler) get(c *gin.Context) {
	item, err := h.service.GetBaggage(c.Request.Context(), c.Param("tag"))
	respondBaggage(c, item, err)
}

func (h *BaggageHandler) load(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.service.LoadToAircraft(c.Request.Context(), c.Param("tag"), req.Location)
	respondBaggage(c, item, err)
}

func (h *BaggageHandler) unload(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.service.Unload(c.Request.Context(), c.Param("tag"), req.Location)
	respondBaggage(c, item, err)
}

func (h *BaggageHandler) deliver(c *gin.Context) {
	item, err := h.service.Deliver(c.Request.Context(), c.Param("tag"))
	respondBaggage(c, item, err)
}

func (h *BaggageHandler) lost(c *gin.Context) {
	item, err := h.service.MarkLost(c.Request.Context(), c.Param("tag"))
	respondBaggage(c, item, err)
}

func respondBaggage(c *gin.Context, item *domain.BaggageItem, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
