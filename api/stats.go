package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/stats"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	service stats.StatsUseCase
}

type statsResponse struct {
	domain.Statistics
	OnTimePercent              float64 `json:"on_time_percent"`
	BaggageLossRate            float64 `json:"baggage_loss_rate"`
	AveragePassengersPerFlight float64 `json:"average_passengers_per_flight"`
}

func NewStatsHandler(service stats.StatsUseCase) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.snapshot)
}

func (h *StatsHandler) snapshot(c *gin.Context) {
	s, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, statsResponse{
		Statistics:                 *s,
		OnTimePercent:              s.OnTimePercent(),
		BaggageLossRate:            s.BaggageLossRate(),
		AveragePassengersPerFlight: s.AveragePassengersPerFlight(),
	})
}
