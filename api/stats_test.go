package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/stats"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsHandler_Snapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)

	flightRepo := repository.NewFlightRepository()
	flightRepo.Add("F1", domain.Flight{ID: "F1", Status: domain.FlightStatusScheduled})
	flightRepo.Add("F2", domain.Flight{ID: "F2", Status: domain.FlightStatusDelayed})
	flightRepo.Add("F3", domain.Flight{ID: "F3", Status: domain.FlightStatusArrived})
	bookingRepo := repository.NewBookingRepository()
	bookingRepo.Add("B1", *domain.NewBooking("B1", "P1", "F1", nil))
	bookingRepo.Add("B2", *domain.NewBooking("B2", "P2", "F1", nil))

	service := stats.NewStatsService(flightRepo, bookingRepo, repository.NewBaggageRepository(), repository.NewLoyaltyRepository())
	router := gin.New()
	NewStatsHandler(service).Register(router.Group("/stats"))

	w := do(t, router, http.MethodGet, "/stats/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3.0, body["total_flights"])
	assert.Equal(t, 66.67, body["on_time_percent"])
	assert.Equal(t, 0.67, body["average_passengers_per_flight"])
	assert.Equal(t, 0.0, body["baggage_loss_rate"])
}
