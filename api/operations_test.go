package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/airport/internal/idgen"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/baggage"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/loyalty"
	"github.com/Domenick1991/airport/internal/service/payment"
	"github.com/Domenick1991/airport/internal/service/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOperationsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ids := idgen.NewSequence()
	bookings := booking.NewBookingService(repository.NewBookingRepository(), repository.NewTicketRepository(), booking.WithIDGenerator(ids))
	payments := payment.NewPaymentService(repository.NewPaymentRepository(), "USD", payment.WithIDGenerator(ids))
	accounts := loyalty.NewLoyaltyService(repository.NewLoyaltyRepository())

	router := gin.New()
	NewBookingHandler(bookings).Register(router.Group("/bookings"))
	NewPaymentHandler(payments, bookings, accounts, nil).Register(router.Group("/payments"))
	NewBaggageHandler(baggage.NewBaggageService(repository.NewBaggageRepository(), 32)).Register(router.Group("/baggage"))
	NewSecurityHandler(security.NewSecurityService(repository.NewBadgeRepository())).Register(router.Group("/security"))
	NewLoyaltyHandler(accounts).Register(router.Group("/loyalty"))
	return router
}

const card = `{"number":"4111111111111111","holder":"Jane Doe","expiration":"12/29"}`

func TestPaymentHandler_Checkout(t *testing.T) {
	router := newOperationsRouter(t)

	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/loyalty/", `{"number":"LOY1"}`).Code)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/bookings/", `{"passenger_id":"P1","flight_id":"F1"}`).Code)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPut, "/bookings/BKG1", "").Code)

	w := do(t, router, http.MethodPost, "/payments/",
		`{"booking_id":"BKG1","amount":{"amount":"450.75","currency":"USD"},"card":`+card+`,"loyalty_number":"LOY1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Payment struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"payment"`
		Booking bookingResponse `json:"booking"`
		Loyalty struct {
			Points int64 `json:"points"`
		} `json:"loyalty"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "COMPLETED", resp.Payment.Status)
	assert.Equal(t, "COMPLETED", resp.Booking.Status)
	assert.Equal(t, []string{resp.Payment.ID}, resp.Booking.PaymentIDs)
	assert.Equal(t, int64(450), resp.Loyalty.Points)

	w = do(t, router, http.MethodPost, "/payments/",
		`{"booking_id":"BKG1","amount":{"amount":"10","currency":"USD"},"card":`+card+`}`)
	assert.Equal(t, http.StatusConflict, w.Code, "booking already paid")

	w = do(t, router, http.MethodGet, "/payments/?booking_id=BKG1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	statuses := []string{list[0].Status, list[1].Status}
	assert.ElementsMatch(t, []string{"COMPLETED", "REFUNDED"}, statuses, "second charge was refunded")
}

func TestPaymentHandler_DeclinedCharge(t *testing.T) {
	router := newOperationsRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/bookings/", `{"passenger_id":"P1","flight_id":"F1"}`).Code)

	w := do(t, router, http.MethodPost, "/payments/",
		`{"booking_id":"BKG1","amount":{"amount":"15000","currency":"USD"},"card":`+card+`}`)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var body struct {
		Kind    string `json:"kind"`
		Payment struct {
			Status string `json:"status"`
		} `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "AUTHORIZATION_FAILED", body.Kind)
	assert.Equal(t, "DECLINED", body.Payment.Status)

	w = do(t, router, http.MethodPost, "/payments/",
		`{"booking_id":"BKG1","amount":{"amount":"10","currency":"EUR"},"card":`+card+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CURRENCY_MISMATCH")

	w = do(t, router, http.MethodPost, "/payments/",
		`{"booking_id":"BKG404","amount":{"amount":"10","currency":"USD"},"card":`+card+`}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_SplitRefundTransfer(t *testing.T) {
	router := newOperationsRouter(t)

	w := do(t, router, http.MethodPost, "/payments/split",
		`{"booking_id":"BKG9","total":{"amount":"100","currency":"USD"},"parts":3,"card":`+card+`}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var shares []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shares))
	require.Len(t, shares, 3)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/payments/"+shares[0].ID+"/refund", "").Code)
	assert.Equal(t, http.StatusPaymentRequired, do(t, router, http.MethodPost, "/payments/"+shares[0].ID+"/refund", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/payments/PAY404", "").Code)

	w = do(t, router, http.MethodPost, "/payments/transfer",
		`{"from":`+card+`,"to":`+card+`,"amount":{"amount":"20000","currency":"USD"}}`)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestBaggageHandler_Flow(t *testing.T) {
	router := newOperationsRouter(t)

	w := do(t, router, http.MethodPost, "/baggage/", `{"tag_id":"TAG1","booking_id":"BKG1","weight_kg":33,"location":"DESK"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/baggage/TAG1", "").Code)

	w = do(t, router, http.MethodPost, "/baggage/", `{"tag_id":"TAG1","booking_id":"BKG1","weight_kg":20.5,"location":"DESK"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodPut, "/baggage/TAG1/load", `{"location":"HOLD-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"LOADED"`)

	w = do(t, router, http.MethodPut, "/baggage/TAG1/lost", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"LOST"`)

	w = do(t, router, http.MethodGet, "/baggage/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		ByStatus      map[string]int `json:"by_status"`
		TotalWeightKG float64        `json:"total_weight_kg"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.ByStatus["LOST"])
	assert.Equal(t, 0, stats.ByStatus["LOADED"])
	assert.InDelta(t, 20.5, stats.TotalWeightKG, 1e-9)

	w = do(t, router, http.MethodGet, "/baggage/?booking_id=BKG1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TAG1")
}

func TestSecurityHandler_Checkpoint(t *testing.T) {
	router := newOperationsRouter(t)

	w := do(t, router, http.MethodPost, "/security/badges",
		`{"badge_id":"BADGE1","employee":{"id":"E1","name":"Kim","role":"GROUND_STAFF","active":true}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"level":"STAFF"`)

	pass := func(level string) int {
		return do(t, router, http.MethodPost, "/security/checkpoints",
			`{"badge_id":"BADGE1","checkpoint_id":"CP1","name":"Apron","required_level":"`+level+`"}`).Code
	}
	assert.Equal(t, http.StatusOK, pass("STAFF"))
	assert.Equal(t, http.StatusForbidden, pass("RESTRICTED"))
	assert.Equal(t, http.StatusBadRequest, pass("COSMIC"))

	require.Equal(t, http.StatusOK, do(t, router, http.MethodPut, "/security/badges/BADGE1/level", `{"level":"RESTRICTED"}`).Code)
	assert.Equal(t, http.StatusOK, pass("RESTRICTED"))

	require.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, "/security/badges/BADGE1", "").Code)
	assert.Equal(t, http.StatusForbidden, pass("PUBLIC"))

	w = do(t, router, http.MethodPost, "/security/checkpoints", `{"badge_id":"","checkpoint_id":"CP1","required_level":"PUBLIC"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_BADGE")
}

func TestLoyaltyHandler_Points(t *testing.T) {
	router := newOperationsRouter(t)

	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/loyalty/", `{"number":"LOY1"}`).Code)
	assert.Equal(t, http.StatusConflict, do(t, router, http.MethodPost, "/loyalty/", `{"number":"LOY1"}`).Code)

	w := do(t, router, http.MethodPost, "/loyalty/LOY1/points", `{"points":50000}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tier":"GOLD"`)

	w = do(t, router, http.MethodPost, "/loyalty/LOY1/redemptions", `{"points":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tier":"SILVER"`)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/loyalty/LOY1/redemptions", `{"points":999999}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/loyalty/LOY2", "").Code)
}
