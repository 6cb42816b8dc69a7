package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusFor maps a domain error kind onto the HTTP status returned to clients.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAlreadyExists, domain.KindStateConflict:
		return http.StatusConflict
	case domain.KindInvalidArgument, domain.KindCurrencyMismatch:
		return http.StatusBadRequest
	case domain.KindAuthorizationFailed:
		return http.StatusPaymentRequired
	case domain.KindAccessDenied, domain.KindInvalidBadge:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"kind":  domain.KindOf(err).String(),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": domain.KindInvalidArgument.String()})
}

type moneyRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

func (r moneyRequest) toMoney() (domain.Money, error) {
	return domain.MoneyFromString(r.Amount, r.Currency)
}
