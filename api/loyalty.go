package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/loyalty"
	"github.com/gin-gonic/gin"
)

type LoyaltyHandler struct {
	service loyalty.LoyaltyUseCase
}

type enrollRequest struct {
	Number string `json:"number" binding:"required"`
}

type pointsRequest struct {
	Points int64 `json:"points"`
}

func NewLoyaltyHandler(service loyalty.LoyaltyUseCase) *LoyaltyHandler {
	return &LoyaltyHandler{service: service}
}

func (h *LoyaltyHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.enroll)
	router.GET("/:number", h.get)
	router.POST("/:number/points", h.addPoints)
	router.POST("/:number/redemptions", h.redeem)
}

func (h *LoyaltyHandler) enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	account, err := h.service.Enroll(c.Request.Context(), req.Number)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *LoyaltyHandler) get(c *gin.Context) {
	account, err := h.service.Get(c.Request.Context(), c.Param("number"))
	respondAccount(c, account, err)
}

func (h *LoyaltyHandler) addPoints(c *gin.Context) {
	var req pointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	account, err := h.service.AddPoints(c.Request.Context(), c.Param("number"), req.Points)
	respondAccount(c, account, err)
}

func (h *LoyaltyHandler) redeem(c *gin.Context) {
	var req pointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	account, err := h.service.RedeemPoints(c.Request.Context(), c.Param("number"), req.Points)
	respondAccount(c, account, err)
}

func respondAccount(c *gin.Context, account *domain.LoyaltyAccount, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}
