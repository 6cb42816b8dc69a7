package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/security"
	"github.com/gin-gonic/gin"
)

type SecurityHandler struct {
	service security.SecurityUseCase
}

type issueBadgeRequest struct {
	BadgeID  string          `json:"badge_id" binding:"required"`
	Employee domain.Employee `json:"employee"`
}

type changeLevelRequest struct {
	Level string `json:"level" binding:"required"`
}

type checkpointRequest struct {
	BadgeID       string `json:"badge_id"`
	CheckpointID  string `json:"checkpoint_id" binding:"required"`
	Name          string `json:"name"`
	RequiredLevel string `json:"required_level" binding:"required"`
}

func NewSecurityHandler(service security.SecurityUseCase) *SecurityHandler {
	return &SecurityHandler{service: service}
}

func (h *SecurityHandler) Register(router *gin.RouterGroup) {
	router.POST("/badges", h.issue)
	router.GET("/badges/:id", h.get)
	router.PUT("/badges/:id/level", h.changeLevel)
	router.DELETE("/badges/:id", h.revoke)
	router.POST("/checkpoints", h.pass)
}

func (h *SecurityHandler) issue(c *gin.Context) {
	var req issueBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	badge, err := h.service.IssueBadge(c.Request.Context(), req.BadgeID, req.Employee)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, badge)
}

func (h *SecurityHandler) get(c *gin.Context) {
	badge, err := h.service.GetBadge(c.Request.Context(), c.Param("id"))
	respondBadge(c, badge, err)
}

func (h *SecurityHandler) changeLevel(c *gin.Context) {
	var req changeLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	level, err := domain.ParseSecurityLevel(req.Level)
	if err != nil {
		writeError(c, err)
		return
	}
	badge, err := h.service.ChangeLevel(c.Request.Context(), c.Param("id"), level)
	respondBadge(c, badge, err)
}

func (h *SecurityHandler) revoke(c *gin.Context) {
	badge, err := h.service.RevokeBadge(c.Request.Context(), c.Param("id"))
	respondBadge(c, badge, err)
}

func (h *SecurityHandler) pass(c *gin.Context) {
	var req checkpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	level, err := domain.ParseSecurityLevel(req.RequiredLevel)
	if err != nil {
		writeError(c, err)
		return
	}
	checkpoint := domain.Checkpoint{ID: req.CheckpointID, Name: req.Name, RequiredLevel: level}

	if err := h.service.CheckAccess(c.Request.Context(), req.BadgeID, checkpoint); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "passed", "checkpoint": checkpoint.Describe()})
}

func respondBadge(c *gin.Context, badge *domain.AccessBadge, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, badge)
}
