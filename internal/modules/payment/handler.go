package payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"solarops/internal/middleware"
	"solarops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createInstallmentsRequest struct {
	Total float64 `json:"total" binding:"required,gt=0"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := middleware.AdminOnly()

	rg.POST("/projects/:id/payments", admin, h.createInstallments)
	rg.GET("/projects/:id/payments", h.listByProject)
	rg.GET("/payments/:id/status", h.status)
	rg.POST("/payments/:id/acknowledge", admin, h.acknowledge)
	rg.POST("/payments/:id/cash", admin, h.cashPaid)
}

func (h *Handler) createInstallments(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project ID")
		return
	}

	var req createInstallmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	payments, err := h.service.CreateInstallments(c.Request.Context(), projectID, req.Total)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payments)
}

func (h *Handler) listByProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project ID")
		return
	}
	payments, err := h.service.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.Internal(c, "Failed to load payments")
		return
	}
	response.Success(c, http.StatusOK, payments)
}

func (h *Handler) status(c *gin.Context) {
	intent, err := h.service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, intent)
}

func (h *Handler) acknowledge(c *gin.Context) {
	err := h.service.Acknowledge(c.Request.Context(), c.Param("id"), c.GetString("email"), c.ClientIP())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) cashPaid(c *gin.Context) {
	err := h.service.MarkCashPaid(c.Request.Context(), c.Param("id"), c.GetString("email"), c.ClientIP())
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Payment not found")
	case errors.Is(err, ErrGateway):
		response.Error(c, http.StatusBadGateway, "EXTERNAL_SERVICE", "Payment gateway unavailable")
	default:
		response.Internal(c, "Payment operation failed")
	}
}
