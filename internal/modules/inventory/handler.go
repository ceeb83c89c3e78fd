package inventory

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := middleware.AdminOnly()

	rg.POST("/materials", admin, h.createMaterial)
	rg.GET("/materials", h.listMaterials)
	rg.PUT("/materials/:id", admin, h.updateMaterial)
	rg.DELETE("/materials/:id", admin, h.deleteMaterial)

	rg.POST("/equipment", admin, h.createEquipment)
	rg.GET("/equipment", h.listEquipment)
	rg.PUT("/equipment/:id", admin, h.updateEquipment)
	rg.DELETE("/equipment/:id", admin, h.deleteEquipment)

	rg.POST("/requisitions", h.submitRequisition)
	rg.GET("/requisitions", h.listRequisitions)
	rg.POST("/requisitions/:id/approve", admin, h.approveRequisition)
	rg.POST("/requisitions/:id/decline", admin, h.declineRequisition)
	rg.GET("/requisitions/export", admin, h.exportRequisitions)
}

func (h *Handler) createMaterial(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}
	m, err := h.service.CreateMaterial(c.Request.Context(), req)
	if err != nil {
		response.Internal(c, "Failed to create material")
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) listMaterials(c *gin.Context) {
	list, err := h.service.ListMaterials(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list materials")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) updateMaterial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid material id")
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}
	m, err := h.service.UpdateMaterial(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Material not found")
			return
		}
		response.Internal(c, "Failed to update material")
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) deleteMaterial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid material id")
		return
	}
	if err := h.service.DeleteMaterial(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Material not found")
			return
		}
		response.Internal(c, "Failed to delete material")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) createEquipment(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}
	e, err := h.service.CreateEquipment(c.Request.Context(), req)
	if err != nil {
		response.Internal(c, "Failed to create equipment")
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) listEquipment(c *gin.Context) {
	list, err := h.service.ListEquipment(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list equipment")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) updateEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid equipment id")
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}
	e, err := h.service.UpdateEquipment(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Equipment not found")
			return
		}
		response.Internal(c, "Failed to update equipment")
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) deleteEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid equipment id")
		return
	}
	if err := h.service.DeleteEquipment(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Equipment not found")
			return
		}
		response.Internal(c, "Failed to delete equipment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) submitRequisition(c *gin.Context) {
	var req SubmitRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}
	r, err := h.service.Submit(c.Request.Context(), req, c.GetString("email"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Item not found")
			return
		}
		response.Internal(c, "Failed to submit requisition")
		return
	}
	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) listRequisitions(c *gin.Context) {
	list, err := h.service.ListRequisitions(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Internal(c, "Failed to list requisitions")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) approveRequisition(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid requisition id")
		return
	}
	r, err := h.service.Approve(c.Request.Context(), id, c.GetString("email"), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Requisition not found")
		case errors.Is(err, ErrAlreadyDecided):
			response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Requisition was already decided")
		case errors.Is(err, ErrInsufficientStock):
			response.Error(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough stock to approve")
		default:
			response.Internal(c, "Failed to approve requisition")
		}
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) declineRequisition(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid requisition id")
		return
	}
	r, err := h.service.Decline(c.Request.Context(), id, c.GetString("email"), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Requisition not found")
		case errors.Is(err, ErrAlreadyDecided):
			response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Requisition was already decided")
		default:
			response.Internal(c, "Failed to decline requisition")
		}
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) exportRequisitions(c *gin.Context) {
	buf, err := h.service.ExportRequisitions(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Internal(c, "Failed to export requisitions")
		return
	}

	filename := fmt.Sprintf("requisitions_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
