package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"solarops/internal/pkg/response"
	"solarops/internal/pkg/utils"
)

type Handler struct {
	service  *Service
	proofDir string
}

func NewHandler(service *Service, proofDir string) *Handler {
	return &Handler{service: service, proofDir: proofDir}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tasks/:id/proof", h.handleTask)
	rg.POST("/tasks/:id/progress", h.updateProgress)
	rg.POST("/task-reports/:id", h.submitReport)
	rg.GET("/projects/:id/progress", h.projectProgress)
	rg.GET("/projects/:id/status", h.projectStatus)
	rg.GET("/projects/:id/todo", h.tasksToDo)
	rg.GET("/projects/:id/date-info", h.dateInfo)
}

func (h *Handler) saveProof(c *gin.Context) (string, bool) {
	file, err := c.FormFile("proof_image")
	if err != nil {
		response.InvalidInput(c, "Proof image is required")
		return "", false
	}
	name, err := utils.SaveProofImage(file, h.proofDir)
	if err != nil {
		response.InvalidInput(c, err.Error())
		return "", false
	}
	return name, true
}

func (h *Handler) handleTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid task ID")
		return
	}
	isStarting := c.PostForm("is_starting") == "true"

	image, ok := h.saveProof(c)
	if !ok {
		return
	}

	ok, msg, err := h.service.HandleTask(c.Request.Context(), taskID, image, isStarting)
	h.respond(c, ok, msg, err)
}

func (h *Handler) submitReport(c *gin.Context) {
	proofID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid task report ID")
		return
	}

	image, ok := h.saveProof(c)
	if !ok {
		return
	}

	ok, msg, err := h.service.SubmitTaskReport(c.Request.Context(), proofID, image)
	h.respond(c, ok, msg, err)
}

func (h *Handler) updateProgress(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid task ID")
		return
	}
	progress, err := strconv.Atoi(c.PostForm("progress"))
	if err != nil {
		response.InvalidInput(c, "Invalid progress value")
		return
	}

	image, ok := h.saveProof(c)
	if !ok {
		return
	}

	ok, msg, err := h.service.UpdateTaskProgress(
		c.Request.Context(), taskID, progress, image,
		c.GetString("email"), c.ClientIP(),
	)
	h.respond(c, ok, msg, err)
}

// respond maps the (ok, message, error) triple onto the HTTP envelope.
func (h *Handler) respond(c *gin.Context, ok bool, msg string, err error) {
	switch {
	case ok:
		response.Success(c, http.StatusOK, gin.H{"message": msg})
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, msg)
	case errors.Is(err, ErrInvalidInput):
		response.InvalidInput(c, msg)
	case errors.Is(err, ErrNotAssigned):
		response.Error(c, http.StatusConflict, "NOT_ASSIGNED", msg)
	default:
		response.Internal(c, "Operation failed")
	}
}

func (h *Handler) projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) projectProgress(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	progress, err := h.service.ProjectProgress(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to compute project progress")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"progress": progress})
}

func (h *Handler) projectStatus(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	status, err := h.service.ProjectStatus(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to load project status")
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *Handler) tasksToDo(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	todo, err := h.service.TasksToDo(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to load task list")
		return
	}
	response.Success(c, http.StatusOK, todo)
}

func (h *Handler) dateInfo(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	info, err := h.service.DateInfo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "No acknowledged payment or facilitator for this project")
			return
		}
		if errors.Is(err, ErrExternalService) {
			response.Error(c, http.StatusBadGateway, "EXTERNAL_SERVICE", "Payment gateway unavailable")
			return
		}
		response.Internal(c, "Failed to compute project dates")
		return
	}
	response.Success(c, http.StatusOK, info)
}
