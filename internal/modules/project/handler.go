package project

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := middleware.AdminOnly()

	rg.POST("/projects", admin, h.create)
	rg.GET("/projects", h.list)
	rg.GET("/projects/:id", h.get)
	rg.PUT("/projects/:id", admin, h.update)
	rg.POST("/projects/:id/assign", admin, h.assign)
	rg.GET("/projects/:id/assignments", h.assignments)
	rg.POST("/projects/:id/tasks", admin, h.createTask)
	rg.GET("/projects/:id/tasks", h.listTasks)
	rg.PUT("/tasks/:id", admin, h.updateTask)
	rg.DELETE("/tasks/:id", admin, h.deleteTask)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req, c.GetString("email"), c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.InvalidInput(c, "Client user not found")
			return
		}
		response.Internal(c, "Failed to create project")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list projects")
		return
	}
	response.Success(c, http.StatusOK, projects)
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project id")
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Project not found!")
			return
		}
		response.Internal(c, "Failed to load project")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project id")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req, c.GetString("email"), c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Project not found!")
			return
		}
		response.Internal(c, "Failed to update project")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) assign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project id")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	wl, err := h.service.Assign(c.Request.Context(), id, req, c.GetString("email"), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Project not found!")
		case errors.Is(err, ErrUserNotFound):
			response.InvalidInput(c, "User not found")
		case errors.Is(err, ErrWrongUserRole):
			response.Error(c, http.StatusConflict, "WRONG_ROLE", "User role does not match the assignment")
		default:
			response.Internal(c, "Failed to assign worker")
		}
		return
	}
	response.Success(c, http.StatusCreated, wl)
}

func (h *Handler) assignments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project id")
		return
	}

	logs, err := h.service.Assignments(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to list assignments")
		return
	}
	response.Success(c, http.StatusOK, logs)
}

func (h *Handler) createTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project id")
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	t, err := h.service.CreateTask(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Project not found!")
		case errors.Is(err, ErrTaskNotFound):
			response.InvalidInput(c, "Parent task not found")
		case errors.Is(err, ErrProjectClosed):
			response.Error(c, http.StatusConflict, "PROJECT_CLOSED", "Project is already finished")
		default:
			response.Internal(c, "Failed to create task")
		}
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) listTasks(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project id")
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to list tasks")
		return
	}
	response.Success(c, http.StatusOK, tasks)
}

func (h *Handler) updateTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid task id")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	t, err := h.service.UpdateTask(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			response.NotFound(c, "Task not found!")
			return
		}
		response.Internal(c, "Failed to update task")
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid task id")
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			response.NotFound(c, "Task not found!")
			return
		}
		response.Internal(c, "Failed to delete task")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
