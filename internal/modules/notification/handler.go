package notification

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"solarops/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/notifications", h.list)
	rg.POST("/notifications/:id/read", h.markRead)
	rg.POST("/projects/:id/notifications/read-all", h.markAllRead)
	rg.GET("/notifications/ws", h.websocket)
}

func (h *Handler) list(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project ID")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, unread, err := h.service.ListByProject(c.Request.Context(), projectID, limit)
	if err != nil {
		response.Internal(c, "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread":        unread,
	})
}

func (h *Handler) markRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid notification ID")
		return
	}
	if err := h.service.MarkAsRead(c.Request.Context(), id); err != nil {
		response.Internal(c, "Failed to mark notification as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) markAllRead(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.InvalidInput(c, "Invalid project ID")
		return
	}
	if err := h.service.MarkAllAsRead(c.Request.Context(), projectID); err != nil {
		response.Internal(c, "Failed to mark notifications as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project_id": projectID})
}

func (h *Handler) websocket(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Register(userID, conn)

	// Reader loop only detects disconnects; the feed is write-only.
	go func() {
		defer h.hub.Unregister(userID)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
