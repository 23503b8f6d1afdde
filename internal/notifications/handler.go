package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/internal/httputil"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(s *Service, hub *Hub) *Handler {
	return &Handler{service: s, hub: hub}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, authService *auth.Service) {
	group := r.Group("/my/notifications", authService.RequireAuth())
	{
		group.GET("", h.List)
		group.PUT("/read", h.MarkAllRead)
		group.PUT("/:id/read", h.MarkRead)
	}
	r.GET("/ws", authService.RequireAuth(), h.Connect)
}

func (h *Handler) List(c *gin.Context) {
	page, perPage := httputil.Pagination(c, 20)

	rows, unread, err := h.service.ListForUser(c.Request.Context(), auth.IdentityFrom(c).UserID, perPage, (page-1)*perPage)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": rows,
		"unread_count":  unread,
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Notification not found"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), auth.IdentityFrom(c).UserID, id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), auth.IdentityFrom(c).UserID); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Connect upgrades the request to a websocket that streams the caller's
// notifications.
func (h *Handler) Connect(c *gin.Context) {
	h.hub.HandleConnection(c.Writer, c.Request, auth.IdentityFrom(c).UserID)
}
