package analytics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/internal/httputil"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, authService *auth.Service) {
	group := r.Group("/admin/analytics", authService.RequireAuth())
	{
		group.GET("", h.Overview)
		group.GET("/export", h.Export)
	}
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context(), auth.IdentityFrom(c))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *Handler) Export(c *gin.Context) {
	filename := fmt.Sprintf("analytics-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.service.ExportXLSX(c.Request.Context(), auth.IdentityFrom(c), c.Writer); err != nil {
		httputil.RespondError(c, err)
		return
	}
}
