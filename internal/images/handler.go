package images

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/internal/httputil"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterRoutes registers the owner image management routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, authService *auth.Service) {
	group := r.Group("/my/projects/:id/images", authService.RequireAuth())
	{
		group.GET("", h.List)
		group.POST("", h.RequestUpload)
	}

	imageGroup := r.Group("/my/images/:id", authService.RequireAuth())
	{
		imageGroup.PUT("/confirm", h.ConfirmUpload)
		imageGroup.PUT("/main", h.SetMain)
		imageGroup.DELETE("", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	result, err := h.service.ListForProject(c.Request.Context(), auth.IdentityFrom(c), projectID)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": result})
}

type UploadRequest struct {
	Filename string `json:"filename"`
}

func (h *Handler) RequestUpload(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	grant, err := h.service.RequestUpload(c.Request.Context(), auth.IdentityFrom(c), projectID, req.Filename)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, grant)
}

func (h *Handler) ConfirmUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Image not found"})
		return
	}

	image, err := h.service.ConfirmUpload(c.Request.Context(), auth.IdentityFrom(c), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

func (h *Handler) SetMain(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Image not found"})
		return
	}

	image, err := h.service.SetMain(c.Request.Context(), auth.IdentityFrom(c), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Image not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.IdentityFrom(c), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
