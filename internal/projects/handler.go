package projects

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

// RegisterRoutes registers the public, owner and admin project routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, authService *auth.Service) {
	public := r.Group("/projects")
	{
		public.GET("", h.ListPublic)
		public.GET("/featured", h.ListFeatured)
		public.GET("/trending", h.ListTrending)
		public.GET("/:id", authService.OptionalAuth(), h.GetPublic)
	}

	mine := r.Group("/my/projects", authService.RequireAuth())
	{
		mine.GET("", h.ListMine)
		mine.POST("", h.Create)
		mine.GET("/:id", h.GetMine)
		mine.PUT("/:id", h.Update)
		mine.DELETE("/:id", h.Delete)
		mine.POST("/:id/resubmit", h.Resubmit)
	}

	admin := r.Group("/admin/projects", authService.RequireAuth())
	{
		admin.GET("", h.ListAdmin)
		admin.GET("/:id", h.GetAdmin)
		admin.PUT("/:id/approve", h.Moderate)
		admin.PUT("/:id/feature", h.ToggleFeatured)
	}
}

func (h *Handler) ListPublic(c *gin.Context) {
	page, perPage := httputil.Pagination(c, 20)
	q := PublicListQuery{
		TagSlugs:  c.QueryArray("tags"),
		TechStack: c.QueryArray("tech_stack"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortAsc:   c.Query("sort_order") == "asc",
		Page:      page,
		PerPage:   perPage,
	}

	result, total, err := h.service.ListPublic(c.Request.Context(), q)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	pages := (total + int64(perPage) - 1) / int64(perPage)
	c.JSON(http.StatusOK, gin.H{
		"projects": result,
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"pages":    pages,
	})
}

func (h *Handler) ListFeatured(c *gin.Context) {
	result, err := h.service.ListFeatured(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListTrending(c *gin.Context) {
	result, err := h.service.ListTrending(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetPublic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	project, err := h.service.Get(c.Request.Context(), auth.IdentityFrom(c), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) ListMine(c *gin.Context) {
	result, err := h.service.ListMine(c.Request.Context(), auth.IdentityFrom(c))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Create(c *gin.Context) {
	var input Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	project, err := h.service.Create(c.Request.Context(), auth.IdentityFrom(c), input)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) GetMine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	project, err := h.service.GetMine(c.Request.Context(), auth.IdentityFrom(c), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}
	var input Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	project, err := h.service.UpdateContent(c.Request.Context(), auth.IdentityFrom(c), id, input)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.IdentityFrom(c), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Resubmit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	project, err := h.service.Resubmit(c.Request.Context(), auth.IdentityFrom(c), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) ListAdmin(c *gin.Context) {
	page, perPage := httputil.Pagination(c, 20)
	var status *Status
	if raw := c.Query("status_filter"); raw != "" {
		s := Status(raw)
		status = &s
	}

	result, total, err := h.service.ListAdmin(c.Request.Context(), auth.IdentityFrom(c), status, perPage, (page-1)*perPage)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	pages := (total + int64(perPage) - 1) / int64(perPage)
	c.JSON(http.StatusOK, gin.H{
		"projects": result,
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"pages":    pages,
	})
}

func (h *Handler) GetAdmin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	project, err := h.service.GetAdmin(c.Request.Context(), auth.IdentityFrom(c), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// ModerationRequest is the admin approve/reject decision body.
type ModerationRequest struct {
	Approved        bool   `json:"approved"`
	IsFeatured      bool   `json:"is_featured"`
	RejectionReason string `json:"rejection_reason"`
}

// Moderate applies an approval or a rejection depending on the payload.
func (h *Handler) Moderate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}
	var req ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	identity := auth.IdentityFrom(c)
	var project *Project
	if req.Approved {
		project, err = h.service.Approve(c.Request.Context(), identity, id, req.IsFeatured)
	} else {
		project, err = h.service.Reject(c.Request.Context(), identity, id, req.RejectionReason)
	}
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) ToggleFeatured(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	project, err := h.service.ToggleFeatured(c.Request.Context(), auth.IdentityFrom(c), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
