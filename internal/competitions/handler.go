package competitions

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

// RegisterRoutes registers public competition reads, the reviewer surface and
// the admin setup routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, authService *auth.Service) {
	public := r.Group("/competitions")
	{
		public.GET("", h.ListPublic)
		public.GET("/:id", h.GetPublic)
	}

	review := r.Group("/my-review/competitions", authService.RequireAuth())
	{
		review.GET("", h.ListAssignments)
		review.GET("/:id", h.GetForReviewer)
		review.PUT("/:id/rankings", h.ReplaceRankings)
		review.PUT("/:id/status", h.SetReviewStatus)
	}

	admin := r.Group("/admin/competitions", authService.RequireAuth())
	{
		admin.POST("", h.Create)
		admin.PUT("/:id/projects", h.SetProjects)
		admin.POST("/:id/reviewers", h.AssignReviewer)
		admin.DELETE("/:id/reviewers/:reviewerID", h.UnassignReviewer)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) ListPublic(c *gin.Context) {
	result, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competitions": result})
}

func (h *Handler) GetPublic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Competition not found"})
		return
	}

	view, err := h.service.GetPublic(c.Request.Context(), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) ListAssignments(c *gin.Context) {
	result, err := h.service.ListAssignments(c.Request.Context(), auth.IdentityFrom(c))
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competitions": result})
}

func (h *Handler) GetForReviewer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Competition not found"})
		return
	}

	detail, err := h.service.GetForReviewer(c.Request.Context(), auth.IdentityFrom(c), id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// RankingRequest is the ordered list of project ids; position is the 1-based
// index in this order.
type RankingRequest struct {
	ProjectIDs []uuid.UUID `json:"project_ids"`
}

func (h *Handler) ReplaceRankings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Competition not found"})
		return
	}
	var req RankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	if err := h.service.ReplaceRankings(c.Request.Context(), auth.IdentityFrom(c), id, req.ProjectIDs); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type StatusRequest struct {
	Status ReviewStatus `json:"status"`
}

func (h *Handler) SetReviewStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Competition not found"})
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	if err := h.service.SetReviewStatus(c.Request.Context(), auth.IdentityFrom(c), id, req.Status); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) Create(c *gin.Context) {
	var input CompetitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	competition, err := h.service.Create(c.Request.Context(), auth.IdentityFrom(c), input)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, competition)
}

type ProjectsRequest struct {
	ProjectIDs []uuid.UUID `json:"project_ids"`
}

func (h *Handler) SetProjects(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Competition not found"})
		return
	}
	var req ProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	if err := h.service.SetProjects(c.Request.Context(), auth.IdentityFrom(c), id, req.ProjectIDs); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ReviewerRequest struct {
	ReviewerID uuid.UUID `json:"reviewer_id"`
}

func (h *Handler) AssignReviewer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Competition not found"})
		return
	}
	var req ReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	assignment, err := h.service.AssignReviewer(c.Request.Context(), auth.IdentityFrom(c), id, req.ReviewerID)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *Handler) UnassignReviewer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Competition not found"})
		return
	}
	reviewerID, err := uuid.Parse(c.Param("reviewerID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Assignment not found"})
		return
	}

	if err := h.service.UnassignReviewer(c.Request.Context(), auth.IdentityFrom(c), id, reviewerID); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Competition not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.IdentityFrom(c), id); err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
