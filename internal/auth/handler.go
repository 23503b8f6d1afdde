package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"devshowcase/showcase-backend/internal/httputil"
	"devshowcase/showcase-backend/pkg/apperrors"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindPermissionDenied {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
			return
		}
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer", "user": user})
}

func (h *Handler) Me(c *gin.Context) {
	identity := IdentityFrom(c)
	user, err := h.service.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	identity := IdentityFrom(c)
	page, perPage := httputil.Pagination(c, 50)

	users, total, err := h.service.ListUsers(c.Request.Context(), identity, perPage, (page-1)*perPage)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "page": page, "per_page": perPage})
}

func (h *Handler) ToggleBan(c *gin.Context) {
	identity := IdentityFrom(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	user, err := h.service.ToggleBan(c.Request.Context(), identity, id)
	if err != nil {
		httputil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
