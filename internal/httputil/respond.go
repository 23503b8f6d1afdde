// Package httputil maps core errors onto HTTP responses and holds small
// request helpers shared by the handlers.
package httputil

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devshowcase/showcase-backend/pkg/apperrors"
)

// RespondError writes the status code and body for err. Unknown errors are
// reported as a generic 500 so internals never leak.
func RespondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case apperrors.KindPermissionDenied:
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	case apperrors.KindInvalidState, apperrors.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// Pagination reads page/per_page query params with sane bounds.
func Pagination(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}
