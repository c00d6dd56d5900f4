package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/gin-gonic/gin"
)

// writeError maps err onto a status code and a JSON body.
func (s *Server) writeError(c *gin.Context, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badPayload(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
}

func invalidFields(fields ...string) error {
	return &common.ValidationError{Fields: fields}
}
