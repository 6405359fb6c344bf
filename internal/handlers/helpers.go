package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.communitydiary/internal/diary"
)

// authedUID returns the authenticated user's uid from the request context.
func authedUID(c *gin.Context) (string, bool) {
	v, exists := c.Get("uid")
	if !exists {
		return "", false
	}
	uid, ok := v.(string)
	return uid, ok && uid != ""
}

// viewerUID returns the resolved viewer uid, or empty for anonymous
// requests (optional-auth routes).
func viewerUID(c *gin.Context) string {
	uid, _ := authedUID(c)
	return uid
}

// respondDiaryError translates the diary error taxonomy to HTTP statuses.
// Anything outside the taxonomy is a 500 with the detail kept server-side.
func respondDiaryError(c *gin.Context, logger *zap.SugaredLogger, err error, fallback string) {
	var validationErr *diary.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, diary.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No such diary entry"})
	case errors.Is(err, diary.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to do that"})
	case errors.Is(err, diary.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	default:
		if logger != nil {
			logWithContext(logger, c, "error", fallback, "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
