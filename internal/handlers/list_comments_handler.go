package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"io.winapps.communitydiary/internal/diary"
	listmodels "io.winapps.communitydiary/internal/models/list_comments"
)

// ListUserComments returns a page of a user's visible comments, newest
// first.
func (h *CommentHandler) ListUserComments(c *gin.Context) {
	displayName := c.Query("display_name")
	if displayName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "display_name is required"})
		return
	}

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	comments, err := h.comments.ListByAuthor(c.Request.Context(), displayName, page)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to list comments")
		return
	}

	c.JSON(http.StatusOK, listmodels.ListCommentsResponse{
		Comments: comments,
		Page:     page,
		PageSize: diary.PageSize,
	})
}
