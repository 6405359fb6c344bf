package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.communitydiary/internal/diary"
	updatemodels "io.winapps.communitydiary/internal/models/update_entry"
)

// UpdateEntry handles author-scoped edits to an entry's title, body,
// language or location.
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	var req updatemodels.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	uid, ok := authedUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if req.EntryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry ID is required"})
		return
	}

	entry, err := h.entries.Update(c.Request.Context(), req.EntryID, uid, diary.EntryUpdate{
		Title:        req.Title,
		Body:         req.Body,
		LanguageCode: req.LanguageCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to update entry")
		return
	}

	// Drop the cached anonymous view of this entry.
	_ = h.redis.Del(c.Request.Context(), "entry_view:"+req.EntryID).Err()

	c.JSON(http.StatusOK, updatemodels.UpdateEntryResponse{Entry: *entry})
}
