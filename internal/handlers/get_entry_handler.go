package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	getmodels "io.winapps.communitydiary/internal/models/get_entry"
)

type getEntryRequest struct {
	EntryID string `json:"entryId"`
}

// GetEntry returns one entry with its visible comments. Hidden entries
// stay addressable by id but only resolve for their author or an
// administrator; everyone else gets the typed no-such-entry result.
func (h *EntryHandler) GetEntry(c *gin.Context) {
	var req getEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EntryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry ID is required"})
		return
	}

	ctx := c.Request.Context()
	viewer := viewerUID(c)
	cacheKey := "entry_view:" + req.EntryID

	// Anonymous views are cacheable; authenticated ones carry viewer
	// specific fields.
	if viewer == "" {
		if cached, err := h.redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var cachedResponse getmodels.GetEntryResponse
			if err := json.Unmarshal([]byte(cached), &cachedResponse); err == nil {
				c.JSON(http.StatusOK, cachedResponse)
				return
			}
		}
	}

	entry, err := h.entries.Get(ctx, req.EntryID)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to load entry")
		return
	}

	if !entry.Visible {
		allowed := false
		if viewer == entry.AuthorUID && viewer != "" {
			allowed = true
		} else if viewer != "" {
			admin, err := h.users.IsAdministrator(ctx, viewer)
			if err == nil && admin {
				allowed = true
			}
		}
		if !allowed {
			c.JSON(http.StatusNotFound, gin.H{"error": "No such diary entry"})
			return
		}
	}

	comments, err := h.comments.ListForEntry(ctx, req.EntryID)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to load comments")
		return
	}

	response := getmodels.GetEntryResponse{
		Entry:    *entry,
		Comments: comments,
	}

	if viewer != "" {
		subscribed, err := h.subs.IsSubscribed(ctx, req.EntryID, viewer)
		if err == nil {
			response.Subscribed = subscribed
		}
	} else if entry.Visible {
		if data, err := json.Marshal(response); err == nil {
			_ = h.redis.Set(ctx, cacheKey, data, 5*time.Minute).Err()
		}
	}

	c.JSON(http.StatusOK, response)
}
