package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.communitydiary/internal/diary"
	feedmodels "io.winapps.communitydiary/internal/models/diary_feed"
)

func feedResponseFrom(feed *diary.FeedResult) feedmodels.FeedResponse {
	return feedmodels.FeedResponse{
		Title:       feed.Title,
		Description: feed.Description,
		Link:        feed.Link,
		Entries:     feed.Entries,
	}
}

// Feed answers the syndication variant: always the newest 20 visible
// entries, filtered by author or language or nothing, with feed metadata.
// Paging parameters are ignored.
func (h *FeedHandler) Feed(c *gin.Context) {
	displayName := c.Query("display_name")
	language := c.Query("language")

	ctx := c.Request.Context()

	if displayName == "" && language == "" {
		if cached, err := h.redis.Get(ctx, globalFeedCacheKey).Result(); err == nil && cached != "" {
			var cachedResponse feedmodels.FeedResponse
			if err := json.Unmarshal([]byte(cached), &cachedResponse); err == nil {
				c.JSON(http.StatusOK, cachedResponse)
				return
			}
		}
	}

	feed, err := h.feed.Feed(ctx, displayName, language)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to build feed")
		return
	}

	c.JSON(http.StatusOK, feedResponseFrom(feed))
}
