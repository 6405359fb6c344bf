package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"io.winapps.communitydiary/internal/diary"
	listmodels "io.winapps.communitydiary/internal/models/list_entries"
)

const (
	globalListCacheKey = "diary:list:global:p1"
	globalFeedCacheKey = "diary:feed:global"
	listCacheTTL       = 5 * time.Minute
)

type FeedHandler struct {
	feed        *diary.FeedQuery
	redis       *redis.Client
	logger      *zap.SugaredLogger
	cronManager *cron.Cron
}

// NewFeedHandler creates the listing/feed handler and starts the cache
// warmer for the unfiltered global views.
func NewFeedHandler(feed *diary.FeedQuery, redisClient *redis.Client, logger *zap.SugaredLogger) *FeedHandler {
	c := cron.New(cron.WithLocation(time.UTC))

	h := &FeedHandler{
		feed:        feed,
		redis:       redisClient,
		logger:      logger,
		cronManager: c,
	}

	h.setupCacheWarmer()

	return h
}

// ListEntries answers the interactive listing. The filter axis is selected
// by which parameter is supplied: display_name > friends > nearby >
// language > unfiltered global.
func (h *FeedHandler) ListEntries(c *gin.Context) {
	params := diary.ListParams{
		DisplayName: c.Query("display_name"),
		Friends:     c.Query("friends") != "",
		Nearby:      c.Query("nearby") != "",
		Language:    c.Query("language"),
		ViewerUID:   viewerUID(c),
		Page:        1,
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			params.Page = page
		}
	}

	ctx := c.Request.Context()

	// The warmed global first page is the hottest read.
	if axis, err := params.Axis(); err == nil && axis == diary.AxisGlobal && params.Page == 1 {
		if cached, err := h.redis.Get(ctx, globalListCacheKey).Result(); err == nil && cached != "" {
			var cachedResponse listmodels.ListEntriesResponse
			if err := json.Unmarshal([]byte(cached), &cachedResponse); err == nil {
				c.JSON(http.StatusOK, cachedResponse)
				return
			}
		}
	}

	entries, err := h.feed.ListEntries(ctx, params)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to list entries")
		return
	}

	response := listmodels.ListEntriesResponse{
		Entries:  entries,
		Page:     params.Page,
		PageSize: diary.PageSize,
	}

	c.JSON(http.StatusOK, response)
}

// setupCacheWarmer refreshes the global listing and feed caches so the
// unauthenticated landing views stay cheap.
func (h *FeedHandler) setupCacheWarmer() {
	warm := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		h.warmGlobalCaches(ctx)
	}

	if _, err := h.cronManager.AddFunc("@every 5m", warm); err != nil {
		h.logger.Errorw("failed to schedule cache warmer", "error", err)
		return
	}
	h.cronManager.Start()

	// Warm once at startup so the first request doesn't pay for it.
	go warm()
}

func (h *FeedHandler) warmGlobalCaches(ctx context.Context) {
	entries, err := h.feed.ListEntries(ctx, diary.ListParams{Page: 1})
	if err != nil {
		h.logger.Warnw("global listing cache warm failed", "error", err)
	} else {
		response := listmodels.ListEntriesResponse{Entries: entries, Page: 1, PageSize: diary.PageSize}
		if data, err := json.Marshal(response); err == nil {
			_ = h.redis.Set(ctx, globalListCacheKey, data, listCacheTTL).Err()
		}
	}

	feed, err := h.feed.Feed(ctx, "", "")
	if err != nil {
		h.logger.Warnw("global feed cache warm failed", "error", err)
		return
	}
	if data, err := json.Marshal(feedResponseFrom(feed)); err == nil {
		_ = h.redis.Set(ctx, globalFeedCacheKey, data, listCacheTTL).Err()
	}
}
