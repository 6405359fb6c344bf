package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.winapps.communitydiary/internal/diary"
	createmodels "io.winapps.communitydiary/internal/models/create_entry"
)

type EntryHandler struct {
	entries  *diary.EntryStore
	comments *diary.CommentStore
	subs     *diary.SubscriptionRegistry
	users    *diary.UserDirectory
	redis    *redis.Client
	logger   *zap.SugaredLogger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entries *diary.EntryStore, comments *diary.CommentStore, subs *diary.SubscriptionRegistry, users *diary.UserDirectory, redisClient *redis.Client, logger *zap.SugaredLogger) *EntryHandler {
	return &EntryHandler{
		entries:  entries,
		comments: comments,
		subs:     subs,
		users:    users,
		redis:    redisClient,
		logger:   logger,
	}
}

// CreateEntry handles creation of new diary entries. The author is
// subscribed to their own entry as part of the creation.
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req createmodels.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	uid, ok := authedUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entry, err := h.entries.Create(c.Request.Context(), uid, req.Title, req.Body, req.LanguageCode, req.Latitude, req.Longitude)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, createmodels.CreateEntryResponse{Entry: *entry})
}
