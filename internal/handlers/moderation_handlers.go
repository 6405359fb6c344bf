package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.winapps.communitydiary/internal/diary"
)

type ModerationHandler struct {
	moderator *diary.Moderator
	comments  *diary.CommentStore
	redis     *redis.Client
	logger    *zap.SugaredLogger
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderator *diary.Moderator, comments *diary.CommentStore, redisClient *redis.Client, logger *zap.SugaredLogger) *ModerationHandler {
	return &ModerationHandler{
		moderator: moderator,
		comments:  comments,
		redis:     redisClient,
		logger:    logger,
	}
}

// invalidateEntryCaches drops every cached view a hidden item could
// still be served from: the warmed global listing and feed, plus the
// entry's own cached view when the entry is known.
func (h *ModerationHandler) invalidateEntryCaches(ctx context.Context, entryID string) {
	keys := []string{globalListCacheKey, globalFeedCacheKey}
	if entryID != "" {
		keys = append(keys, "entry_view:"+entryID)
	}
	_ = h.redis.Del(ctx, keys...).Err()
}

type hideEntryRequest struct {
	EntryID string `json:"entryId"`
}

type hideCommentRequest struct {
	CommentID string `json:"commentId"`
}

// HideEntry hides an entry from all listings and feeds. Administrator
// only; there is no un-hide.
func (h *ModerationHandler) HideEntry(c *gin.Context) {
	var req hideEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EntryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry ID is required"})
		return
	}

	uid, ok := authedUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.moderator.HideEntry(c.Request.Context(), req.EntryID, uid); err != nil {
		respondDiaryError(c, h.logger, err, "Failed to hide entry")
		return
	}

	logWithContext(h.logger, c, "info", "entry hidden by moderator", "entry_id", req.EntryID)
	h.invalidateEntryCaches(c.Request.Context(), req.EntryID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HideComment hides a comment under the same authorization rule.
func (h *ModerationHandler) HideComment(c *gin.Context) {
	var req hideCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment ID is required"})
		return
	}

	uid, ok := authedUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()

	if err := h.moderator.HideComment(ctx, req.CommentID, uid); err != nil {
		respondDiaryError(c, h.logger, err, "Failed to hide comment")
		return
	}

	// The hide succeeded, so the comment resolves; drop the entry's
	// cached view along with the globals.
	entryID := ""
	if comment, err := h.comments.Get(ctx, req.CommentID); err == nil {
		entryID = comment.EntryID
		logWithContext(h.logger, c, "info", "comment hidden by moderator",
			"comment_id", req.CommentID, "entry_id", comment.EntryID)
	}
	h.invalidateEntryCaches(ctx, entryID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
