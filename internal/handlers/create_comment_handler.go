package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.winapps.communitydiary/internal/diary"
	commentmodels "io.winapps.communitydiary/internal/models/create_comment"
)

type CommentHandler struct {
	comments *diary.CommentStore
	redis    *redis.Client
	logger   *zap.SugaredLogger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *diary.CommentStore, redisClient *redis.Client, logger *zap.SugaredLogger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		redis:    redisClient,
		logger:   logger,
	}
}

// CreateComment handles posting a comment under an entry. Subscribing the
// commenter and fanning out notifications happen inside the store.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req commentmodels.CreateCommentRequest
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

	comment, err := h.comments.Create(c.Request.Context(), req.EntryID, uid, req.Body)
	if err != nil {
		respondDiaryError(c, h.logger, err, "Failed to create comment")
		return
	}

	// The cached anonymous view of the entry is stale now.
	_ = h.redis.Del(c.Request.Context(), "entry_view:"+req.EntryID).Err()

	c.JSON(http.StatusCreated, commentmodels.CreateCommentResponse{Comment: *comment})
}
