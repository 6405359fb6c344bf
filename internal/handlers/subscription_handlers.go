package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.communitydiary/internal/diary"
)

type SubscriptionHandler struct {
	subs   *diary.SubscriptionRegistry
	logger *zap.SugaredLogger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subs *diary.SubscriptionRegistry, logger *zap.SugaredLogger) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, logger: logger}
}

type subscriptionRequest struct {
	EntryID string `json:"entryId"`
}

// Subscribe registers the authenticated user for comment notifications on
// an entry. Subscribing twice is a no-op.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EntryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry ID is required"})
		return
	}

	uid, ok := authedUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.subs.Subscribe(c.Request.Context(), req.EntryID, uid); err != nil {
		respondDiaryError(c, h.logger, err, "Failed to subscribe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Unsubscribe removes the authenticated user's subscription. Unsubscribing
// when not subscribed is a no-op.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EntryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry ID is required"})
		return
	}

	uid, ok := authedUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.subs.Unsubscribe(c.Request.Context(), req.EntryID, uid); err != nil {
		respondDiaryError(c, h.logger, err, "Failed to unsubscribe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
