package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// PushNotifier delivers comment notifications over FCM. It implements the
// diary core's Notifier interface; the core never sees FCM details.
type PushNotifier struct {
	fcmClient *messaging.Client
	db        *pgxpool.Pool
	redis     *redis.Client
	logger    *zap.SugaredLogger
}

func NewPushNotifier(firebaseApp *firebase.App, db *pgxpool.Pool, redisClient *redis.Client, logger *zap.SugaredLogger) *PushNotifier {
	fcmClient, err := firebaseApp.Messaging(context.Background())
	if err != nil && logger != nil {
		logger.Errorw("failed to get FCM client, push delivery disabled", "error", err)
	}

	return &PushNotifier{
		fcmClient: fcmClient,
		db:        db,
		redis:     redisClient,
		logger:    logger,
	}
}

type pushToken struct {
	UserID   string `json:"userId"`
	FCMToken string `json:"fcmToken"`
	Platform string `json:"platform"`
	Active   bool   `json:"active"`
}

// getPushToken checks redis first, then push_tokens in PostgreSQL.
func (n *PushNotifier) getPushToken(ctx context.Context, userUID string) (*pushToken, error) {
	tokenKey := fmt.Sprintf("push_token:%s", userUID)
	if cached, err := n.redis.Get(ctx, tokenKey).Result(); err == nil {
		var token pushToken
		if err := json.Unmarshal([]byte(cached), &token); err == nil {
			return &token, nil
		}
	}

	var token pushToken
	err := n.db.QueryRow(ctx, `
		SELECT user_id, fcm_token, platform, active
		FROM push_tokens
		WHERE user_id = $1 AND active = TRUE
	`, userUID).Scan(&token.UserID, &token.FCMToken, &token.Platform, &token.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no push token registered for user %s", userUID)
		}
		return nil, err
	}

	if tokenJSON, err := json.Marshal(token); err == nil {
		n.redis.Set(ctx, tokenKey, tokenJSON, 24*time.Hour)
	}

	return &token, nil
}

// truncateBody shortens a comment body to at most max runes for the push
// payload, never splitting a multi-byte character.
func truncateBody(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max-3]) + "..."
}

// CommentPosted sends one push message telling the recipient about a new
// comment on an entry they subscribe to.
func (n *PushNotifier) CommentPosted(ctx context.Context, recipient accountmodels.User, entry *accountmodels.Entry, comment *accountmodels.Comment) error {
	if n.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	token, err := n.getPushToken(ctx, recipient.UID)
	if err != nil {
		return err
	}
	if token.FCMToken == "" {
		return fmt.Errorf("no FCM token available for user %s", recipient.UID)
	}

	body := truncateBody(comment.Body, 120)

	message := &messaging.Message{
		Token: token.FCMToken,
		Notification: &messaging.Notification{
			Title: fmt.Sprintf("%s commented on %q", comment.AuthorName, entry.Title),
			Body:  body,
		},
		Data: map[string]string{
			"type":       "diary_comment",
			"entry_id":   entry.ID,
			"comment_id": comment.ID,
			"commenter":  comment.AuthorName,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				ChannelID: "diary_comments",
				Priority:  messaging.PriorityHigh,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: fmt.Sprintf("%s commented on %q", comment.AuthorName, entry.Title),
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	response, err := n.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending message: %v", err)
	}

	if n.logger != nil {
		n.logger.Debugw("comment notification sent",
			"recipient_uid", recipient.UID,
			"comment_id", comment.ID,
			"fcm_response", response,
		)
	}
	return nil
}
