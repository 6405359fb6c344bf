package diary

import (
	"context"

	"go.uber.org/zap"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// Notifier is the external delivery capability: tell one user about one
// new comment. Implementations live outside the core (FCM push, email).
type Notifier interface {
	CommentPosted(ctx context.Context, recipient accountmodels.User, entry *accountmodels.Entry, comment *accountmodels.Comment) error
}

// SubscriberSource yields the users to fan out to for an entry.
type SubscriberSource interface {
	SubscribersOf(ctx context.Context, entryID string) ([]accountmodels.User, error)
}

// Dispatcher fans a new comment out to the entry's subscribers, excluding
// the commenter. Delivery is fire-and-forget per subscriber: one failed
// delivery never blocks the others.
type Dispatcher struct {
	subscribers SubscriberSource
	notifier    Notifier
	logger      *zap.SugaredLogger
}

func NewDispatcher(subscribers SubscriberSource, notifier Notifier, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{subscribers: subscribers, notifier: notifier, logger: logger}
}

// CommentPosted notifies every subscriber of the entry other than the
// comment's author. Failures are logged and swallowed.
func (d *Dispatcher) CommentPosted(ctx context.Context, entry *accountmodels.Entry, comment *accountmodels.Comment) {
	subscribers, err := d.subscribers.SubscribersOf(ctx, entry.ID)
	if err != nil {
		if d.logger != nil {
			d.logger.Errorw("failed to load subscribers for fan-out",
				"entry_id", entry.ID,
				"comment_id", comment.ID,
				"error", err,
			)
		}
		return
	}

	for _, subscriber := range subscribers {
		if subscriber.UID == comment.AuthorUID {
			continue
		}
		if err := d.notifier.CommentPosted(ctx, subscriber, entry, comment); err != nil {
			if d.logger != nil {
				d.logger.Warnw("comment notification delivery failed",
					"entry_id", entry.ID,
					"comment_id", comment.ID,
					"recipient_uid", subscriber.UID,
					"error", err,
				)
			}
		}
	}
}
