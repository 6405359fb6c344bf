package diary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

type fakeSubscriberSource struct {
	subscribers []accountmodels.User
	err         error
}

func (f *fakeSubscriberSource) SubscribersOf(_ context.Context, _ string) ([]accountmodels.User, error) {
	return f.subscribers, f.err
}

type recordingNotifier struct {
	delivered []string
	failFor   map[string]error
}

func (r *recordingNotifier) CommentPosted(_ context.Context, recipient accountmodels.User, _ *accountmodels.Entry, _ *accountmodels.Comment) error {
	if err, ok := r.failFor[recipient.UID]; ok {
		return err
	}
	r.delivered = append(r.delivered, recipient.UID)
	return nil
}

func TestDispatcherExcludesCommenter(t *testing.T) {
	source := &fakeSubscriberSource{subscribers: []accountmodels.User{
		{UID: "alice"},
		{UID: "bob"},
		{UID: "carol"},
	}}
	notifier := &recordingNotifier{}
	dispatcher := NewDispatcher(source, notifier, nil)

	entry := &accountmodels.Entry{ID: "e1", AuthorUID: "alice"}
	comment := &accountmodels.Comment{ID: "c1", EntryID: "e1", AuthorUID: "bob"}

	dispatcher.CommentPosted(context.Background(), entry, comment)

	assert.Equal(t, []string{"alice", "carol"}, notifier.delivered)
}

func TestDispatcherContinuesAfterDeliveryFailure(t *testing.T) {
	source := &fakeSubscriberSource{subscribers: []accountmodels.User{
		{UID: "alice"},
		{UID: "bob"},
		{UID: "carol"},
	}}
	notifier := &recordingNotifier{
		failFor: map[string]error{"alice": errors.New("push token expired")},
	}
	dispatcher := NewDispatcher(source, notifier, nil)

	entry := &accountmodels.Entry{ID: "e1", AuthorUID: "dave"}
	comment := &accountmodels.Comment{ID: "c1", EntryID: "e1", AuthorUID: "dave"}

	dispatcher.CommentPosted(context.Background(), entry, comment)

	assert.Equal(t, []string{"bob", "carol"}, notifier.delivered)
}

func TestDispatcherSwallowsSubscriberLoadError(t *testing.T) {
	source := &fakeSubscriberSource{err: errors.New("connection refused")}
	notifier := &recordingNotifier{}
	dispatcher := NewDispatcher(source, notifier, nil)

	entry := &accountmodels.Entry{ID: "e1"}
	comment := &accountmodels.Comment{ID: "c1", EntryID: "e1", AuthorUID: "bob"}

	assert.NotPanics(t, func() {
		dispatcher.CommentPosted(context.Background(), entry, comment)
	})
	assert.Empty(t, notifier.delivered)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	source := &fakeSubscriberSource{}
	notifier := &recordingNotifier{}
	dispatcher := NewDispatcher(source, notifier, nil)

	entry := &accountmodels.Entry{ID: "e1"}
	comment := &accountmodels.Comment{ID: "c1", EntryID: "e1", AuthorUID: "bob"}

	dispatcher.CommentPosted(context.Background(), entry, comment)

	assert.Empty(t, notifier.delivered)
}
