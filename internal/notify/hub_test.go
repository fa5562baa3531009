package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upboard/backend/internal/models"
)

func TestHub_DeliversToRecipientOnly(t *testing.T) {
	hub := NewHub()
	alice := hub.Subscribe(1)
	defer alice.Close()
	bob := hub.Subscribe(2)
	defer bob.Close()

	hub.Publish(models.Notification{ID: 10, RecipientID: 1, Type: models.NotificationTypeUp})

	select {
	case n := <-alice.Notifications():
		assert.Equal(t, uint(10), n.ID)
	case <-time.After(time.Second):
		t.Fatal("expected a delivery for recipient 1")
	}

	select {
	case n := <-bob.Notifications():
		t.Fatalf("recipient 2 received notification %d meant for recipient 1", n.ID)
	default:
	}
}

func TestHub_FansOutToAllSubscriptionsOfRecipient(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe(7)
	defer first.Close()
	second := hub.Subscribe(7)
	defer second.Close()

	hub.Publish(models.Notification{ID: 1, RecipientID: 7})

	for _, sub := range []*Subscription{first, second} {
		select {
		case n := <-sub.Notifications():
			assert.Equal(t, uint(1), n.ID)
		case <-time.After(time.Second):
			t.Fatal("expected delivery on every subscription")
		}
	}
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(3)

	sub.Close()
	require.NotPanics(t, sub.Close)
	assert.Equal(t, 0, hub.SubscriberCount(3))

	_, open := <-sub.Notifications()
	assert.False(t, open, "channel should be closed after Close")
}

func TestHub_PublishAfterCloseIsDropped(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(4)
	sub.Close()

	require.NotPanics(t, func() {
		hub.Publish(models.Notification{ID: 2, RecipientID: 4})
	})
}

func TestHub_SlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(5)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriptionBuffer*3; i++ {
			hub.Publish(models.Notification{ID: uint(i + 1), RecipientID: 5})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	// The buffer holds the first deliveries; the overflow was dropped.
	assert.Len(t, sub.ch, subscriptionBuffer)
}
