package notify

import (
	"sync"

	"github.com/upboard/backend/internal/models"
)

// subscriptionBuffer bounds how far a subscriber may lag before deliveries
// are dropped. A slow consumer must never stall the publisher.
const subscriptionBuffer = 16

// Hub fans newly created notifications out to subscribed consumers. Delivery
// is scoped to the recipient, at-most-once, and unordered relative to any
// bulk fetch the consumer ran; consumers de-duplicate by notification id.
type Hub struct {
	mu   sync.Mutex
	subs map[uint]map[*Subscription]struct{}
}

// Subscription is one consumer's channel onto a recipient's notification
// stream. It lives as long as the consuming view: open on mount, Close on
// unmount.
type Subscription struct {
	hub         *Hub
	recipientID uint
	ch          chan models.Notification
	once        sync.Once
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[*Subscription]struct{})}
}

// Subscribe opens a subscription for the recipient's notifications
func (h *Hub) Subscribe(recipientID uint) *Subscription {
	sub := &Subscription{
		hub:         h,
		recipientID: recipientID,
		ch:          make(chan models.Notification, subscriptionBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[recipientID] == nil {
		h.subs[recipientID] = make(map[*Subscription]struct{})
	}
	h.subs[recipientID][sub] = struct{}{}
	return sub
}

// Publish delivers the notification to every subscription of its recipient.
// Sends never block: a subscriber with a full buffer misses the event and is
// expected to reconcile with a refetch.
func (h *Hub) Publish(n models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[n.RecipientID] {
		select {
		case sub.ch <- n:
		default:
		}
	}
}

// SubscriberCount reports how many subscriptions a recipient currently has
func (h *Hub) SubscriberCount(recipientID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[recipientID])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.recipientID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.recipientID)
		}
	}
	close(sub.ch)
}

// Notifications returns the receive side of the subscription. The channel is
// closed by Close.
func (s *Subscription) Notifications() <-chan models.Notification {
	return s.ch
}

// Close tears the subscription down and releases its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}
