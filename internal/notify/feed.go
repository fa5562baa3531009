package notify

import (
	"sync"

	"github.com/upboard/backend/internal/models"
)

// Feed is the consumer-side notification list: an initial bulk fetch merged
// with pushed inserts. Pushed events may race the fetch or arrive after a
// local delete, so the feed de-duplicates by id and remembers deleted ids as
// tombstones: a late insert for a deleted notification must not resurrect
// it. It also tracks the unread count locally so read-state actions stay
// responsive without a refetch.
type Feed struct {
	mu         sync.Mutex
	items      []models.Notification
	seen       map[uint]struct{}
	tombstones map[uint]struct{}
	unread     int
}

// NewFeed seeds a feed from an initial fetch, assumed newest-first
func NewFeed(initial []models.Notification) *Feed {
	f := &Feed{
		seen:       make(map[uint]struct{}, len(initial)),
		tombstones: make(map[uint]struct{}),
	}
	for _, n := range initial {
		if _, dup := f.seen[n.ID]; dup {
			continue
		}
		f.seen[n.ID] = struct{}{}
		f.items = append(f.items, n)
		if !n.IsRead {
			f.unread++
		}
	}
	return f
}

// Insert merges one pushed notification, prepending it unless its id was
// already fetched, already inserted, or already deleted. Reports whether the
// feed changed.
func (f *Feed) Insert(n models.Notification) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, deleted := f.tombstones[n.ID]; deleted {
		return false
	}
	if _, dup := f.seen[n.ID]; dup {
		return false
	}

	f.seen[n.ID] = struct{}{}
	f.items = append([]models.Notification{n}, f.items...)
	if !n.IsRead {
		f.unread++
	}
	return true
}

// Items returns a snapshot of the current list
func (f *Feed) Items() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Len reports the number of notifications in the feed
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// UnreadCount reports the locally tracked unread count
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// MarkRead flags one notification read, decrementing the unread count if it
// was previously unread. Marking an already-read or unknown id is a no-op.
func (f *Feed) MarkRead(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		if !f.items[i].IsRead {
			f.items[i].IsRead = true
			f.unread--
		}
		return
	}
}

// MarkAllRead flags every notification read and zeroes the unread count
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].IsRead = true
	}
	f.unread = 0
}

// DeleteRead drops every read notification. The unread count is untouched:
// read rows never counted toward it.
func (f *Feed) DeleteRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, n := range f.items {
		if n.IsRead {
			f.tombstones[n.ID] = struct{}{}
			delete(f.seen, n.ID)
			continue
		}
		kept = append(kept, n)
	}
	f.items = kept
}

// DeleteSelected drops an explicit id set, subtracting however many of the
// deleted rows were unread rather than refetching.
func (f *Feed) DeleteSelected(ids []uint) {
	selected := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, n := range f.items {
		if _, ok := selected[n.ID]; ok {
			f.tombstones[n.ID] = struct{}{}
			delete(f.seen, n.ID)
			if !n.IsRead {
				f.unread--
			}
			continue
		}
		kept = append(kept, n)
	}
	f.items = kept
}

// Reconcile replaces the feed's contents with a fresh fetch, the recovery
// path for drift after dropped pushes. Tombstoned ids stay suppressed even
// if the fetch still contains them.
func (f *Feed) Reconcile(fresh []models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = f.items[:0]
	f.seen = make(map[uint]struct{}, len(fresh))
	f.unread = 0
	for _, n := range fresh {
		if _, deleted := f.tombstones[n.ID]; deleted {
			continue
		}
		if _, dup := f.seen[n.ID]; dup {
			continue
		}
		f.seen[n.ID] = struct{}{}
		f.items = append(f.items, n)
		if !n.IsRead {
			f.unread++
		}
	}
}
