package paranoiaqueue

import (
	"sync"

	"github.com/samber/mo"

	"tdbot/models"
	"tdbot/utils"
)

// Queue holds the per-recipient FIFO of pending paranoia questions. Entries
// progress queued -> delivered (DM notification recorded) -> answered
// (removed). The queue only does bookkeeping; delivery side effects belong
// to the paranoia use case.
//
// Invariant: per recipient, entries are ordered by creation and at most the
// head entry is ever delivered.
type Queue struct {
	mu      sync.Mutex
	entries map[string][]*models.ParanoiaEntry
}

func NewQueue() *Queue {
	return &Queue{entries: make(map[string][]*models.ParanoiaEntry)}
}

// Enqueue appends an entry to the recipient's queue. It never delivers;
// the producer decides whether the new entry warrants an immediate
// notification (only when the queue was empty beforehand).
func (q *Queue) Enqueue(entry *models.ParanoiaEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	utils.AssertInvariant(entry.UserID != "", "paranoia entry must have a recipient")
	q.entries[entry.UserID] = append(q.entries[entry.UserID], entry)
}

// Head returns the oldest entry for the recipient, if any
func (q *Queue) Head(userID string) mo.Option[*models.ParanoiaEntry] {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.entries[userID]
	if len(pending) == 0 {
		return mo.None[*models.ParanoiaEntry]()
	}
	return mo.Some(pending[0])
}

// Len returns the number of pending entries for the recipient
func (q *Queue) Len(userID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries[userID])
}

// AttachDelivery records the DM notification message for the recipient's
// head entry, transitioning it to delivered. Returns false when the entry is
// no longer the head (e.g. it was answered in the meantime).
func (q *Queue) AttachDelivery(userID, entryID, dmChannelID, dmMessageID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.entries[userID]
	if len(pending) == 0 || pending[0].ID != entryID {
		return false
	}

	pending[0].DMChannelID = &dmChannelID
	pending[0].DMMessageID = &dmMessageID
	return true
}

// Answer removes and returns the recipient's head entry, but only when it is
// still the entry the caller read. The head can change between a caller's
// read and its removal (a duplicate answer resolved it first), so removal is
// compare-and-remove: a mismatch returns Absent and removes nothing, and the
// caller must not attempt delivery side effects.
func (q *Queue) Answer(userID, entryID string) mo.Option[*models.ParanoiaEntry] {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.entries[userID]
	if len(pending) == 0 || pending[0].ID != entryID {
		return mo.None[*models.ParanoiaEntry]()
	}

	head := pending[0]
	rest := pending[1:]
	if len(rest) == 0 {
		delete(q.entries, userID)
	} else {
		q.entries[userID] = rest
	}
	return mo.Some(head)
}
