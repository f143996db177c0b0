package paranoiaqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdbot/core"
	"tdbot/models"
)

func newTestEntry(userID, question string) *models.ParanoiaEntry {
	return &models.ParanoiaEntry{
		ID:        core.NewID("pq"),
		UserID:    userID,
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		AskerID:   "asker-1",
		Question:  question,
		Rating:    models.RatingPG,
		CreatedAt: time.Now(),
	}
}

func TestQueue_FIFOOrder(t *testing.T) {
	t.Run("answer drains entries in enqueue order", func(t *testing.T) {
		queue := NewQueue()
		e1 := newTestEntry("user-1", "q1")
		e2 := newTestEntry("user-1", "q2")
		e3 := newTestEntry("user-1", "q3")
		queue.Enqueue(e1)
		queue.Enqueue(e2)
		queue.Enqueue(e3)

		for _, expected := range []*models.ParanoiaEntry{e1, e2, e3} {
			head := queue.Head("user-1")
			require.True(t, head.IsPresent())
			assert.Equal(t, expected.ID, head.MustGet().ID)

			removed := queue.Answer("user-1", expected.ID)
			require.True(t, removed.IsPresent())
			assert.Equal(t, expected.ID, removed.MustGet().ID)

			// the removed entry is never returned by Head again
			if next := queue.Head("user-1"); next.IsPresent() {
				assert.NotEqual(t, expected.ID, next.MustGet().ID)
			}
		}

		assert.False(t, queue.Head("user-1").IsPresent())
	})

	t.Run("recipients have independent queues", func(t *testing.T) {
		queue := NewQueue()
		e1 := newTestEntry("user-1", "q1")
		e2 := newTestEntry("user-2", "q2")
		queue.Enqueue(e1)
		queue.Enqueue(e2)

		assert.Equal(t, e1.ID, queue.Head("user-1").MustGet().ID)
		assert.Equal(t, e2.ID, queue.Head("user-2").MustGet().ID)

		queue.Answer("user-1", e1.ID)
		assert.False(t, queue.Head("user-1").IsPresent())
		assert.True(t, queue.Head("user-2").IsPresent())
	})
}

func TestQueue_Answer(t *testing.T) {
	t.Run("returns absent when no entry is pending", func(t *testing.T) {
		queue := NewQueue()
		assert.False(t, queue.Answer("user-1", "pq_unknown").IsPresent())
	})

	t.Run("duplicate removal of the same entry only removes it once", func(t *testing.T) {
		queue := NewQueue()
		e1 := newTestEntry("user-1", "q1")
		e2 := newTestEntry("user-1", "q2")
		queue.Enqueue(e1)
		queue.Enqueue(e2)

		// two callers both read e1 as head; only the first removal wins
		staleHead := queue.Head("user-1").MustGet()
		require.True(t, queue.Answer("user-1", staleHead.ID).IsPresent())
		assert.False(t, queue.Answer("user-1", staleHead.ID).IsPresent())

		head := queue.Head("user-1")
		require.True(t, head.IsPresent(), "the next entry must survive a duplicate removal")
		assert.Equal(t, e2.ID, head.MustGet().ID)
		assert.Equal(t, 1, queue.Len("user-1"))
	})
}

func TestQueue_AttachDelivery(t *testing.T) {
	t.Run("records the notification message on the head entry", func(t *testing.T) {
		queue := NewQueue()
		entry := newTestEntry("user-1", "q1")
		queue.Enqueue(entry)

		ok := queue.AttachDelivery("user-1", entry.ID, "dm-channel", "dm-message")
		require.True(t, ok)

		head := queue.Head("user-1").MustGet()
		assert.True(t, head.Delivered())
		assert.Equal(t, "dm-channel", *head.DMChannelID)
		assert.Equal(t, "dm-message", *head.DMMessageID)
	})

	t.Run("refuses when the entry is no longer the head", func(t *testing.T) {
		queue := NewQueue()
		entry := newTestEntry("user-1", "q1")
		queue.Enqueue(entry)
		queue.Answer("user-1", entry.ID)

		assert.False(t, queue.AttachDelivery("user-1", entry.ID, "dm-channel", "dm-message"))
	})
}

func TestQueue_DeliveredHeadStability(t *testing.T) {
	t.Run("enqueueing behind a delivered head does not change the head", func(t *testing.T) {
		queue := NewQueue()
		first := newTestEntry("user-1", "q1")
		queue.Enqueue(first)
		require.True(t, queue.AttachDelivery("user-1", first.ID, "dm-channel", "dm-message"))

		second := newTestEntry("user-1", "q2")
		queue.Enqueue(second)

		head := queue.Head("user-1").MustGet()
		assert.Equal(t, first.ID, head.ID)
		assert.True(t, head.Delivered())
		assert.False(t, second.Delivered())
		assert.Equal(t, 2, queue.Len("user-1"))
	})
}
