package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	t.Run("generates id with prefix", func(t *testing.T) {
		id := NewID("pq")
		assert.True(t, strings.HasPrefix(id, "pq_"))
		assert.Len(t, id, len("pq_")+26) // ULIDs are 26 characters
	})

	t.Run("lowercases and trims prefix", func(t *testing.T) {
		id := NewID(" REQ ")
		assert.True(t, strings.HasPrefix(id, "req_"))
	})

	t.Run("generates unique ids", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			id := NewID("x")
			assert.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("panics on empty prefix", func(t *testing.T) {
		assert.Panics(t, func() { NewID("  ") })
	})
}
