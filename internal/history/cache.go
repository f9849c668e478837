// Package history holds the time-windowed conversation history cache.
//
// A conversation's message history stays valid only while the
// conversation is active: once the idle window elapses the whole
// sequence is discarded at once; there is no partial expiry.
package history

import (
	"encoding/json"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// DefaultIdleWindow is how long a history survives without a refresh.
// The window has drifted between one and six hours over the system's
// life; one hour is the documented default and it is configurable.
const DefaultIdleWindow = time.Hour

// Cache stores message histories keyed by conversation ID. Messages are
// opaque to the cache; it never inspects them.
type Cache struct {
	entries *cache.Cache
}

// New creates a Cache with the given idle window. A non-positive window
// falls back to DefaultIdleWindow.
func New(idleWindow time.Duration) *Cache {
	if idleWindow <= 0 {
		idleWindow = DefaultIdleWindow
	}
	return &Cache{entries: cache.New(idleWindow, idleWindow/2)}
}

// Set replaces the conversation's history wholesale and restarts its
// idle clock.
func (c *Cache) Set(conversationID string, messages []json.RawMessage) {
	c.entries.Set(conversationID, messages, cache.DefaultExpiration)
}

// Get returns the conversation's history, or an empty sequence once the
// idle window has elapsed. Expiry is all-or-nothing: the entry as a
// whole either exists or it does not.
func (c *Cache) Get(conversationID string) []json.RawMessage {
	v, ok := c.entries.Get(conversationID)
	if !ok {
		return nil
	}
	return v.([]json.RawMessage)
}

// Reset discards the conversation's history immediately.
func (c *Cache) Reset(conversationID string) {
	c.entries.Delete(conversationID)
}
