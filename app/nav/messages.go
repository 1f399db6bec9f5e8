package nav

import (
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/google/uuid"
)

// Message is a transient payload handed to another page through the messageId query parameter
type Message struct {
	From string         `json:"from"`
	Data map[string]any `json:"data"`
}

// Messages keeps hand-off messages for a limited time
type Messages struct {
	cache cache.Cache[string, Message]
}

// NewMessages makes a store with ttl of each message
func NewMessages(ttl time.Duration) *Messages {
	return &Messages{cache: cache.NewCache[string, Message]().WithTTL(ttl).WithMaxKeys(1000)}
}

// Create stores the message and returns its id
func (m *Messages) Create(msg Message) string {
	id := uuid.NewString()
	m.cache.Add(id, msg)
	return id
}

// Get returns stored message
func (m *Messages) Get(id string) (Message, bool) {
	return m.cache.Get(id)
}

// Cleanup drops expired messages
func (m *Messages) Cleanup() { m.cache.DeleteExpired() }
