package tui

import (
	"sync"

	"github.com/verte-zerg/memewire/internal/announce"
)

// Inbox collects announcements until the UI drains them into the status line.
type Inbox struct {
	mu      sync.Mutex
	pending []announce.Message
}

// NewInbox returns an empty Inbox.
func NewInbox() *Inbox {
	return &Inbox{}
}

// Announce implements announce.Announcer.
func (i *Inbox) Announce(text string, priority announce.Priority) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.pending = append(i.pending, announce.Message{Text: text, Priority: priority})
}

func (i *Inbox) drain() []announce.Message {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.pending
	i.pending = nil
	return out
}
