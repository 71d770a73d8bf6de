package feed

import "sync"

// ChatLog keeps the most recent chat entries, evicting the oldest first.
type ChatLog struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// NewChatLog returns a log holding at most capacity entries.
func NewChatLog(capacity int) *ChatLog {
	return &ChatLog{max: max(1, capacity)}
}

// Append adds e and returns the evicted entry, if any.
func (l *ChatLog) Append(e Entry) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if len(l.entries) <= l.max {
		return Entry{}, false
	}
	evicted := l.entries[0]
	l.entries = append([]Entry(nil), l.entries[1:]...)
	return evicted, true
}

// Entries returns a copy of the log in creation order.
func (l *ChatLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of retained entries.
func (l *ChatLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Floating tracks the live floating comments.
type Floating struct {
	mu   sync.Mutex
	max  int
	live []Entry
}

// NewFloating returns a set allowing at most capacity live entries.
func NewFloating(capacity int) *Floating {
	return &Floating{max: max(1, capacity)}
}

// TryAdd adds e unless the set is full.
func (f *Floating) TryAdd(e Entry) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.live) >= f.max {
		return false
	}
	f.live = append(f.live, e)
	return true
}

// Remove drops the entry with id and reports whether it was live.
func (f *Floating) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.live {
		if e.ID == id {
			f.live = append(f.live[:i:i], f.live[i+1:]...)
			return true
		}
	}
	return false
}

// Live returns a copy of the live entries in creation order.
func (f *Floating) Live() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Entry(nil), f.live...)
}

// Len returns the number of live entries.
func (f *Floating) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}
