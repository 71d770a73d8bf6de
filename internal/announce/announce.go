// Package announce carries short status messages meant for screen readers and
// the status line.
package announce

// Priority says how urgently a message should interrupt the user.
type Priority int

const (
	Polite Priority = iota
	Assertive
)

func (p Priority) String() string {
	if p == Assertive {
		return "assertive"
	}
	return "polite"
}

// Message is one announcement.
type Message struct {
	Text     string
	Priority Priority
}

// Announcer receives announcements.
type Announcer interface {
	Announce(text string, priority Priority)
}

// Func adapts a function to an Announcer.
type Func func(text string, priority Priority)

func (f Func) Announce(text string, priority Priority) { f(text, priority) }

// Nop discards everything.
var Nop Announcer = Func(func(string, Priority) {})

// Recorder keeps every announcement in order. The zero value is ready to use.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Announce(text string, priority Priority) {
	r.Messages = append(r.Messages, Message{Text: text, Priority: priority})
}

// Last returns the newest announcement.
func (r *Recorder) Last() (Message, bool) {
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}
