package announce

import "testing"

func TestRecorderKeepsOrder(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Fatalf("expected empty recorder")
	}
	r.Announce("first", Polite)
	r.Announce("second", Assertive)
	last, ok := r.Last()
	if !ok || last.Text != "second" || last.Priority != Assertive {
		t.Fatalf("unexpected last message %+v", last)
	}
	if len(r.Messages) != 2 || r.Messages[0].Text != "first" {
		t.Fatalf("unexpected messages %+v", r.Messages)
	}
}

func TestFuncAdapter(t *testing.T) {
	var got Message
	a := Func(func(text string, p Priority) { got = Message{Text: text, Priority: p} })
	a.Announce("hello", Polite)
	if got.Text != "hello" || got.Priority.String() != "polite" {
		t.Fatalf("unexpected message %+v", got)
	}
	Nop.Announce("ignored", Assertive)
}
