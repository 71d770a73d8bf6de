package actions

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// ErrCopyFailed is returned when neither the system clipboard nor the terminal
// accepted the text.
var ErrCopyFailed = errors.New("copy failed")

// Method tells which mechanism stored the copied text.
type Method int

const (
	MethodNone Method = iota
	MethodClipboard
	MethodTerminal
)

func (m Method) String() string {
	switch m {
	case MethodClipboard:
		return "clipboard"
	case MethodTerminal:
		return "osc52"
	default:
		return "none"
	}
}

// Copier writes text to the system clipboard, falling back to an OSC 52
// escape sequence on the controlling terminal.
type Copier struct {
	primary  func(string) error
	terminal io.Writer
}

// NewCopier returns a Copier. The OSC 52 fallback is only enabled when tty is
// a terminal.
func NewCopier(tty *os.File) *Copier {
	c := &Copier{primary: clipboardWriteAll}
	if tty != nil && term.IsTerminal(int(tty.Fd())) {
		c.terminal = tty
	}
	return c
}

// Copy tries each mechanism once, in order.
func (c *Copier) Copy(text string) (Method, error) {
	perr := c.primary(text)
	if perr == nil {
		return MethodClipboard, nil
	}
	if c.terminal == nil {
		return MethodNone, fmt.Errorf("%w: %w", ErrCopyFailed, perr)
	}
	if _, err := osc52.New(text).WriteTo(c.terminal); err != nil {
		return MethodNone, fmt.Errorf("%w: %w", ErrCopyFailed, errors.Join(perr, err))
	}
	return MethodTerminal, nil
}
