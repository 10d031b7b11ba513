package term

import (
	"os"

	"golang.org/x/term"
)

// KeyReader delivers one decoded key event per call.
type KeyReader interface {
	ReadKey() (Key, error)
}

// Terminal reads keys from a real TTY. Raw mode is acquired before each
// read and restored immediately after, on every exit path, so the terminal
// is never left in raw mode between key events.
type Terminal struct {
	in  *os.File
	out *os.File
}

// NewTerminal wires stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

// IsInteractive reports whether both sides are terminals.
func (t *Terminal) IsInteractive() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(int(t.out.Fd()))
}

// Size returns the terminal dimensions, falling back to 80x24.
func (t *Terminal) Size() (width, height int) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultTerminalWidth, DefaultTerminalHeight
	}
	return w, h
}

// ReadKey blocks for one input chunk in raw mode and decodes it.
func (t *Terminal) ReadKey() (Key, error) {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return Key{}, err
	}
	defer func() { _ = term.Restore(fd, state) }()

	buf := make([]byte, 8)
	n, err := t.in.Read(buf)
	if err != nil {
		return Key{}, err
	}
	return Decode(buf[:n]), nil
}
