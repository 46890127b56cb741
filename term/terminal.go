package term

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/cancelreader"
	"github.com/taigrr/colorhash"
	xterm "golang.org/x/term"
)

// ErrNotTerminal is returned by Open when stdin is not a terminal.
var ErrNotTerminal = errors.New("standard input is not a terminal")

const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	clearScreen    = "\x1b[2J"
	clearToEOL     = "\x1b[K"
)

var (
	styleColors = map[Style]*color.Color{
		StyleDim:   color.New(color.Faint),
		StyleBold:  color.New(color.Bold),
		StyleInfo:  color.New(color.FgGreen),
		StyleError: color.New(color.FgRed, color.Bold),
	}
	namePalette = []color.Attribute{
		color.FgRed,
		color.FgGreen,
		color.FgYellow,
		color.FgBlue,
		color.FgMagenta,
		color.FgCyan,
	}
)

// NameColor returns the colour used for an entry name. The same name always
// gets the same colour.
func NameColor(name string) *color.Color {
	h := int(colorhash.HashString(name)%1000) % len(namePalette)
	if h < 0 {
		h += len(namePalette)
	}
	return color.New(namePalette[h])
}

type readResult struct {
	data []byte
	err  error
}

// Terminal is a Surface backed by a real terminal in raw mode.
type Terminal struct {
	fd      int
	state   *xterm.State
	out     *bufio.Writer
	reader  cancelreader.CancelReader
	input   chan readResult
	done    chan struct{}
	pending []byte
}

// Open switches in to raw mode, enters the alternate screen on out and starts
// reading keys. Close must be called to restore the terminal.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	reader, err := cancelreader.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to create input reader: %w", err)
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t := &Terminal{
		fd:     fd,
		state:  state,
		out:    bufio.NewWriter(out),
		reader: reader,
		input:  make(chan readResult, 16),
		done:   make(chan struct{}),
	}
	t.out.WriteString(enterAltScreen + clearScreen)
	go t.readLoop()
	if err := t.Flush(); err != nil {
		t.Close()
		return nil, fmt.Errorf("failed to set up screen: %w", err)
	}
	return t, nil
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := t.reader.Read(buf)
		if n > 0 {
			select {
			case t.input <- readResult{data: append([]byte(nil), buf[:n]...)}:
			case <-t.done:
				return
			}
		}
		if err != nil {
			select {
			case t.input <- readResult{err: err}:
			case <-t.done:
			}
			return
		}
	}
}

// Close leaves the alternate screen and restores the terminal state.
func (t *Terminal) Close() error {
	close(t.done)
	t.reader.Cancel()
	t.out.WriteString(leaveAltScreen)
	flushErr := t.out.Flush()
	restoreErr := xterm.Restore(t.fd, t.state)
	t.reader.Close()
	return errors.Join(flushErr, restoreErr)
}

func (t *Terminal) Size() (int, int) {
	w, h, err := xterm.GetSize(t.fd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

func (t *Terminal) Clear() {
	t.out.WriteString(clearScreen)
}

func (t *Terminal) WriteLine(row int, spans ...Span) {
	width, _ := t.Size()
	fmt.Fprintf(t.out, "\x1b[%d;1H", row+1)
	remaining := width
	for _, s := range spans {
		if remaining <= 0 {
			break
		}
		text := runewidth.Truncate(s.Text, remaining, "")
		remaining -= runewidth.StringWidth(text)
		t.out.WriteString(paint(s.Style, text))
	}
	t.out.WriteString(clearToEOL)
}

func paint(style Style, text string) string {
	var c *color.Color
	if style == StyleName {
		c = NameColor(text)
	} else {
		c = styleColors[style]
	}
	if c == nil {
		return text
	}
	// The alternate screen is always a terminal, whatever color.NoColor
	// guessed from stdout.
	c.EnableColor()
	return c.Sprint(text)
}

func (t *Terminal) MoveCursor(x, y int) {
	fmt.Fprintf(t.out, "\x1b[%d;%dH", y+1, x+1)
}

func (t *Terminal) Flush() error {
	return t.out.Flush()
}

func (t *Terminal) ReadKey(timeout time.Duration) (Key, bool, error) {
	if k, ok := t.next(); ok {
		return k, true, nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case res := <-t.input:
			if res.err != nil {
				return Key{}, false, res.err
			}
			t.pending = append(t.pending, res.data...)
			if k, ok := t.next(); ok {
				return k, true, nil
			}
		case <-timer.C:
			return Key{}, false, nil
		}
	}
}

func (t *Terminal) next() (Key, bool) {
	for len(t.pending) > 0 {
		k, n, ok := DecodeKey(t.pending)
		if n == 0 {
			return Key{}, false
		}
		t.pending = t.pending[n:]
		if ok {
			return k, true
		}
	}
	return Key{}, false
}
