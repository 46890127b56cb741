package term

import (
	"io"
	"time"

	"github.com/mattn/go-runewidth"
)

// Screen is an in-memory Surface. Keys are served from a queue; once the
// queue is empty ReadKey returns io.EOF.
type Screen struct {
	width, height int
	lines         []string
	cursorX       int
	cursorY       int
	keys          []Key
	flushes       int
}

// NewScreen returns a blank width x height screen that will replay keys.
func NewScreen(width, height int, keys ...Key) *Screen {
	return &Screen{
		width:  width,
		height: height,
		lines:  make([]string, height),
		keys:   keys,
	}
}

// Push appends keys to the input queue.
func (s *Screen) Push(keys ...Key) {
	s.keys = append(s.keys, keys...)
}

// Type queues the runes of text, turning '\n' into Enter.
func (s *Screen) Type(text string) {
	for _, r := range text {
		if r == '\n' {
			s.Push(Key{Code: KeyEnter})
			continue
		}
		s.Push(Rune(r))
	}
}

// Line returns the text of row.
func (s *Screen) Line(row int) string {
	if row < 0 || row >= len(s.lines) {
		return ""
	}
	return s.lines[row]
}

// Lines returns a copy of every row.
func (s *Screen) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Cursor returns the last cursor position.
func (s *Screen) Cursor() (x, y int) {
	return s.cursorX, s.cursorY
}

// Flushes returns how many times Flush was called.
func (s *Screen) Flushes() int {
	return s.flushes
}

func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

func (s *Screen) Clear() {
	for i := range s.lines {
		s.lines[i] = ""
	}
}

func (s *Screen) WriteLine(row int, spans ...Span) {
	if row < 0 || row >= len(s.lines) {
		return
	}
	s.lines[row] = runewidth.Truncate(Text(spans), s.width, "")
}

func (s *Screen) MoveCursor(x, y int) {
	s.cursorX, s.cursorY = x, y
}

func (s *Screen) Flush() error {
	s.flushes++
	return nil
}

func (s *Screen) ReadKey(time.Duration) (Key, bool, error) {
	if len(s.keys) == 0 {
		return Key{}, false, io.EOF
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, true, nil
}
