package editor

import "strings"

// Direction is a cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Buffer is editable text with a cursor.
type Buffer struct {
	content []rune
	x, y    int
}

// NewBuffer returns a buffer holding content with the cursor at (0, 0).
func NewBuffer(content string) *Buffer {
	return &Buffer{content: []rune(content)}
}

// String returns the current content.
func (b *Buffer) String() string {
	return string(b.content)
}

// Cursor returns the cursor column and line.
func (b *Buffer) Cursor() (x, y int) {
	return b.x, b.y
}

// SetCursor moves the cursor to (x, y), clamped to the nearest valid position.
func (b *Buffer) SetCursor(x, y int) {
	b.y = clamp(y, 0, b.LineCount()-1)
	b.x = clamp(x, 0, b.lineLen(b.y))
}

// Lines returns the content split on line breaks.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.content), "\n")
}

// LineCount returns the number of lines, which is never less than one.
func (b *Buffer) LineCount() int {
	n := 1
	for _, r := range b.content {
		if r == '\n' {
			n++
		}
	}
	return n
}

// lineStart returns the offset of the first rune of line y.
func (b *Buffer) lineStart(y int) int {
	if y == 0 {
		return 0
	}
	line := 0
	for i, r := range b.content {
		if r == '\n' {
			line++
			if line == y {
				return i + 1
			}
		}
	}
	return len(b.content)
}

func (b *Buffer) lineLen(y int) int {
	n := 0
	for _, r := range b.content[b.lineStart(y):] {
		if r == '\n' {
			break
		}
		n++
	}
	return n
}

func (b *Buffer) offset() int {
	return b.lineStart(b.y) + b.x
}

// Insert adds r at the cursor. A line break moves the cursor to the start of
// the new line.
func (b *Buffer) Insert(r rune) {
	off := b.offset()
	b.content = append(b.content, 0)
	copy(b.content[off+1:], b.content[off:])
	b.content[off] = r
	if r == '\n' {
		b.x = 0
		b.y++
		return
	}
	b.x++
}

// InsertString inserts every rune of s in turn.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		b.Insert(r)
	}
}

// Backspace deletes the rune before the cursor. At the start of a line it
// joins the line onto the previous one.
func (b *Buffer) Backspace() {
	switch {
	case b.x == 0 && b.y == 0:
		return
	case b.x == 0:
		prev := b.lineLen(b.y - 1)
		b.remove(b.offset() - 1)
		b.y--
		b.x = prev
	default:
		b.remove(b.offset() - 1)
		b.x--
	}
}

// Delete removes the rune under the cursor. At the end of a line it pulls the
// next line up.
func (b *Buffer) Delete() {
	off := b.offset()
	if off >= len(b.content) {
		return
	}
	b.remove(off)
}

func (b *Buffer) remove(off int) {
	b.content = append(b.content[:off], b.content[off+1:]...)
}

// Move moves the cursor one step in d.
func (b *Buffer) Move(d Direction) {
	switch d {
	case Up:
		if b.y == 0 {
			return
		}
		b.y--
		b.x = min(b.x, b.lineLen(b.y))
	case Down:
		if b.y >= b.LineCount()-1 {
			return
		}
		b.y++
		b.x = min(b.x, b.lineLen(b.y))
	case Left:
		switch {
		case b.x > 0:
			b.x--
		case b.y > 0:
			b.y--
			b.x = b.lineLen(b.y)
		}
	case Right:
		switch {
		case b.x < b.lineLen(b.y):
			b.x++
		case b.y < b.LineCount()-1:
			b.y++
			b.x = 0
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
