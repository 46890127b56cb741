package term

import (
	"strings"
	"time"
)

// Style selects how a span is drawn.
type Style int

const (
	StylePlain Style = iota
	StyleDim
	StyleBold
	StyleName // entry name, coloured by a hash of its text
	StyleInfo
	StyleError
)

// Span is a run of text drawn in one style.
type Span struct {
	Text  string
	Style Style
}

// Plain returns an unstyled span.
func Plain(text string) Span {
	return Span{Text: text}
}

// Styled returns a span with the given style.
func Styled(style Style, text string) Span {
	return Span{Text: text, Style: style}
}

// Text concatenates the text of spans.
func Text(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Surface is what the shell and editor draw on.
type Surface interface {
	// Size returns the width and height in cells.
	Size() (width, height int)
	// Clear blanks every row.
	Clear()
	// WriteLine replaces row with spans, truncated to the width.
	WriteLine(row int, spans ...Span)
	// MoveCursor places the visible cursor at column x of row y.
	MoveCursor(x, y int)
	// Flush makes pending output visible.
	Flush() error
	// ReadKey waits up to timeout for a key. ok is false on timeout.
	ReadKey(timeout time.Duration) (k Key, ok bool, err error)
}
