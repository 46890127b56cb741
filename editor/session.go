package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/binfs/binfs/term"
)

// Action is what a key press asks of the caller.
type Action int

const (
	Continue Action = iota
	SaveAndContinue
	SaveAndExit
	DiscardAndExit
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case SaveAndContinue:
		return "save"
	case SaveAndExit:
		return "save-and-exit"
	case DiscardAndExit:
		return "discard-and-exit"
	}
	return "unknown"
}

const tabWidth = 4

// Session is one editing session of a single file.
type Session struct {
	path     string
	buf      *Buffer
	baseline string
	top      int
	status   []term.Span
}

// NewSession opens content for editing. path is only used for display.
func NewSession(path, content string) *Session {
	return &Session{
		path:     path,
		buf:      NewBuffer(content),
		baseline: content,
	}
}

// Path returns the display path of the file being edited.
func (s *Session) Path() string {
	return s.path
}

// Buffer exposes the underlying buffer.
func (s *Session) Buffer() *Buffer {
	return s.buf
}

// Content returns the text as currently edited.
func (s *Session) Content() string {
	return s.buf.String()
}

// Baseline returns the content as of the last save.
func (s *Session) Baseline() string {
	return s.baseline
}

// Dirty reports whether the content differs from the last save.
func (s *Session) Dirty() bool {
	return s.buf.String() != s.baseline
}

// MarkSaved makes the current content the new comparison baseline.
func (s *Session) MarkSaved() {
	s.baseline = s.buf.String()
}

// SetStatus replaces the message on the bottom row.
func (s *Session) SetStatus(spans ...term.Span) {
	s.status = spans
}

// HandleKey applies k to the buffer or maps it to a session action.
func (s *Session) HandleKey(k term.Key) Action {
	switch {
	case k.Is('s'):
		return SaveAndContinue
	case k.Is('x'), k.Code == term.KeyEsc:
		return SaveAndExit
	case k.Is('q'):
		return DiscardAndExit
	}

	s.status = nil
	switch k.Code {
	case term.KeyRune:
		if !k.Ctrl {
			s.buf.Insert(k.Rune)
		}
	case term.KeyEnter:
		s.buf.Insert('\n')
	case term.KeyTab:
		s.buf.InsertString(strings.Repeat(" ", tabWidth))
	case term.KeyBackspace:
		s.buf.Backspace()
	case term.KeyDelete:
		s.buf.Delete()
	case term.KeyUp:
		s.buf.Move(Up)
	case term.KeyDown:
		s.buf.Move(Down)
	case term.KeyLeft:
		s.buf.Move(Left)
	case term.KeyRight:
		s.buf.Move(Right)
	}
	return Continue
}

// Render draws the header, the visible lines and the status row.
func (s *Session) Render(surf term.Surface) {
	width, height := surf.Size()
	rows := max(height-2, 1)
	x, y := s.buf.Cursor()
	if y < s.top {
		s.top = y
	}
	if y >= s.top+rows {
		s.top = y - rows + 1
	}

	surf.Clear()
	header := []term.Span{term.Styled(term.StyleBold, s.path)}
	if s.Dirty() {
		header = append(header, term.Styled(term.StyleDim, " [modified]"))
	}
	surf.WriteLine(0, header...)

	lines := s.buf.Lines()
	for row := 0; row < rows; row++ {
		i := s.top + row
		if i >= len(lines) {
			surf.WriteLine(row+1, term.Styled(term.StyleDim, "~"))
			continue
		}
		surf.WriteLine(row+1, term.Plain(lines[i]))
	}

	status := s.status
	if status == nil {
		status = []term.Span{term.Styled(term.StyleDim, "^S save  ^X/Esc save and close  ^Q discard")}
	}
	surf.WriteLine(height-1, status...)

	col := runewidth.StringWidth(string([]rune(lines[y])[:x]))
	surf.MoveCursor(min(col, max(width-1, 0)), y-s.top+1)
}
