// Package editor implements the line editor used to change file contents.
//
// A Buffer holds text as runes plus a cursor (x, y), where y is a line index
// and x a rune column that may equal the line length (the end-of-line
// position). Lines are the "\n"-split of the content, so an empty buffer has a
// single empty line. Every edit recomputes the cursor's offset by scanning the
// content; documents are small enough that no line index is kept.
//
// Vertical movement clamps the column to the new line length and carries the
// clamped value forward. There is no remembered "desired column": moving down
// from column 5 through a two-rune line onto a long line leaves the cursor at
// column 2.
//
// A Session wraps a Buffer for one open/close cycle of a file. It turns key
// chords into Actions:
//
//	Ctrl+S        save and keep editing
//	Ctrl+X, Esc   save and return to the shell
//	Ctrl+Q        discard changes and return to the shell
//
// The Session never touches the document tree itself; the shell commits the
// content it returns.
package editor
