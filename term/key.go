package term

import (
	"fmt"
	"unicode/utf8"
)

// Code identifies the kind of a key event.
type Code int

const (
	KeyRune Code = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyDelete
)

// Key is a single decoded key press. For KeyRune, Rune holds the character
// and Ctrl is set for control chords (Ctrl+S arrives as Rune 's', Ctrl true).
type Key struct {
	Code Code
	Rune rune
	Ctrl bool
}

// Rune returns the key for a printable character.
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Ctrl returns the key for Ctrl plus a letter.
func Ctrl(r rune) Key {
	return Key{Code: KeyRune, Rune: r, Ctrl: true}
}

// Is reports whether k is the Ctrl chord for r.
func (k Key) Is(r rune) bool {
	return k.Code == KeyRune && k.Ctrl && k.Rune == r
}

func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		if k.Ctrl {
			return fmt.Sprintf("ctrl+%c", k.Rune)
		}
		return string(k.Rune)
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyEsc:
		return "esc"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyDelete:
		return "delete"
	}
	return "unknown"
}

// DecodeKey decodes the first key in b and returns it with the number of
// bytes consumed. n is 0 when b holds only the start of a sequence; a lone
// ESC byte is reported as KeyEsc. Unrecognised escape sequences are consumed
// and reported with ok false.
func DecodeKey(b []byte) (k Key, n int, ok bool) {
	if len(b) == 0 {
		return Key{}, 0, false
	}
	switch c := b[0]; {
	case c == '\r' || c == '\n':
		return Key{Code: KeyEnter}, 1, true
	case c == 0x7f || c == 0x08:
		return Key{Code: KeyBackspace}, 1, true
	case c == '\t':
		return Key{Code: KeyTab}, 1, true
	case c == 0x1b:
		return decodeEscape(b)
	case c >= 0x01 && c <= 0x1a:
		return Ctrl(rune('a' + c - 1)), 1, true
	case c < 0x20:
		return Key{}, 1, false
	}
	if !utf8.FullRune(b) {
		return Key{}, 0, false
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError {
		return Key{}, size, false
	}
	return Rune(r), size, true
}

func decodeEscape(b []byte) (Key, int, bool) {
	if len(b) == 1 {
		return Key{Code: KeyEsc}, 1, true
	}
	if b[1] != '[' && b[1] != 'O' {
		// ESC followed by an ordinary key: report the ESC alone.
		return Key{Code: KeyEsc}, 1, true
	}
	// Find the final byte of the CSI/SS3 sequence.
	end := -1
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		return Key{}, 0, false
	}
	n := end + 1
	switch string(b[2:n]) {
	case "A":
		return Key{Code: KeyUp}, n, true
	case "B":
		return Key{Code: KeyDown}, n, true
	case "C":
		return Key{Code: KeyRight}, n, true
	case "D":
		return Key{Code: KeyLeft}, n, true
	case "3~":
		return Key{Code: KeyDelete}, n, true
	}
	return Key{}, n, false
}
