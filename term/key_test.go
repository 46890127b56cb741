package term

import (
	"io"
	"testing"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		key   Key
		n     int
		ok    bool
	}{
		{name: "letter", input: []byte("a"), key: Rune('a'), n: 1, ok: true},
		{name: "multibyte rune", input: []byte("é!"), key: Rune('é'), n: 2, ok: true},
		{name: "carriage return", input: []byte{'\r'}, key: Key{Code: KeyEnter}, n: 1, ok: true},
		{name: "delete byte", input: []byte{0x7f}, key: Key{Code: KeyBackspace}, n: 1, ok: true},
		{name: "tab", input: []byte{'\t'}, key: Key{Code: KeyTab}, n: 1, ok: true},
		{name: "ctrl s", input: []byte{0x13}, key: Ctrl('s'), n: 1, ok: true},
		{name: "ctrl x", input: []byte{0x18}, key: Ctrl('x'), n: 1, ok: true},
		{name: "lone escape", input: []byte{0x1b}, key: Key{Code: KeyEsc}, n: 1, ok: true},
		{name: "arrow up", input: []byte("\x1b[A"), key: Key{Code: KeyUp}, n: 3, ok: true},
		{name: "arrow left ss3", input: []byte("\x1bOD"), key: Key{Code: KeyLeft}, n: 3, ok: true},
		{name: "delete", input: []byte("\x1b[3~"), key: Key{Code: KeyDelete}, n: 4, ok: true},
		{name: "incomplete csi", input: []byte("\x1b[3"), n: 0, ok: false},
		{name: "incomplete rune", input: []byte{0xc3}, n: 0, ok: false},
		{name: "unknown csi consumed", input: []byte("\x1b[15~x"), n: 5, ok: false},
		{name: "escape then letter", input: []byte("\x1bq"), key: Key{Code: KeyEsc}, n: 1, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, n, ok := DecodeKey(tt.input)
			if n != tt.n || ok != tt.ok {
				t.Fatalf("DecodeKey(%q) = (_, %d, %v), expected (_, %d, %v)", tt.input, n, ok, tt.n, tt.ok)
			}
			if ok && key != tt.key {
				t.Errorf("DecodeKey(%q) key = %v, expected %v", tt.input, key, tt.key)
			}
		})
	}
}

func TestScreen(t *testing.T) {
	s := NewScreen(5, 2)
	s.Type("hi\n")

	s.WriteLine(0, Plain("hello"), Styled(StyleError, " world"))
	if got := s.Line(0); got != "hello" {
		t.Errorf("Expected line truncated to width, got %q", got)
	}
	s.WriteLine(7, Plain("ignored"))

	var keys []Key
	for {
		k, ok, err := s.ReadKey(0)
		if err == io.EOF {
			break
		}
		if !ok || err != nil {
			t.Fatalf("ReadKey = (%v, %v, %v)", k, ok, err)
		}
		keys = append(keys, k)
	}
	want := []Key{Rune('h'), Rune('i'), {Code: KeyEnter}}
	if len(keys) != len(want) {
		t.Fatalf("Expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d = %v, expected %v", i, keys[i], want[i])
		}
	}

	s.Clear()
	if s.Line(0) != "" {
		t.Error("Clear should blank every row")
	}
}

func TestNameColorIsStable(t *testing.T) {
	a := NameColor("projects").Sprint("x")
	b := NameColor("projects").Sprint("x")
	if a != b {
		t.Errorf("Expected the same colour for the same name, got %q and %q", a, b)
	}
}
