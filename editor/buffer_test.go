package editor

import (
	"strings"
	"testing"
)

func TestBuffer_InsertAndBackspace(t *testing.T) {
	b := NewBuffer("")
	for _, r := range "ab\nc" {
		b.Insert(r)
	}
	if got := b.String(); got != "ab\nc" {
		t.Fatalf("Expected content %q, got %q", "ab\nc", got)
	}
	if x, y := b.Cursor(); x != 1 || y != 1 {
		t.Fatalf("Expected cursor (1,1), got (%d,%d)", x, y)
	}

	b.Backspace()
	b.Backspace()
	if got := b.String(); got != "ab" {
		t.Errorf("Expected content %q after two deletions, got %q", "ab", got)
	}
	if x, y := b.Cursor(); x != 2 || y != 0 {
		t.Errorf("Expected cursor (2,0), got (%d,%d)", x, y)
	}
}

func TestBuffer_BackspaceMergesLines(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(0, 1)
	b.Backspace()

	if got := b.String(); got != "abcd" {
		t.Errorf("Expected %q, got %q", "abcd", got)
	}
	if x, y := b.Cursor(); x != 2 || y != 0 {
		t.Errorf("Expected cursor (2,0), got (%d,%d)", x, y)
	}
}

func TestBuffer_BackspaceNoOp(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty buffer", content: ""},
		{name: "document start", content: "abc\ndef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(tt.content)
			b.Backspace()
			if b.String() != tt.content {
				t.Errorf("Expected content unchanged, got %q", b.String())
			}
			if x, y := b.Cursor(); x != 0 || y != 0 {
				t.Errorf("Expected cursor (0,0), got (%d,%d)", x, y)
			}
		})
	}
}

func TestBuffer_VerticalClampCompounds(t *testing.T) {
	b := NewBuffer("aaaaa\nbb\ncccccccc")
	b.SetCursor(5, 0)

	b.Move(Down)
	if x, y := b.Cursor(); x != 2 || y != 1 {
		t.Fatalf("Expected cursor (2,1) after first move, got (%d,%d)", x, y)
	}
	b.Move(Down)
	if x, y := b.Cursor(); x != 2 || y != 2 {
		t.Errorf("Expected cursor (2,2) after second move, got (%d,%d)", x, y)
	}
}

func TestBuffer_Move(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		startX       int
		startY       int
		dir          Direction
		wantX, wantY int
	}{
		{name: "up at first line", content: "abc\nd", startX: 2, startY: 0, dir: Up, wantX: 2, wantY: 0},
		{name: "down at last line", content: "abc\nd", startX: 1, startY: 1, dir: Down, wantX: 1, wantY: 1},
		{name: "up clamps", content: "a\nlonger", startX: 5, startY: 1, dir: Up, wantX: 1, wantY: 0},
		{name: "left within line", content: "abc", startX: 2, startY: 0, dir: Left, wantX: 1, wantY: 0},
		{name: "left wraps", content: "abc\nd", startX: 0, startY: 1, dir: Left, wantX: 3, wantY: 0},
		{name: "left at start", content: "abc", startX: 0, startY: 0, dir: Left, wantX: 0, wantY: 0},
		{name: "right within line", content: "abc", startX: 1, startY: 0, dir: Right, wantX: 2, wantY: 0},
		{name: "right wraps", content: "abc\nd", startX: 3, startY: 0, dir: Right, wantX: 0, wantY: 1},
		{name: "right at end", content: "abc\nd", startX: 1, startY: 1, dir: Right, wantX: 1, wantY: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(tt.content)
			b.SetCursor(tt.startX, tt.startY)
			b.Move(tt.dir)
			if x, y := b.Cursor(); x != tt.wantX || y != tt.wantY {
				t.Errorf("Expected cursor (%d,%d), got (%d,%d)", tt.wantX, tt.wantY, x, y)
			}
			if b.String() != tt.content {
				t.Errorf("Move changed content to %q", b.String())
			}
		})
	}
}

func TestBuffer_InsertMidLine(t *testing.T) {
	b := NewBuffer("héllo\nworld")
	b.SetCursor(2, 0)
	b.Insert('X')
	b.SetCursor(0, 1)
	b.Insert('\n')

	if got, want := b.String(), "héXllo\n\nworld"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if x, y := b.Cursor(); x != 0 || y != 2 {
		t.Errorf("Expected cursor (0,2), got (%d,%d)", x, y)
	}
}

func TestBuffer_Delete(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(2, 0)
	b.Delete()
	if got := b.String(); got != "abcd" {
		t.Errorf("Expected line join, got %q", got)
	}
	b.SetCursor(4, 0)
	b.Delete()
	if got := b.String(); got != "abcd" {
		t.Errorf("Delete at end should be a no-op, got %q", got)
	}
}

func TestBuffer_CursorStaysValid(t *testing.T) {
	b := NewBuffer("one\n\nthree\n")
	keys := []func(){
		func() { b.Move(Down) }, func() { b.Move(Right) }, func() { b.Backspace() },
		func() { b.Move(Down) }, func() { b.Move(Down) }, func() { b.Insert('z') },
		func() { b.Move(Left) }, func() { b.Move(Up) }, func() { b.Backspace() },
		func() { b.Insert('\n') }, func() { b.Move(Right) }, func() { b.Move(Up) },
	}
	for i, step := range keys {
		step()
		x, y := b.Cursor()
		lines := strings.Split(b.String(), "\n")
		if y < 0 || y >= len(lines) {
			t.Fatalf("step %d: line %d out of range [0,%d)", i, y, len(lines))
		}
		if x < 0 || x > len([]rune(lines[y])) {
			t.Fatalf("step %d: column %d out of range for line %q", i, x, lines[y])
		}
	}
}

func TestBuffer_LineCount(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 1},
		{"a", 1},
		{"a\n", 2},
		{"a\nb\nc", 3},
	}
	for _, tt := range tests {
		if got := NewBuffer(tt.content).LineCount(); got != tt.want {
			t.Errorf("LineCount(%q) = %d, expected %d", tt.content, got, tt.want)
		}
	}
}
