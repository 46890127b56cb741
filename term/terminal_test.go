package term

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/creack/pty"
	xterm "golang.org/x/term"
)

func TestOpen_RejectsNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "in"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := Open(f, f); err != ErrNotTerminal {
		t.Errorf("Expected ErrNotTerminal, got %v", err)
	}
}

func TestOpen_RestoresTerminalWhenOutputFails(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	before, err := xterm.GetState(int(tty.Fd()))
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}

	out, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	out.Close()

	term, err := Open(tty, out)
	if err == nil {
		term.Close()
		t.Fatal("Expected Open to fail when the screen cannot be written")
	}

	after, err := xterm.GetState(int(tty.Fd()))
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("Expected the terminal to be left out of raw mode")
	}
}
