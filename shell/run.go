package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/binfs/binfs/term"
	"github.com/binfs/binfs/vfs"
)

// PollInterval bounds how long Run waits for a key before checking ctx.
const PollInterval = 50 * time.Millisecond

const promptMark = "> "

// Run processes keys from surf until the session ends, ctx is cancelled or
// input is exhausted. A nil return means the session ended normally and the
// document may be pushed if modified.
func (in *Interpreter) Run(ctx context.Context, surf term.Surface) error {
	if err := in.Render(surf); err != nil {
		return err
	}
	for !in.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		k, ok, err := surf.ReadKey(PollInterval)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		if !ok {
			continue
		}
		if err := in.HandleKey(k); err != nil {
			return err
		}
		if err := in.Render(surf); err != nil {
			return err
		}
	}
	return nil
}

// HandleKey applies one key press: to the editor when a file is open,
// otherwise to the prompt. Only fatal errors are returned.
func (in *Interpreter) HandleKey(k term.Key) error {
	if in.editing != nil {
		in.HandleEditorKey(k)
		return nil
	}

	switch k.Code {
	case term.KeyRune:
		if !k.Ctrl {
			in.input = append(in.input, k.Rune)
		}
	case term.KeyBackspace:
		if len(in.input) > 0 {
			in.input = in.input[:len(in.input)-1]
		}
	case term.KeyTab:
		suffix, ok, err := in.Suggest(string(in.input))
		if err != nil {
			return err
		}
		if ok {
			in.input = append(in.input, []rune(suffix)...)
		}
	case term.KeyEsc:
		in.input = in.input[:0]
		if !in.nav.Up() {
			in.done = true
		}
	case term.KeyEnter:
		line := string(in.input)
		in.input = in.input[:0]
		in.status = nil
		err := in.Submit(line)
		if err == nil {
			return nil
		}
		if !Recoverable(err) {
			return err
		}
		in.log.Debug("command failed", zap.String("line", line), zap.Error(err))
		in.setStatus(term.StyleError, err.Error())
	}
	return nil
}

// Render draws the current state on surf and flushes it.
func (in *Interpreter) Render(surf term.Surface) error {
	if in.editing != nil {
		in.editing.Render(surf)
		return surf.Flush()
	}

	cur, err := in.nav.Current()
	if err != nil {
		return err
	}
	_, height := surf.Size()
	surf.Clear()

	header := []term.Span{term.Styled(term.StyleBold, "binfs "), term.Plain(in.nav.Path())}
	if in.doc.Modified() {
		header = append(header, term.Styled(term.StyleDim, " *"))
	}
	surf.WriteLine(0, header...)

	rows := max(height-3, 0)
	names := cur.Names()
	for i, name := range names {
		if i >= rows {
			break
		}
		if i == rows-1 && len(names) > rows {
			surf.WriteLine(i+1, term.Styled(term.StyleDim, fmt.Sprintf("... %d more", len(names)-i)))
			break
		}
		surf.WriteLine(i+1, entrySpans(cur, name)...)
	}

	if height >= 2 {
		surf.WriteLine(height-2, in.status...)
	}

	prompt := []term.Span{term.Styled(term.StyleBold, promptMark), term.Plain(string(in.input))}
	if suffix, ok, _ := in.Suggest(string(in.input)); ok {
		prompt = append(prompt, term.Styled(term.StyleDim, suffix))
	}
	surf.WriteLine(height-1, prompt...)
	surf.MoveCursor(runewidth.StringWidth(promptMark+string(in.input)), height-1)
	return surf.Flush()
}

func entrySpans(d *vfs.Dir, name string) []term.Span {
	e, _ := d.Get(name)
	if e.IsDir() {
		return []term.Span{term.Styled(term.StyleName, name), term.Styled(term.StyleDim, "/")}
	}
	return []term.Span{term.Styled(term.StyleName, name)}
}
