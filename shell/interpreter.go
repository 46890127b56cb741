package shell

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/binfs/binfs/editor"
	"github.com/binfs/binfs/logging"
	"github.com/binfs/binfs/term"
	"github.com/binfs/binfs/vfs"
)

const helpText = "cd NAME  edit NAME  rm NAME  new NAME  mkdir NAME  ls  pwd  exit  abort"

var commands = map[string]bool{
	"cd": true, "edit": true, "rm": true, "n": true, "new": true, "d": true, "mkdir": true,
	"abort": true, "exit": true, "ok": true, "ls": true, "pwd": true, "help": true,
}

// Interpreter executes shell commands against a document.
type Interpreter struct {
	doc  *vfs.Document
	nav  *vfs.Navigator
	log  *logging.Logger
	done bool

	editing *editor.Session
	file    *vfs.File

	input  []rune
	status []term.Span
}

// New returns an interpreter at the root of doc. A nil logger discards.
func New(doc *vfs.Document, log *logging.Logger) *Interpreter {
	if log == nil {
		log = logging.NewNop()
	}
	return &Interpreter{
		doc: doc,
		nav: vfs.NewNavigator(doc.Root),
		log: log,
	}
}

// Document returns the document being edited.
func (in *Interpreter) Document() *vfs.Document {
	return in.doc
}

// Navigator returns the current-directory tracker.
func (in *Interpreter) Navigator() *vfs.Navigator {
	return in.nav
}

// Done reports whether the session has ended.
func (in *Interpreter) Done() bool {
	return in.done
}

// Editing returns the open editor session, if any.
func (in *Interpreter) Editing() *editor.Session {
	return in.editing
}

// Status returns the current status-row message.
func (in *Interpreter) Status() string {
	return term.Text(in.status)
}

// Submit executes line and, when it names nothing, retries once with the
// autocompleted name.
func (in *Interpreter) Submit(line string) error {
	err := in.Exec(line)
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	suffix, ok, cerr := in.Suggest(line)
	if cerr != nil {
		return cerr
	}
	if !ok {
		return err
	}
	in.log.Debug("retrying with completion", zap.String("line", line), zap.String("suffix", suffix))
	return in.Exec(line + suffix)
}

// Suggest returns the completion for line against the current directory.
// After a command keyword the last word is completed; otherwise the whole
// line is a bare name and is completed as one.
func (in *Interpreter) Suggest(line string) (string, bool, error) {
	partial := strings.TrimLeft(line, " ")
	if i := strings.IndexByte(partial, ' '); i >= 0 && commands[partial[:i]] {
		partial = partial[strings.LastIndexByte(partial, ' ')+1:]
	}
	if partial == "" {
		return "", false, nil
	}
	cur, err := in.nav.Current()
	if err != nil {
		return "", false, err
	}
	suffix, ok := cur.Complete(partial)
	return suffix, ok, nil
}

// Exec runs a single command line.
func (in *Interpreter) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	keyword, args := fields[0], fields[1:]

	switch keyword {
	case "cd", "edit", "rm", "n", "new", "d", "mkdir":
		if len(args) != 1 {
			return fmt.Errorf("%w: %s takes exactly one name", ErrBadArgs, keyword)
		}
	case "abort", "exit", "ok", "ls", "pwd", "help":
		if len(args) != 0 {
			return fmt.Errorf("%w: %s takes no arguments", ErrBadArgs, keyword)
		}
	}

	switch keyword {
	case "cd":
		return in.cd(args[0])
	case "edit":
		return in.edit(args[0])
	case "rm":
		return in.rm(args[0])
	case "n", "new":
		return in.create(args[0])
	case "d", "mkdir":
		return in.mkdir(args[0])
	case "abort":
		in.doc.ClearModified()
		in.done = true
		return nil
	case "exit":
		in.done = true
		return nil
	case "ok", "ls":
		return nil
	case "pwd":
		in.setStatus(term.StyleInfo, in.nav.Path())
		return nil
	case "help":
		in.setStatus(term.StyleInfo, helpText)
		return nil
	}
	return in.bare(strings.TrimSpace(line))
}

func (in *Interpreter) cd(name string) error {
	err := in.nav.MoveTo(name)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, vfs.ErrCorruptPath):
		return err
	}
	return fmt.Errorf("%w: cd: %w", ErrBadArgs, err)
}

func (in *Interpreter) edit(name string) error {
	cur, err := in.nav.Current()
	if err != nil {
		return err
	}
	f, err := cur.File(name)
	switch {
	case errors.Is(err, vfs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	case err != nil:
		return fmt.Errorf("%w: edit: %w", ErrBadArgs, err)
	}
	in.open(name, f)
	return nil
}

func (in *Interpreter) rm(name string) error {
	cur, err := in.nav.Current()
	if err != nil {
		return err
	}
	if err := cur.Remove(name); err != nil {
		return fmt.Errorf("%w: rm: %w", ErrBadArgs, err)
	}
	in.doc.MarkModified()
	in.setStatus(term.StyleInfo, "removed "+name)
	return nil
}

func (in *Interpreter) create(name string) error {
	cur, err := in.nav.Current()
	if err != nil {
		return err
	}
	f, err := cur.Create(name, "")
	if err != nil {
		return fmt.Errorf("%w: new: %w", ErrBadArgs, err)
	}
	in.doc.MarkModified()
	in.open(name, f)
	return nil
}

func (in *Interpreter) mkdir(name string) error {
	cur, err := in.nav.Current()
	if err != nil {
		return err
	}
	if _, err := cur.Mkdir(name); err != nil {
		return fmt.Errorf("%w: mkdir: %w", ErrBadArgs, err)
	}
	in.doc.MarkModified()
	return in.nav.MoveTo(name)
}

func (in *Interpreter) bare(name string) error {
	if name == vfs.UpToken {
		in.nav.Up()
		return nil
	}
	cur, err := in.nav.Current()
	if err != nil {
		return err
	}
	e, ok := cur.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if f, isFile := e.(*vfs.File); isFile {
		in.open(name, f)
		return nil
	}
	return in.cd(name)
}

func (in *Interpreter) open(name string, f *vfs.File) {
	p := in.nav.Path()
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	in.editing = editor.NewSession(p+name, f.Content)
	in.file = f
	in.log.Debug("opened file", zap.String("path", p+name))
}

// HandleEditorKey forwards k to the open editor and applies the resulting
// action to the tree.
func (in *Interpreter) HandleEditorKey(k term.Key) {
	if in.editing == nil {
		return
	}
	switch in.editing.HandleKey(k) {
	case editor.SaveAndContinue:
		in.save()
		in.editing.SetStatus(in.status...)
	case editor.SaveAndExit:
		in.save()
		in.closeEditor()
	case editor.DiscardAndExit:
		in.setStatus(term.StyleDim, "discarded changes to "+in.editing.Path())
		in.closeEditor()
	}
}

// save commits the editor content. The document is only marked modified
// when the file text actually changes.
func (in *Interpreter) save() {
	path := in.editing.Path()
	content := in.editing.Content()
	if content == in.file.Content {
		in.setStatus(term.StyleDim, "no changes to "+path)
		in.editing.MarkSaved()
		return
	}
	summary := editor.Summarize(in.file.Content, content)
	in.file.Content = content
	in.doc.MarkModified()
	in.editing.MarkSaved()
	in.setStatus(term.StyleInfo, fmt.Sprintf("saved %s %s", path, summary))
	in.log.Debug("saved file", zap.String("path", path), zap.Int("added", summary.Added), zap.Int("removed", summary.Removed))
}

func (in *Interpreter) closeEditor() {
	in.editing = nil
	in.file = nil
}

func (in *Interpreter) setStatus(style term.Style, msg string) {
	in.status = []term.Span{term.Styled(style, msg)}
}
