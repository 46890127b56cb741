// Package shell is the interactive command interpreter of binfs.
//
// An Interpreter owns a decoded vfs.Document, a Navigator positioned in it,
// and at most one open editor.Session. Each submitted line is split into a
// keyword and at most one argument:
//
//	cd NAME           enter a directory ("cd .." goes up)
//	edit NAME         open a file in the editor
//	rm NAME           remove a file or directory
//	n NAME, new NAME  create an empty file and open it
//	d NAME, mkdir NAME
//	                  create a directory and enter it
//	ls, pwd, help     redraw the listing, show the path, show this summary
//	ok                do nothing
//	exit              end the session, pushing pending changes
//	abort             end the session, dropping pending changes
//
// Any other line is a bare name: ".." goes up, a directory is entered and a
// file is opened. A bare name that matches nothing fails with ErrNotFound,
// after one retry against its autocompletion.
//
// ErrBadArgs and ErrNotFound are recoverable and shown on the status row.
// Any other error returned by Exec or Run (vfs.ErrCorruptPath in particular)
// is fatal to the session.
//
// Run drives the interpreter from a term.Surface, polling for keys every
// 50ms and redrawing after each one. Esc leaves the current directory, and at
// the root it ends the session like exit.
package shell
