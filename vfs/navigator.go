package vfs

import (
	"fmt"
	"path"
	"strings"
)

// Navigator tracks the shell's current directory.
//
// The current directory is kept as an absolute path rather than a pointer so
// that the tree needs no parent links; Current re-resolves it on every call.
type Navigator struct {
	root *Dir
	path string
}

// NewNavigator returns a navigator positioned at the root of root.
func NewNavigator(root *Dir) *Navigator {
	return &Navigator{root: root, path: "/"}
}

// Path returns the absolute current path.
func (n *Navigator) Path() string {
	return n.path
}

// AtRoot reports whether the current directory is the root.
func (n *Navigator) AtRoot() bool {
	return n.path == "/"
}

// Up moves to the parent directory. It returns false at the root.
func (n *Navigator) Up() bool {
	if n.AtRoot() {
		return false
	}
	n.path = path.Dir(n.path)
	return true
}

// MoveTo enters the child directory called name, or the parent for "..".
func (n *Navigator) MoveTo(name string) error {
	if name == UpToken {
		n.Up()
		return nil
	}
	if !Addressable(name) {
		return fmt.Errorf("%w: %q cannot be entered", ErrInvalidName, name)
	}
	cur, err := n.Current()
	if err != nil {
		return err
	}
	if _, err := cur.Dir(name); err != nil {
		return err
	}
	n.path = joinPath(n.path, name)
	return nil
}

// Current resolves the current path to its directory.
func (n *Navigator) Current() (*Dir, error) {
	d := n.root
	for _, seg := range strings.Split(n.path, "/") {
		if seg == "" {
			continue
		}
		next, err := d.Dir(seg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptPath, n.path, err)
		}
		d = next
	}
	return d, nil
}
