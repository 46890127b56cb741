package vfs

import (
	"fmt"
	"sort"
	"strings"
)

// UpToken is the name that navigates to the parent directory.
const UpToken = ".."

// Entry is a node of the document tree: either a *File or a *Dir.
type Entry interface {
	IsDir() bool
	isEntry()
}

// File is a leaf entry holding text content.
type File struct {
	Content string
}

// Dir is a directory entry owning a set of uniquely named children.
type Dir struct {
	children map[string]Entry
}

func (*File) IsDir() bool { return false }
func (*File) isEntry()    {}

func (*Dir) IsDir() bool { return true }
func (*Dir) isEntry()    {}

// NewDir returns an empty directory.
func NewDir() *Dir {
	return &Dir{children: make(map[string]Entry)}
}

// ValidName reports whether name may be used for a user-created entry.
func ValidName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case strings.Contains(name, "/"):
		return fmt.Errorf("%w: %q contains '/'", ErrInvalidName, name)
	case strings.Trim(name, ".") == "":
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	case name == SentinelName:
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	return nil
}

// Addressable reports whether name can be used as one segment of a path.
// Decoded documents may hold keys that cannot, such as "" or "a/b"; those
// entries are kept and pushed back but never entered or listed by path.
func Addressable(name string) bool {
	return name != "" && name != "." && name != UpToken && !strings.Contains(name, "/")
}

// Len returns the number of children.
func (d *Dir) Len() int {
	return len(d.children)
}

// Get returns the child called name.
func (d *Dir) Get(name string) (Entry, bool) {
	e, ok := d.children[name]
	return e, ok
}

// Names returns the child names in lexical order.
func (d *Dir) Names() []string {
	names := make([]string, 0, len(d.children))
	for name := range d.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dir returns the child directory called name.
func (d *Dir) Dir(name string) (*Dir, error) {
	e, ok := d.children[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	sub, ok := e.(*Dir)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, name)
	}
	return sub, nil
}

// File returns the child file called name.
func (d *Dir) File(name string) (*File, error) {
	e, ok := d.children[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	f, ok := e.(*File)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIsDir, name)
	}
	return f, nil
}

// Add inserts e under name. It fails if the name is invalid or taken.
func (d *Dir) Add(name string, e Entry) error {
	if err := ValidName(name); err != nil {
		return err
	}
	if _, ok := d.children[name]; ok {
		return fmt.Errorf("%w: %s", ErrExist, name)
	}
	d.children[name] = e
	return nil
}

// Mkdir creates an empty directory called name.
func (d *Dir) Mkdir(name string) (*Dir, error) {
	sub := NewDir()
	if err := d.Add(name, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Create creates a file called name with the given content.
func (d *Dir) Create(name, content string) (*File, error) {
	f := &File{Content: content}
	if err := d.Add(name, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Remove deletes the child called name together with everything below it.
func (d *Dir) Remove(name string) error {
	if _, ok := d.children[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	delete(d.children, name)
	return nil
}
