package vfs

import (
	"fmt"
	"strings"
)

// Lookup resolves a slash-delimited path relative to d. Empty segments are
// ignored, so "a//b" and "/a/b" name the same entry.
func (d *Dir) Lookup(p string) (Entry, error) {
	var cur Entry = d
	walked := ""
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			continue
		}
		dir, ok := cur.(*Dir)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotDir, displayPath(walked))
		}
		next, ok := dir.Get(seg)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, joinPath(walked, seg))
		}
		walked = joinPath(walked, seg)
		cur = next
	}
	return cur, nil
}

// ReadFile returns the content of the file at p.
func (d *Dir) ReadFile(p string) (string, error) {
	e, err := d.Lookup(p)
	if err != nil {
		return "", err
	}
	f, ok := e.(*File)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrIsDir, p)
	}
	return f.Content, nil
}

// WalkFunc is called for every entry below the walked directory with its
// absolute path. Returning an error stops the walk.
type WalkFunc func(p string, e Entry) error

// Walk visits every entry below d depth-first in lexical order.
func (d *Dir) Walk(fn WalkFunc) error {
	return d.walk("", fn)
}

func (d *Dir) walk(at string, fn WalkFunc) error {
	for _, name := range d.Names() {
		e := d.children[name]
		p := joinPath(at, name)
		if err := fn(p, e); err != nil {
			return err
		}
		if sub, ok := e.(*Dir); ok {
			if err := sub.walk(p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats summarises a tree.
type Stats struct {
	Files int `json:"files"`
	Dirs  int `json:"dirs"`
	Bytes int `json:"bytes"`
}

// Stats counts the files, directories and content bytes below d.
func (d *Dir) Stats() Stats {
	var s Stats
	d.Walk(func(_ string, e Entry) error {
		switch v := e.(type) {
		case *File:
			s.Files++
			s.Bytes += len(v.Content)
		case *Dir:
			s.Dirs++
		}
		return nil
	})
	return s
}
