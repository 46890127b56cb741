package vfs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// MarshalJSON encodes the file as a JSON string.
func (f *File) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Content)
}

// UnmarshalJSON decodes a JSON string into the file content.
func (f *File) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &f.Content)
}

// MarshalJSON encodes the directory as a JSON object. Keys come out sorted,
// so equal trees always produce identical bytes.
func (d *Dir) MarshalJSON() ([]byte, error) {
	if d.children == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.children)
}

// UnmarshalJSON decodes a JSON object, inferring each value's kind from its
// JSON type. Keys are kept verbatim, including ones ValidName would refuse
// for new entries, so that a fetched document pushes back unchanged.
func (d *Dir) UnmarshalJSON(data []byte) error {
	return d.decode(data, "")
}

func (d *Dir) decode(data []byte, at string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding %s: %w", displayPath(at), err)
	}
	d.children = make(map[string]Entry, len(raw))
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	var errs []error
	for _, name := range names {
		value := raw[name]
		p := joinPath(at, name)
		e, err := decodeEntry(value, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		d.children[name] = e
	}
	return errors.Join(errs...)
}

func decodeEntry(value json.RawMessage, at string) (Entry, error) {
	trimmed := bytes.TrimLeft(value, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: %w", at, ErrUnsupportedValue)
	}
	switch trimmed[0] {
	case '"':
		f := &File{}
		if err := f.UnmarshalJSON(trimmed); err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		return f, nil
	case '{':
		sub := NewDir()
		if err := sub.decode(trimmed, at); err != nil {
			return nil, err
		}
		return sub, nil
	}
	return nil, fmt.Errorf("%s: %w", at, ErrUnsupportedValue)
}

func joinPath(parent, name string) string {
	if parent == "" || parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
