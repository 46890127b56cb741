package vfs

import "encoding/json"

// SentinelName is the reserved file inserted into every pushed document.
// Some stores reject an empty JSON object, so an otherwise empty tree still
// serialises to {"__binfs__":"binfs"}.
const (
	SentinelName    = "__binfs__"
	SentinelContent = "binfs"
)

// Document is a decoded tree together with its modified flag.
type Document struct {
	Root     *Dir
	modified bool
}

// NewDocument returns an empty, unmodified document.
func NewDocument() *Document {
	return &Document{Root: NewDir()}
}

// Decode parses a fetched document and strips the sentinel entry.
func Decode(blob []byte) (*Document, error) {
	root := NewDir()
	if err := root.UnmarshalJSON(blob); err != nil {
		return nil, err
	}
	delete(root.children, SentinelName)
	return &Document{Root: root}, nil
}

// Encode serialises the document for pushing. The sentinel is present only
// for the duration of the call.
func (d *Document) Encode() ([]byte, error) {
	d.Root.children[SentinelName] = &File{Content: SentinelContent}
	defer delete(d.Root.children, SentinelName)
	return json.Marshal(d.Root)
}

// Modified reports whether the document has changes that need pushing.
func (d *Document) Modified() bool {
	return d.modified
}

// MarkModified records a change to the tree.
func (d *Document) MarkModified() {
	d.modified = true
}

// ClearModified drops the pending-change flag, suppressing the push.
func (d *Document) ClearModified() {
	d.modified = false
}
