package fusefs

import (
	"strings"
	"sync"
)

// inodeTable hands out stable inode numbers per path. The root is always 1.
type inodeTable struct {
	mu     sync.Mutex
	next   uint64
	byPath map[string]uint64
}

func newInodeTable() *inodeTable {
	return &inodeTable{next: 1, byPath: map[string]uint64{"/": 1}}
}

func (t *inodeTable) get(path string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ino, ok := t.byPath[path]; ok {
		return ino
	}
	t.next++
	t.byPath[path] = t.next
	return t.next
}

// forget drops path and everything below it.
func (t *inodeTable) forget(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prefix := path + "/"
	for p := range t.byPath {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(t.byPath, p)
		}
	}
}
