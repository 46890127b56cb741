package vfs

import (
	"sort"
	"strings"
)

// Complete returns the text to append to partial so that it names the
// shortest entry among names that strictly extends it. Equal-length
// candidates are taken in the order names is given.
func Complete(names []string, partial string) (string, bool) {
	if partial == "" {
		return "", false
	}
	candidates := make([]string, len(names))
	copy(candidates, names)
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) < len(candidates[j])
	})
	for _, name := range candidates {
		if name != partial && strings.HasPrefix(name, partial) {
			return name[len(partial):], true
		}
	}
	return "", false
}

// Complete suggests a completion for partial among the directory's entries.
func (d *Dir) Complete(partial string) (string, bool) {
	return Complete(d.Names(), partial)
}
