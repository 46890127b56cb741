package fusefs

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/binfs/binfs/vfs"
)

func newTestFS(t *testing.T) *FS {
	t.Helper()
	doc, err := vfs.Decode([]byte(`{"__binfs__":"binfs","notes":"hello","docs":{"a":"1"},"empty":{}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return New(doc, nil)
}

func rootDir(t *testing.T, f *FS) *Dir {
	t.Helper()
	n, err := f.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	return n.(*Dir)
}

func lookup(t *testing.T, d *Dir, name string) fs.Node {
	t.Helper()
	n, err := d.Lookup(context.Background(), name)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", name, err)
	}
	return n
}

func TestReadDirAll(t *testing.T) {
	f := newTestFS(t)
	dirents, err := rootDir(t, f).ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}

	want := map[string]fuse.DirentType{"docs": fuse.DT_Dir, "empty": fuse.DT_Dir, "notes": fuse.DT_File}
	if len(dirents) != len(want) {
		t.Fatalf("Expected %d entries, got %v", len(want), dirents)
	}
	seen := map[uint64]bool{}
	for _, de := range dirents {
		if want[de.Name] != de.Type {
			t.Errorf("Entry %q has type %v, expected %v", de.Name, de.Type, want[de.Name])
		}
		if de.Inode <= 1 || seen[de.Inode] {
			t.Errorf("Entry %q has bad or duplicate inode %d", de.Name, de.Inode)
		}
		seen[de.Inode] = true
	}
}

func TestReadDirAll_SkipsUnaddressableNames(t *testing.T) {
	doc, err := vfs.Decode([]byte(`{"a/b":"x","":"y","..":{},"ok":"z"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	dirents, err := rootDir(t, New(doc, nil)).ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	if len(dirents) != 1 || dirents[0].Name != "ok" {
		t.Errorf("Expected only ok to be listed, got %v", dirents)
	}
	if doc.Root.Len() != 4 {
		t.Errorf("Listing must not drop entries from the document, have %d", doc.Root.Len())
	}
}

func TestLookup(t *testing.T) {
	f := newTestFS(t)
	root := rootDir(t, f)

	if _, ok := lookup(t, root, "docs").(*Dir); !ok {
		t.Error("Expected docs to be a directory node")
	}
	file, ok := lookup(t, root, "notes").(*File)
	if !ok {
		t.Fatal("Expected notes to be a file node")
	}
	data, err := file.ReadAll(context.Background())
	if err != nil || string(data) != "hello" {
		t.Errorf("ReadAll = %q, %v", data, err)
	}

	for _, name := range []string{"missing", vfs.SentinelName} {
		if _, err := root.Lookup(context.Background(), name); !errors.Is(err, syscall.ENOENT) {
			t.Errorf("Lookup(%q) = %v, expected ENOENT", name, err)
		}
	}
}

func TestAttr(t *testing.T) {
	f := newTestFS(t)
	root := rootDir(t, f)

	var a fuse.Attr
	if err := root.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if a.Inode != 1 || !a.Mode.IsDir() {
		t.Errorf("Expected root inode 1 and a directory, got %d %v", a.Inode, a.Mode)
	}

	file := lookup(t, root, "notes").(*File)
	if err := file.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if a.Size != 5 || a.Mode.IsDir() {
		t.Errorf("Expected regular file of size 5, got %d %v", a.Size, a.Mode)
	}
	first := a.Inode
	file.Attr(context.Background(), &a)
	if a.Inode != first {
		t.Errorf("Inode changed between calls: %d then %d", first, a.Inode)
	}
}

func TestCreateWriteTruncate(t *testing.T) {
	f := newTestFS(t)
	docs := lookup(t, rootDir(t, f), "docs").(*Dir)
	ctx := context.Background()

	node, _, err := docs.Create(ctx, &fuse.CreateRequest{Name: "b", Mode: 0o644}, &fuse.CreateResponse{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !f.Modified() {
		t.Error("Create should mark the document modified")
	}
	file := node.(*File)

	resp := &fuse.WriteResponse{}
	if err := file.Write(ctx, &fuse.WriteRequest{Offset: 0, Data: []byte("hello world")}, resp); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if resp.Size != 11 {
		t.Errorf("Expected 11 bytes written, got %d", resp.Size)
	}
	file.Write(ctx, &fuse.WriteRequest{Offset: 6, Data: []byte("there")}, &fuse.WriteResponse{})

	setResp := &fuse.SetattrResponse{}
	if err := file.Setattr(ctx, &fuse.SetattrRequest{Valid: fuse.SetattrSize, Size: 5}, setResp); err != nil {
		t.Fatalf("Setattr failed: %v", err)
	}
	if setResp.Attr.Size != 5 {
		t.Errorf("Expected size 5 after truncate, got %d", setResp.Attr.Size)
	}

	got, err := f.doc.Root.ReadFile("docs/b")
	if err != nil || got != "hello" {
		t.Errorf("Expected tree content %q, got %q, %v", "hello", got, err)
	}

	if _, _, err := docs.Create(ctx, &fuse.CreateRequest{Name: "a"}, &fuse.CreateResponse{}); !errors.Is(err, syscall.EEXIST) {
		t.Errorf("Create over existing file = %v, expected EEXIST", err)
	}
	if _, _, err := docs.Create(ctx, &fuse.CreateRequest{Name: ".."}, &fuse.CreateResponse{}); !errors.Is(err, syscall.EINVAL) {
		t.Errorf("Create reserved name = %v, expected EINVAL", err)
	}
}

func TestSetattrDoesNotDeadlock(t *testing.T) {
	f := newTestFS(t)
	file := lookup(t, rootDir(t, f), "notes").(*File)

	done := make(chan error, 1)
	go func() {
		done <- file.Setattr(context.Background(), &fuse.SetattrRequest{Valid: fuse.SetattrMtime, Mtime: time.Now()}, &fuse.SetattrResponse{})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Setattr failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Setattr deadlocked - test timed out")
	}
	if f.Modified() {
		t.Error("Setting only mtime must not mark the document modified")
	}
}

func TestMkdirAndRemove(t *testing.T) {
	f := newTestFS(t)
	root := rootDir(t, f)
	ctx := context.Background()

	if _, err := root.Mkdir(ctx, &fuse.MkdirRequest{Name: "new"}); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if _, err := root.Mkdir(ctx, &fuse.MkdirRequest{Name: "new"}); !errors.Is(err, syscall.EEXIST) {
		t.Errorf("Second Mkdir = %v, expected EEXIST", err)
	}

	tests := []struct {
		name string
		req  fuse.RemoveRequest
		want error
	}{
		{name: "rmdir non-empty", req: fuse.RemoveRequest{Name: "docs", Dir: true}, want: syscall.ENOTEMPTY},
		{name: "unlink directory", req: fuse.RemoveRequest{Name: "empty"}, want: syscall.EISDIR},
		{name: "rmdir file", req: fuse.RemoveRequest{Name: "notes", Dir: true}, want: syscall.ENOTDIR},
		{name: "missing", req: fuse.RemoveRequest{Name: "nope"}, want: syscall.ENOENT},
		{name: "rmdir empty", req: fuse.RemoveRequest{Name: "empty", Dir: true}},
		{name: "unlink file", req: fuse.RemoveRequest{Name: "notes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := root.Remove(ctx, &tt.req)
			if tt.want == nil && err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("Remove = %v, expected %v", err, tt.want)
			}
		})
	}

	if got := f.doc.Root.Names(); len(got) != 2 || got[0] != "docs" || got[1] != "new" {
		t.Errorf("Expected [docs new] to remain, got %v", got)
	}
}

func TestRemovedNodeGoesStale(t *testing.T) {
	f := newTestFS(t)
	root := rootDir(t, f)
	file := lookup(t, root, "notes").(*File)

	if err := root.Remove(context.Background(), &fuse.RemoveRequest{Name: "notes"}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := file.ReadAll(context.Background()); !errors.Is(err, syscall.ENOENT) {
		t.Errorf("ReadAll on removed file = %v, expected ENOENT", err)
	}
}

func TestRename(t *testing.T) {
	f := newTestFS(t)
	root := rootDir(t, f)
	docs := lookup(t, root, "docs").(*Dir)
	ctx := context.Background()

	if err := root.Rename(ctx, &fuse.RenameRequest{OldName: "notes", NewName: "a"}, docs); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	got, err := f.doc.Root.ReadFile("docs/a")
	if err != nil || got != "hello" {
		t.Errorf("Expected renamed file to replace docs/a, got %q, %v", got, err)
	}
	if _, ok := f.doc.Root.Get("notes"); ok {
		t.Error("Old name should be gone")
	}

	if err := root.Rename(ctx, &fuse.RenameRequest{OldName: "empty", NewName: "docs"}, root); !errors.Is(err, syscall.EEXIST) {
		t.Errorf("Rename over directory = %v, expected EEXIST", err)
	}
	if err := root.Rename(ctx, &fuse.RenameRequest{OldName: "empty", NewName: "a/b"}, root); !errors.Is(err, syscall.EINVAL) {
		t.Errorf("Rename to invalid name = %v, expected EINVAL", err)
	}
}
