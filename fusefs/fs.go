package fusefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"go.uber.org/zap"

	"github.com/binfs/binfs/logging"
	"github.com/binfs/binfs/vfs"
)

// FS implements the binfs FUSE filesystem
type FS struct {
	doc     *vfs.Document
	log     *logging.Logger
	inodes  *inodeTable
	mounted time.Time
	mu      sync.Mutex // Protects doc
}

// New returns a filesystem serving doc.
func New(doc *vfs.Document, log *logging.Logger) *FS {
	if log == nil {
		log = logging.NewNop()
	}
	return &FS{
		doc:     doc,
		log:     log,
		inodes:  newInodeTable(),
		mounted: time.Now(),
	}
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, path: "/"}, nil
}

// Modified reports whether anything was changed through the mount.
func (f *FS) Modified() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.Modified()
}

// Mount serves f at mountpoint until ctx is cancelled or the filesystem is
// unmounted externally.
func Mount(ctx context.Context, mountpoint string, f *FS) error {
	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("binfs"),
		fuse.Subtype("binfs"),
	)
	if err != nil {
		return fmt.Errorf("failed to mount %s: %w", mountpoint, err)
	}
	defer c.Close()

	served := make(chan error, 1)
	go func() {
		served <- fs.Serve(c, f)
	}()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
		f.log.Info("unmounting", zap.String("mountpoint", mountpoint))
		if err := fuse.Unmount(mountpoint); err != nil {
			return fmt.Errorf("failed to unmount %s: %w", mountpoint, err)
		}
		return <-served
	}
}

// lookup resolves p to its entry. Callers hold f.mu.
func (f *FS) lookup(p string) (vfs.Entry, error) {
	if p == "/" {
		return f.doc.Root, nil
	}
	e, err := f.doc.Root.Lookup(p)
	if err != nil {
		return nil, syscall.ENOENT
	}
	return e, nil
}

func (f *FS) dir(p string) (*vfs.Dir, error) {
	e, err := f.lookup(p)
	if err != nil {
		return nil, err
	}
	d, ok := e.(*vfs.Dir)
	if !ok {
		return nil, syscall.ENOTDIR
	}
	return d, nil
}

func (f *FS) file(p string) (*vfs.File, error) {
	e, err := f.lookup(p)
	if err != nil {
		return nil, err
	}
	file, ok := e.(*vfs.File)
	if !ok {
		return nil, syscall.EISDIR
	}
	return file, nil
}

// errno maps tree errors to the closest POSIX error.
func errno(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, vfs.ErrExist):
		return syscall.EEXIST
	case errors.Is(err, vfs.ErrNotExist):
		return syscall.ENOENT
	case errors.Is(err, vfs.ErrInvalidName), errors.Is(err, vfs.ErrReservedName):
		return syscall.EINVAL
	case errors.Is(err, vfs.ErrNotDir):
		return syscall.ENOTDIR
	case errors.Is(err, vfs.ErrIsDir):
		return syscall.EISDIR
	}
	return syscall.EIO
}

// Dir implements both Node and Handle for directories
type Dir struct {
	fs   *FS
	path string
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()
	if _, err := d.fs.dir(d.path); err != nil {
		return err
	}
	a.Inode = d.fs.inodes.get(d.path)
	a.Mode = os.ModeDir | 0o755
	a.Mtime = d.fs.mounted
	a.Ctime = d.fs.mounted
	a.Atime = time.Now()
	return nil
}

// Lookup resolves file/directory names to nodes
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	dir, err := d.fs.dir(d.path)
	if err != nil {
		return nil, err
	}
	e, ok := dir.Get(name)
	if !ok {
		return nil, syscall.ENOENT
	}
	return d.node(name, e), nil
}

func (d *Dir) node(name string, e vfs.Entry) fs.Node {
	p := path.Join(d.path, name)
	if e.IsDir() {
		return &Dir{fs: d.fs, path: p}
	}
	return &File{fs: d.fs, path: p}
}

// ReadDirAll lists directory contents
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	dir, err := d.fs.dir(d.path)
	if err != nil {
		return nil, err
	}
	var dirents []fuse.Dirent
	for _, name := range dir.Names() {
		// kept in the document but not representable as a file name
		if !vfs.Addressable(name) {
			continue
		}
		e, _ := dir.Get(name)
		typ := fuse.DT_File
		if e.IsDir() {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{
			Inode: d.fs.inodes.get(path.Join(d.path, name)),
			Name:  name,
			Type:  typ,
		})
	}
	return dirents, nil
}

// Create creates a new empty file
func (d *Dir) Create(ctx context.Context, req *fuse.CreateRequest, resp *fuse.CreateResponse) (fs.Node, fs.Handle, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	dir, err := d.fs.dir(d.path)
	if err != nil {
		return nil, nil, err
	}
	if _, err := dir.Create(req.Name, ""); err != nil {
		return nil, nil, errno(err)
	}
	d.fs.doc.MarkModified()
	d.fs.log.Debug("created file", zap.String("path", path.Join(d.path, req.Name)))

	file := &File{fs: d.fs, path: path.Join(d.path, req.Name)}
	file.attr(&resp.Attr, &vfs.File{})
	return file, file, nil
}

// Mkdir creates a new directory
func (d *Dir) Mkdir(ctx context.Context, req *fuse.MkdirRequest) (fs.Node, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	dir, err := d.fs.dir(d.path)
	if err != nil {
		return nil, err
	}
	if _, err := dir.Mkdir(req.Name); err != nil {
		return nil, errno(err)
	}
	d.fs.doc.MarkModified()
	d.fs.log.Debug("created directory", zap.String("path", path.Join(d.path, req.Name)))
	return &Dir{fs: d.fs, path: path.Join(d.path, req.Name)}, nil
}

// Remove deletes a file (unlink) or an empty directory (rmdir)
func (d *Dir) Remove(ctx context.Context, req *fuse.RemoveRequest) error {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	dir, err := d.fs.dir(d.path)
	if err != nil {
		return err
	}
	e, ok := dir.Get(req.Name)
	if !ok {
		return syscall.ENOENT
	}
	sub, isDir := e.(*vfs.Dir)
	switch {
	case req.Dir && !isDir:
		return syscall.ENOTDIR
	case !req.Dir && isDir:
		return syscall.EISDIR
	case isDir && sub.Len() > 0:
		return syscall.ENOTEMPTY
	}
	if err := dir.Remove(req.Name); err != nil {
		return errno(err)
	}
	d.fs.doc.MarkModified()
	d.fs.inodes.forget(path.Join(d.path, req.Name))
	return nil
}

// Rename moves an entry, replacing an existing file at the destination
func (d *Dir) Rename(ctx context.Context, req *fuse.RenameRequest, newDir fs.Node) error {
	target, ok := newDir.(*Dir)
	if !ok {
		return syscall.EINVAL
	}

	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	from, err := d.fs.dir(d.path)
	if err != nil {
		return err
	}
	to, err := d.fs.dir(target.path)
	if err != nil {
		return err
	}
	e, ok := from.Get(req.OldName)
	if !ok {
		return syscall.ENOENT
	}
	if err := vfs.ValidName(req.NewName); err != nil {
		return syscall.EINVAL
	}
	if from == to && req.OldName == req.NewName {
		return nil
	}
	if existing, ok := to.Get(req.NewName); ok {
		if existing.IsDir() {
			return syscall.EEXIST
		}
		if err := to.Remove(req.NewName); err != nil {
			return errno(err)
		}
	}
	if err := from.Remove(req.OldName); err != nil {
		return errno(err)
	}
	if err := to.Add(req.NewName, e); err != nil {
		return errno(err)
	}
	d.fs.doc.MarkModified()
	d.fs.inodes.forget(path.Join(d.path, req.OldName))
	d.fs.inodes.forget(path.Join(target.path, req.NewName))
	return nil
}

// File implements both Node and Handle for document files
type File struct {
	fs   *FS
	path string
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	file, err := f.fs.file(f.path)
	if err != nil {
		return err
	}
	f.attr(a, file)
	return nil
}

// attr fills a for file. Callers hold f.fs.mu.
func (f *File) attr(a *fuse.Attr, file *vfs.File) {
	a.Inode = f.fs.inodes.get(f.path)
	a.Mode = 0o644
	a.Size = uint64(len(file.Content))
	a.Mtime = f.fs.mounted
	a.Ctime = f.fs.mounted
	a.Atime = time.Now()
}

// ReadAll reads the entire file content
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	file, err := f.fs.file(f.path)
	if err != nil {
		return nil, err
	}
	return []byte(file.Content), nil
}

// Write writes data into the file content
func (f *File) Write(ctx context.Context, req *fuse.WriteRequest, resp *fuse.WriteResponse) error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	file, err := f.fs.file(f.path)
	if err != nil {
		return err
	}
	data := []byte(file.Content)
	if newLen := int(req.Offset) + len(req.Data); newLen > len(data) {
		grown := make([]byte, newLen)
		copy(grown, data)
		data = grown
	}
	copy(data[req.Offset:], req.Data)
	resp.Size = len(req.Data)

	if string(data) != file.Content {
		file.Content = string(data)
		f.fs.doc.MarkModified()
	}
	return nil
}

// Flush is a no-op: writes land in the tree immediately
func (f *File) Flush(ctx context.Context, req *fuse.FlushRequest) error {
	return nil
}

// Fsync forces synchronization
func (f *File) Fsync(ctx context.Context, req *fuse.FsyncRequest) error {
	return f.Flush(ctx, &fuse.FlushRequest{})
}

// Setattr truncates or extends the file
func (f *File) Setattr(ctx context.Context, req *fuse.SetattrRequest, resp *fuse.SetattrResponse) error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	file, err := f.fs.file(f.path)
	if err != nil {
		return err
	}
	if req.Valid.Size() {
		data := []byte(file.Content)
		if req.Size < uint64(len(data)) {
			data = data[:req.Size]
		} else if req.Size > uint64(len(data)) {
			grown := make([]byte, req.Size)
			copy(grown, data)
			data = grown
		}
		if string(data) != file.Content {
			file.Content = string(data)
			f.fs.doc.MarkModified()
		}
	}

	// Attr would take the lock again
	f.attr(&resp.Attr, file)
	return nil
}
