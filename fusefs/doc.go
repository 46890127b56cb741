// Package fusefs exposes a binfs document as a FUSE filesystem.
//
// Directories of the document become directories and files become regular
// files whose bytes are the file content. The mount is read/write: creating,
// writing, truncating, renaming and removing entries edit the in-memory tree
// and set the document's modified flag, so the caller can push it once the
// filesystem is unmounted.
//
// Nodes hold a path rather than a pointer into the tree and re-resolve it on
// every request, so an entry removed through one path is gone for every open
// node. The kernel may issue requests concurrently; all tree access is
// serialised by a single mutex on FS.
//
// The sentinel entry never appears: it is stripped when the document is
// decoded and cannot be created.
package fusefs
