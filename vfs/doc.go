// Package vfs implements the in-memory document tree behind binfs.
//
// A binfs document is a JSON object whose values are either strings or nested
// objects. This package decodes such a document into a tree of entries and
// provides the operations the shell needs on top of it.
//
// Key Components:
//
// Document Tree:
//   - Entry is a sum type implemented by *File (string content) and *Dir
//     (named children)
//   - Dir owns its children exclusively; there are no parent pointers, so the
//     tree cannot contain cycles
//   - Names are validated on creation: empty names, names containing '/',
//     names made only of '.' and the sentinel name are rejected
//   - Decoding keeps every key as is; Addressable tells which names may be
//     used as path segments
//
// Wire Format:
//   - Values are decoded structurally: a JSON string is a file, a JSON object
//     is a directory, anything else is an error
//   - Document.Encode inserts the sentinel entry before marshalling so the
//     pushed document is never an empty object; Decode removes it again
//
// Navigation:
//   - Navigator tracks the current directory as an absolute path and resolves
//     it against the root on demand
//   - The ".." token moves up one level and is a no-op at the root
//
// Autocomplete:
//   - Complete suggests the remainder of the shortest entry name extending a
//     partially typed name
//
// The package performs no I/O and is not safe for concurrent use; callers that
// share a Document across goroutines must serialise access themselves.
package vfs
