// Package main provides the binfs command-line interface.
//
// binfs presents a single JSON document, kept in a jsonbin-style HTTP bin, an
// S3 object or a local file, as a small filesystem. JSON objects are
// directories and JSON strings are files.
//
// The main binary supports:
//   - binfs: interactive shell with an embedded text editor
//   - binfs PATH: print one file and exit
//   - mount: serve the document as a FUSE filesystem
//   - diff: compare a local document with the remote one
//   - count, validate, seed, convert: document utilities
package main
