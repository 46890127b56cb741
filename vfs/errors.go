package vfs

import "errors"

// Sentinel errors for package vfs.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Lookup errors
	ErrNotExist = errors.New("no such entry")
	ErrNotDir   = errors.New("not a directory")
	ErrIsDir    = errors.New("is a directory")

	// Creation errors
	ErrExist        = errors.New("entry already exists")
	ErrInvalidName  = errors.New("invalid entry name")
	ErrReservedName = errors.New("reserved entry name")

	// Decoding errors
	ErrUnsupportedValue = errors.New("value must be a string or an object")

	// Navigator errors. ErrCorruptPath means the current path no longer
	// resolves to a directory, which only happens if the tree was changed
	// behind the navigator's back.
	ErrCorruptPath = errors.New("current path does not resolve to a directory")
)
