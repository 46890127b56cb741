package store

import (
	"context"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/binfs/binfs/config"
	"github.com/binfs/binfs/vfs"
)

var (
	// ErrStatus is returned when a remote store answers with a non-2xx status.
	ErrStatus = errors.New("unexpected response status")
	// ErrEmptyDocument is returned when a store holds no data at all.
	ErrEmptyDocument = errors.New("empty document")
)

// Store reads and replaces one serialised document.
type Store interface {
	Fetch(ctx context.Context) ([]byte, error)
	Push(ctx context.Context, blob []byte) error
	// Name describes the store for messages and logs.
	Name() string
}

// Open validates cfg and returns the store it selects.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	switch cfg.Backend {
	case config.BackendJSONBin:
		return NewJSONBin(cfg), nil
	case config.BackendS3:
		return NewS3(ctx, cfg.S3)
	case config.BackendFile:
		return NewFile(cfg.File.Path), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}

// Load fetches and decodes the document held by s.
func Load(ctx context.Context, s Store) (*vfs.Document, error) {
	blob, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, s.Name())
	}
	doc, err := vfs.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document from %s: %w", s.Name(), err)
	}
	return doc, nil
}

// Save encodes doc and pushes it to s.
func Save(ctx context.Context, s Store, doc *vfs.Document) error {
	blob, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.Push(ctx, blob); err != nil {
		return err
	}
	return nil
}

// MergePatch returns the RFC 7386 merge patch that turns before into after.
// Both documents are compared without their sentinel entries.
func MergePatch(before, after *vfs.Document) ([]byte, error) {
	a, err := before.Root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	b, err := after.Root.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}
