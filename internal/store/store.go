package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("artifact not found")
	ErrInvalidName = errors.New("invalid artifact name")
)

// tmpPrefix marks in-flight uploads; such names are never listed or served.
const tmpPrefix = ".crate-upload-"

// Info describes a stored artifact at the time it was opened.
type Info struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Repository is the narrow view of the artifact directory the service needs.
// The directory (or whatever backs it) is the only source of truth; nothing
// is cached between calls.
type Repository interface {
	// List returns artifact names directly under the store, in enumeration order.
	List(ctx context.Context) ([]string, error)

	// Open returns a reader over the artifact's current bytes, or ErrNotFound.
	Open(ctx context.Context, name string) (io.ReadSeekCloser, Info, error)

	// Write replaces (or creates) the artifact with everything read from r.
	Write(ctx context.Context, name string, r io.Reader) error

	// Exists reports whether an artifact with this name is stored.
	Exists(ctx context.Context, name string) (bool, error)
}

// ValidName reports whether name can be used as an artifact key without
// leaving the store directory.
func ValidName(name string) bool {
	switch {
	case name == "", name == ".", name == "..":
		return false
	case strings.ContainsAny(name, "/\\\x00"):
		return false
	case strings.HasPrefix(name, tmpPrefix):
		return false
	}
	return true
}
