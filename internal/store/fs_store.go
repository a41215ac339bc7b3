package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/utils"
	"github.com/google/uuid"
)

// FS stores artifacts as plain files in a single flat directory.
type FS struct {
	dir string
}

var _ Repository = (*FS)(nil)

func NewFS(dataDir string) (*FS, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dataDir, err)
	}
	return &FS{dir: dataDir}, nil
}

// Dir returns the backing directory.
func (s *FS) Dir() string { return s.dir }

// List returns regular files only; subdirectories are not descended into.
func (s *FS) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.Type().IsRegular() || !ValidName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *FS) Open(ctx context.Context, name string) (io.ReadSeekCloser, Info, error) {
	if !ValidName(name) {
		return nil, Info{}, ErrNotFound
	}

	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Info{}, ErrNotFound
		}
		return nil, Info{}, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, Info{}, err
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, Info{}, ErrNotFound
	}

	return f, Info{Name: name, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

// Write persists r via a uniquely named temp file and an atomic rename, so a
// concurrent reader sees either the previous or the new content in full.
// Two writers racing on one name both succeed; the last rename wins.
func (s *FS) Write(ctx context.Context, name string, r io.Reader) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	final := s.path(name)
	tmp := filepath.Join(s.dir, tmpPrefix+uuid.NewString()+".tmp")
	logger.Debug("writing %s via %s", final, filepath.Base(tmp))

	if err := utils.WriteFileAtomic(tmp, final, r); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *FS) Exists(ctx context.Context, name string) (bool, error) {
	if !ValidName(name) {
		return false, nil
	}
	fi, err := os.Stat(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return fi.Mode().IsRegular(), nil
}

func (s *FS) path(name string) string {
	return filepath.Join(s.dir, name)
}
