package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MrSnakeDoc/crate/internal/utils"
)

// Memory is an in-process Repository. Listing follows first-insertion order.
type Memory struct {
	mu    sync.RWMutex
	order []string
	files map[string]memFile
}

type memFile struct {
	data    []byte
	modTime time.Time
}

var _ Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{files: make(map[string]memFile)}
}

func (m *Memory) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...), nil
}

func (m *Memory) Open(ctx context.Context, name string) (io.ReadSeekCloser, Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, Info{}, err
	}
	m.mu.RLock()
	f, ok := m.files[name]
	m.mu.RUnlock()
	if !ok {
		return nil, Info{}, ErrNotFound
	}
	// stored slices are never mutated in place, sharing is safe
	return utils.NewBytesReadSeekCloser(f.data), Info{Name: name, Size: int64(len(f.data)), ModTime: f.modTime}, nil
}

func (m *Memory) Write(ctx context.Context, name string, r io.Reader) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; !ok {
		m.order = append(m.order, name)
	}
	m.files[name] = memFile{data: buf.Bytes(), modTime: time.Now().UTC()}
	return nil
}

func (m *Memory) Exists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok, nil
}
