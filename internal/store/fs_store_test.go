package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestFS(t *testing.T) *FS {
	t.Helper()
	tmp := t.TempDir()
	fs, err := NewFS(tmp)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func readAll(t *testing.T, r Repository, name string) []byte {
	t.Helper()
	rc, _, err := r.Open(context.Background(), name)
	if err != nil {
		t.Fatalf("Open(%s): %v", name, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			t.Errorf("close: %v", cerr)
		}
	}()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return b
}

func TestFS_WriteAndOpen_Roundtrip(t *testing.T) {
	fs := newTestFS(t)
	ctx := context.Background()

	if err := fs.Write(ctx, "Foo_1.2.3.zip", strings.NewReader("payload")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rc, info, err := fs.Open(ctx, "Foo_1.2.3.zip")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = rc.Close() }()

	if info.Name != "Foo_1.2.3.zip" {
		t.Errorf("wrong name: %s", info.Name)
	}
	if info.Size != int64(len("payload")) {
		t.Errorf("wrong size: got %d", info.Size)
	}
	if info.ModTime.IsZero() {
		t.Errorf("expected non-zero mod time")
	}
	b, _ := io.ReadAll(rc)
	if string(b) != "payload" {
		t.Errorf("expected payload, got %q", b)
	}
}

func TestFS_WriteOverwrites(t *testing.T) {
	fs := newTestFS(t)
	ctx := context.Background()

	if err := fs.Write(ctx, "a.zip", strings.NewReader("old-and-longer")); err != nil {
		t.Fatalf("Write old: %v", err)
	}
	if err := fs.Write(ctx, "a.zip", strings.NewReader("new")); err != nil {
		t.Fatalf("Write new: %v", err)
	}
	if got := readAll(t, fs, "a.zip"); string(got) != "new" {
		t.Errorf("expected overwrite, got %q", got)
	}
}

func TestFS_List_SkipsDirsAndTempFiles(t *testing.T) {
	fs := newTestFS(t)
	ctx := context.Background()

	if err := fs.Write(ctx, "a.zip", strings.NewReader("a")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := os.Mkdir(filepath.Join(fs.Dir(), "nested.zip"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(fs.Dir(), "nested.zip", "inner.zip"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write inner: %v", err)
	}
	if err := os.WriteFile(filepath.Join(fs.Dir(), tmpPrefix+"pending.tmp"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write tmp: %v", err)
	}

	names, err := fs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "a.zip" {
		t.Errorf("expected [a.zip], got %v", names)
	}
}

func TestFS_WriteLeavesNoTempFiles(t *testing.T) {
	fs := newTestFS(t)
	if err := fs.Write(context.Background(), "a.zip", bytes.NewReader([]byte("a"))); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(fs.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the artifact on disk, got %d entries", len(entries))
	}
}

func TestFS_Open_NotFound(t *testing.T) {
	fs := newTestFS(t)
	_, _, err := fs.Open(context.Background(), "missing.zip")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFS_Open_RejectsEscapingNames(t *testing.T) {
	parent := t.TempDir()
	if err := os.WriteFile(filepath.Join(parent, "secret.zip"), []byte("s"), 0o644); err != nil {
		t.Fatalf("write secret: %v", err)
	}
	fs, err := NewFS(filepath.Join(parent, "data"))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	for _, name := range []string{"../secret.zip", "..", ".", "", "a/b.zip", `..\secret.zip`} {
		if _, _, err := fs.Open(context.Background(), name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Open(%q): expected ErrNotFound, got %v", name, err)
		}
		if ok, _ := fs.Exists(context.Background(), name); ok {
			t.Errorf("Exists(%q) = true, want false", name)
		}
	}
}

func TestFS_Write_RejectsEscapingNames(t *testing.T) {
	fs := newTestFS(t)
	err := fs.Write(context.Background(), "../evil.zip", strings.NewReader("x"))
	if !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestFS_Exists(t *testing.T) {
	fs := newTestFS(t)
	ctx := context.Background()

	ok, err := fs.Exists(ctx, "a.zip")
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
	if err := fs.Write(ctx, "a.zip", strings.NewReader("a")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	ok, err = fs.Exists(ctx, "a.zip")
	if err != nil || !ok {
		t.Fatalf("expected (true, nil), got (%v, %v)", ok, err)
	}
}

type badReader struct{}

func (b *badReader) Read(_ []byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestFS_Write_ErrorPropagation(t *testing.T) {
	fs := newTestFS(t)
	ctx := context.Background()

	if err := fs.Write(ctx, "keep.zip", strings.NewReader("original")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := fs.Write(ctx, "keep.zip", &badReader{}); err == nil {
		t.Fatalf("expected error from bad reader, got nil")
	}
	if got := readAll(t, fs, "keep.zip"); string(got) != "original" {
		t.Errorf("failed write must not clobber existing content, got %q", got)
	}
	names, _ := fs.List(ctx)
	if len(names) != 1 {
		t.Errorf("expected temp file cleanup, listed %v", names)
	}
}
