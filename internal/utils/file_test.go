package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "a.zip")
	tmp := filepath.Join(dir, ".a.tmp")

	require.NoError(t, WriteFileAtomic(tmp, final, strings.NewReader("one")))
	require.NoError(t, WriteFileAtomic(tmp, final, strings.NewReader("two")))

	got, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	_, err = os.Stat(tmp)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileAtomic_FailedCopyKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "a.zip")
	tmp := filepath.Join(dir, ".a.tmp")
	require.NoError(t, os.WriteFile(final, []byte("original"), 0o644))

	boom := errors.New("boom")
	err := WriteFileAtomic(tmp, final, io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(boom)))
	assert.ErrorIs(t, err, boom)

	got, err := os.ReadFile(final)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
	_, err = os.Stat(tmp)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileAtomic_RefusesExistingTemp(t *testing.T) {
	dir := t.TempDir()
	tmp := filepath.Join(dir, ".busy.tmp")
	require.NoError(t, os.WriteFile(tmp, nil, 0o644))

	err := WriteFileAtomic(tmp, filepath.Join(dir, "x.zip"), strings.NewReader("x"))
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	ok, err := FileExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	p := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	ok, err = FileExists(p)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = FileExists(dir)
	assert.Error(t, err)
}

func TestBytesReadSeekCloser(t *testing.T) {
	r := NewBytesReadSeekCloser([]byte("abcdef"))

	pos, err := r.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ef", string(b))

	_, err = r.Seek(-1, io.SeekStart)
	assert.Error(t, err)
	assert.NoError(t, r.Close())
}
