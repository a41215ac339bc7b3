package utils

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloSHA = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func TestSHA256Reader(t *testing.T) {
	got, err := SHA256Reader(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, helloSHA, got)

	empty, err := SHA256Reader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", empty)
}

func TestSHA256Reader_PropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := SHA256Reader(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}

func TestChecksumVerifiedReader(t *testing.T) {
	r, err := ChecksumVerifiedReader(strings.NewReader("hello"), helloSHA)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = ChecksumVerifiedReader(strings.NewReader("hellO"), helloSHA)
	assert.ErrorContains(t, err, "checksum mismatch")
}
