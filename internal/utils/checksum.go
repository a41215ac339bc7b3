package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// SHA256Reader drains r and returns the lowercase hex SHA-256 of everything read.
func SHA256Reader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to compute SHA256: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ChecksumVerifiedReader returns a new reader if SHA256 checksum matches.
func ChecksumVerifiedReader(r io.Reader, expected string) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	actual := sha256Sum(data)
	if actual != expected {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}

	return bytes.NewReader(data), nil
}

// sha256Sum returns the SHA256 hash of the given data as a hex string.
func sha256Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
