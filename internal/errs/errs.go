package errs

import (
	"fmt"
	"net/http"
)

type Code string

const (
	MissingFilename    Code = "MISSING_FILENAME"
	InvalidFilename    Code = "INVALID_FILENAME"
	UnsupportedMedia   Code = "UNSUPPORTED_MEDIA"
	MalformedMultipart Code = "MALFORMED_MULTIPART"
	UploadTooLarge     Code = "UPLOAD_TOO_LARGE"
	ArtifactNotFound   Code = "ARTIFACT_NOT_FOUND"
	Internal           Code = "INTERNAL"
	MissingStoreURL    Code = "MISSING_STORE_URL"
	UploadNotRegular   Code = "UPLOAD_NOT_REGULAR"
	ChecksumUnverified Code = "CHECKSUM_UNVERIFIED"
	MissingTargets     Code = "MISSING_TARGETS"
)

var messages = map[Code]string{
	MissingFilename:    "missing X-Filename header",
	InvalidFilename:    "invalid filename",
	UnsupportedMedia:   "unsupported content-type",
	MalformedMultipart: "malformed multipart body",
	UploadTooLarge:     "upload too large",
	ArtifactNotFound:   "not found",
	Internal:           "internal server error",

	MissingStoreURL: `No store URL configured

Usage:
  - pass it explicitly:
      crate %[1]s --url http://localhost:5001
  - or set store_url in ~/.config/crate/config.yml`,

	UploadNotRegular: `Cannot push %[1]s: not a regular file`,

	ChecksumUnverified: `%[1]s is not listed in the catalog, its checksum was not verified

Reason:
  the download succeeded but no digest was available to compare against.`,

	MissingTargets: `Missing targets: crate %[1]s needs at least one file name`,
}

var statuses = map[Code]int{
	MissingFilename:    http.StatusBadRequest,
	InvalidFilename:    http.StatusBadRequest,
	UnsupportedMedia:   http.StatusUnsupportedMediaType,
	MalformedMultipart: http.StatusBadRequest,
	UploadTooLarge:     http.StatusRequestEntityTooLarge,
	ArtifactNotFound:   http.StatusNotFound,
	Internal:           http.StatusInternalServerError,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	if len(a) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, a...)
}

// Status maps an HTTP-facing code to its response status (500 if unmapped).
func Status(code Code) int {
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
