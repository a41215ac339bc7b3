package server

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/MrSnakeDoc/crate/internal/errs"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/store"
)

const (
	uploadField     = "file"
	filenameHeader  = "X-Filename"
	rawContentType  = "application/zip"
	acknowledgement = "ok"
)

type uploadKind string

const (
	uploadMultipart uploadKind = "multipart"
	uploadRaw       uploadKind = "raw"
)

// upload is the single encoding that matched a POST /upload request.
type upload struct {
	kind     uploadKind
	filename string
	body     io.Reader
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if h.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	}

	up, code, err := classifyUpload(r)
	if err != nil {
		failUpload(w, code, err)
		return
	}
	if !store.ValidName(up.filename) {
		writeCode(w, errs.InvalidFilename)
		return
	}

	if err := h.repo.Write(r.Context(), up.filename, up.body); err != nil {
		failUpload(w, errs.Internal, err)
		return
	}

	logger.Info("Received (%s) ⇒ %s", up.kind, up.filename)
	writeText(w, http.StatusOK, acknowledgement)
}

// classifyUpload tries the multipart "file" field first, then a raw
// application/zip body named by X-Filename. Anything else is unsupported.
func classifyUpload(r *http.Request) (upload, errs.Code, error) {
	if part, err := multipartFile(r); err != nil {
		return upload{}, errs.MalformedMultipart, err
	} else if part != nil {
		return upload{kind: uploadMultipart, filename: part.FileName(), body: part}, "", nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != rawContentType {
		return upload{}, errs.UnsupportedMedia, errUnsupported
	}

	name := r.Header.Get(filenameHeader)
	if name == "" {
		return upload{}, errs.MissingFilename, errMissingFilename
	}
	return upload{kind: uploadRaw, filename: name, body: r.Body}, "", nil
}

var (
	errUnsupported     = errors.New(errs.Msg(errs.UnsupportedMedia))
	errMissingFilename = errors.New(errs.Msg(errs.MissingFilename))
)

// multipartFile returns the first part named "file" that carries a filename,
// or nil when the request is not multipart or has no such part.
func multipartFile(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		// not multipart/form-data (or no boundary): not this encoding
		return nil, nil
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == uploadField && part.FileName() != "" {
			return part, nil
		}
	}
}

func failUpload(w http.ResponseWriter, code errs.Code, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		code = errs.UploadTooLarge
	case errors.Is(err, store.ErrInvalidName):
		code = errs.InvalidFilename
	}

	if code == errs.Internal {
		logger.LogError("upload failed: %v", err)
	} else {
		logger.Debug("upload rejected: %v", err)
	}
	writeCode(w, code)
}
