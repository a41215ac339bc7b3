package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrSnakeDoc/crate/internal/catalog"
	"github.com/MrSnakeDoc/crate/internal/errs"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/store"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/gzhttp"
)

const cborContentType = "application/cbor"

type Options struct {
	// Extension filters which stored files appear in the catalog.
	Extension string
	// MaxUploadBytes caps upload bodies; 0 means unlimited.
	MaxUploadBytes int64
}

// Handler routes the three store endpoints to a Repository. It holds no
// state besides the repository, so one Handler can serve any number of
// concurrent requests.
type Handler struct {
	repo store.Repository
	opts Options
	mux  *http.ServeMux
}

func NewHandler(repo store.Repository, opts Options) *Handler {
	if opts.Extension == "" {
		opts.Extension = catalog.DefaultExtension
	}
	h := &Handler{repo: repo, opts: opts, mux: http.NewServeMux()}

	h.mux.Handle("GET /catalog", gzhttp.GzipHandler(http.HandlerFunc(h.handleCatalog)))
	h.mux.HandleFunc("GET /packages/{filename}", h.handleDownload)
	h.mux.HandleFunc("POST /upload", h.handleUpload)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)
	logger.Request(r.Method, r.URL.Path, rec.status, float64(time.Since(start).Microseconds())/1000)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	entries, err := catalog.Build(r.Context(), h.repo, h.opts.Extension)
	if err != nil {
		logger.LogError("catalog build failed: %v", err)
		writeCode(w, errs.Internal)
		return
	}

	w.Header().Add("Vary", "Accept")
	if acceptsCBOR(r) {
		body, err := cbor.Marshal(entries)
		if err != nil {
			logger.LogError("catalog encode failed: %v", err)
			writeCode(w, errs.Internal)
			return
		}
		w.Header().Set("Content-Type", cborContentType)
		if _, err := w.Write(body); err != nil {
			logger.Debug("catalog write aborted: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		logger.Debug("catalog write aborted: %v", err)
	}
}

// acceptsCBOR reports whether the client explicitly listed application/cbor.
// JSON stays the default for everything else, including */*.
func acceptsCBOR(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mt == cborContentType {
			return true
		}
	}
	return false
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	rc, info, err := h.repo.Open(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		writeCode(w, errs.ArtifactNotFound)
		return
	}
	if err != nil {
		logger.LogError("open %s failed: %v", name, err)
		writeCode(w, errs.Internal)
		return
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			logger.Debug("close %s: %v", name, cerr)
		}
	}()

	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))

	http.ServeContent(w, r, name, info.ModTime, rc)
}

// ---- responses ----

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeCode(w http.ResponseWriter, code errs.Code) {
	writeText(w, errs.Status(code), errs.Msg(code))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }
