package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/crate/internal/catalog"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/utils"
	"github.com/google/uuid"
)

// StoreClient talks to a crate store over HTTP.
type StoreClient struct {
	BaseURL    string
	HTTPClient HTTPClient
}

func NewStoreClient(baseURL string, client HTTPClient) *StoreClient {
	if client == nil {
		client = NewHTTPClient(time.Minute)
	}
	return &StoreClient{BaseURL: baseURL, HTTPClient: client}
}

// FetchCatalogList returns GET /catalog as served.
func (c *StoreClient) FetchCatalogList(ctx context.Context) ([]catalog.Entry, error) {
	resp, err := c.do(ctx, http.MethodGet, nil, nil, "catalog")
	if err != nil {
		return nil, err
	}
	defer utils.Try(resp.Body.Close)

	if err := checkStatus("catalog", resp); err != nil {
		return nil, err
	}

	var entries []catalog.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return entries, nil
}

// FetchCatalog indexes the catalog by package name.
func (c *StoreClient) FetchCatalog(ctx context.Context) (map[string]catalog.Entry, error) {
	entries, err := c.FetchCatalogList(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]catalog.Entry, len(entries))
	for _, e := range entries {
		out[e.PackageName] = e
	}
	return out, nil
}

// Download saves /packages/<name> to dst. When expectedSHA is set the bytes
// are verified before dst is touched.
func (c *StoreClient) Download(ctx context.Context, name, dst, expectedSHA string) error {
	resp, err := c.do(ctx, http.MethodGet, nil, nil, "packages", name)
	if err != nil {
		return err
	}
	defer utils.Try(resp.Body.Close)

	if err := checkStatus("download", resp); err != nil {
		return err
	}

	var src io.Reader = resp.Body
	if expectedSHA != "" {
		if src, err = utils.ChecksumVerifiedReader(resp.Body, expectedSHA); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(dst), err)
	}
	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.NewString()+".part")
	if err := utils.WriteFileAtomic(tmp, dst, src); err != nil {
		return fmt.Errorf("save %s: %w", dst, err)
	}

	logger.Debug("saved %s", dst)
	return nil
}

// Upload sends path as a raw application/zip body named by X-Filename.
func (c *StoreClient) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer utils.Close(f)

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/zip")
	headers.Set("X-Filename", filepath.Base(path))

	resp, err := c.doSized(ctx, http.MethodPost, f, fi.Size(), headers, "upload")
	if err != nil {
		return err
	}
	defer utils.Try(resp.Body.Close)
	return checkStatus("upload", resp)
}

// UploadMultipart sends path as the "file" field of a multipart form.
func (c *StoreClient) UploadMultipart(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer utils.Close(f)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		fw, err := mw.CreateFormFile("file", filepath.Base(path))
		if err == nil {
			_, err = io.Copy(fw, f)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	headers := http.Header{}
	headers.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(ctx, http.MethodPost, pr, headers, "upload")
	if err != nil {
		_ = pr.CloseWithError(err)
		return err
	}
	defer utils.Try(resp.Body.Close)
	return checkStatus("upload", resp)
}

// ---- internals ----

func (c *StoreClient) do(ctx context.Context, method string, body io.Reader, headers http.Header, elem ...string) (*http.Response, error) {
	return c.doSized(ctx, method, body, -1, headers, elem...)
}

func (c *StoreClient) doSized(ctx context.Context, method string, body io.Reader, size int64, headers http.Header, elem ...string) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(c.BaseURL, elem...)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if size >= 0 {
		req.ContentLength = size
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	logger.Debug("%s %s", method, endpoint)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	return resp, nil
}
