package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skycat/skycat/internal/errors"
)

// HTTPStore implements ObjectStore over an HTTP(S) archive mirror such as
// the SDSS Science Archive Server. Status 404 maps to OBJECT_NOT_FOUND,
// deadline expiry to REMOTE_TIMEOUT, and any other transport failure to
// REMOTE_UNREACHABLE; the transport's error message is preserved.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates an HTTP store for the archive rooted at baseURL.
// timeout bounds each request end-to-end; zero means no client timeout
// (context deadlines still apply).
func NewHTTPStore(baseURL string, timeout time.Duration) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the whole object body.
func (h *HTTPStore) Fetch(ctx context.Context, objectPath string) ([]byte, error) {
	rc, err := h.Open(ctx, objectPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, h.wrapTransportErr(objectPath, err)
	}
	return data, nil
}

// Open issues a GET and returns the response body as a streaming handle.
func (h *HTTPStore) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.objectURL(objectPath), nil)
	if err != nil {
		return nil, errors.NewStorageError(errors.CodeRemoteUnreachable, objectPath, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, h.wrapTransportErr(objectPath, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, errors.NewStorageError(errors.CodeObjectNotFound, objectPath,
			fmt.Errorf("HTTP %s", resp.Status))
	default:
		resp.Body.Close()
		return nil, errors.NewStorageError(errors.CodeRemoteUnreachable, objectPath,
			fmt.Errorf("HTTP %s", resp.Status))
	}
}

// Exists issues a HEAD for the object.
func (h *HTTPStore) Exists(ctx context.Context, objectPath string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.objectURL(objectPath), nil)
	if err != nil {
		return false, errors.NewStorageError(errors.CodeRemoteUnreachable, objectPath, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return false, h.wrapTransportErr(objectPath, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, errors.NewStorageError(errors.CodeRemoteUnreachable, objectPath,
			fmt.Errorf("HTTP %s", resp.Status))
	}
}

func (h *HTTPStore) objectURL(objectPath string) string {
	return h.baseURL + strings.TrimLeft(objectPath, "/")
}

// wrapTransportErr distinguishes deadline expiry from other transport
// failures so callers can tell a slow archive from a down one.
func (h *HTTPStore) wrapTransportErr(objectPath string, err error) error {
	var uerr *url.Error
	if stderrors.Is(err, context.DeadlineExceeded) ||
		(stderrors.As(err, &uerr) && uerr.Timeout()) {
		return errors.NewStorageError(errors.CodeRemoteTimeout, objectPath, err)
	}
	return errors.NewStorageError(errors.CodeRemoteUnreachable, objectPath, err)
}
