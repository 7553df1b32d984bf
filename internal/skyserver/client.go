// Package skyserver implements the query collaborator: a client for the
// SkyServer SQL search endpoint. It submits SQL/ADQL, returns the raw
// formatted body, and can decode CSV results into a catalog batch.
package skyserver

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/skycat/skycat/internal/errors"
	"github.com/skycat/skycat/internal/observability"
	"github.com/skycat/skycat/pkg/types"
)

// Format selects the result encoding SkyServer should return.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatVOTable Format = "votable"
)

// Client talks to a SkyServer SQL search endpoint.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// New creates a client for the given SqlSearch endpoint URL. timeout
// bounds each query end-to-end; zero means no client timeout (context
// deadlines still apply).
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// Query submits a SQL/ADQL statement and returns the raw result body in
// the requested format. Failures are QueryError, except deadline expiry
// which surfaces as RemoteTimeout; the server's message is preserved.
func (c *Client) Query(ctx context.Context, sql string, format Format) ([]byte, error) {
	requestID := uuid.NewString()

	q := url.Values{}
	q.Set("cmd", sql)
	q.Set("format", string(format))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.NewQueryError("failed to build query request", err)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		observability.QueriesTotal.WithLabelValues("error").Inc()
		var uerr *url.Error
		if stderrors.Is(err, context.DeadlineExceeded) ||
			(stderrors.As(err, &uerr) && uerr.Timeout()) {
			return nil, errors.NewStorageError(errors.CodeRemoteTimeout, "query timed out", err)
		}
		return nil, errors.NewQueryError("query request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.QueriesTotal.WithLabelValues("error").Inc()
		return nil, errors.NewQueryError("failed to read query response", err)
	}

	if resp.StatusCode != http.StatusOK {
		observability.QueriesTotal.WithLabelValues("error").Inc()
		return nil, errors.NewQueryError(
			fmt.Sprintf("query rejected with HTTP %s", resp.Status),
			fmt.Errorf("%s", firstLine(body)))
	}

	observability.QueriesTotal.WithLabelValues("ok").Inc()
	log.Printf("skyserver: query %s returned %d bytes in %v", requestID, len(body), time.Since(start))
	return body, nil
}

// QueryCatalog submits a query in CSV format and decodes the result into
// a columnar catalog batch.
func (c *Client) QueryCatalog(ctx context.Context, sql string) (*types.CatalogBatch, error) {
	body, err := c.Query(ctx, sql, FormatCSV)
	if err != nil {
		return nil, err
	}
	return DecodeCSV(body)
}

// firstLine trims a response body to its first line for error messages.
func firstLine(body []byte) string {
	for i, b := range body {
		if b == '\n' {
			return string(body[:i])
		}
		if i > 200 {
			return string(body[:i]) + "..."
		}
	}
	return string(body)
}
