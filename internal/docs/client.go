package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mdbridge/internal/logging"
)

// batchUpdate must apply atomically: a partially applied batch breaks
// the writer's cursor arithmetic. On transient failures the whole batch
// is retried, never a suffix of it.
const (
	maxBatchAttempts = 3
	retryBaseDelay   = 500 * time.Millisecond
)

// Client talks to the remote document service over HTTP JSON.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *logging.AppLogger
}

// NewClient creates a client for the service at baseURL. The token is
// sent as a bearer credential on every request.
func NewClient(baseURL, token string, timeout time.Duration, logger *logging.AppLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type createDocumentBody struct {
	Title string `json:"title"`
}

type batchUpdateBody struct {
	Requests []Request `json:"requests"`
}

// CreateDocument creates an empty document with the given title.
func (c *Client) CreateDocument(ctx context.Context, title string) (*Document, error) {
	var doc Document
	err := c.do(ctx, http.MethodPost, "/v1/documents", createDocumentBody{Title: title}, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	c.logger.Info("Document created", "documentId", doc.DocumentID, "title", doc.Title)
	return &doc, nil
}

// GetDocument fetches a document's block tree.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	var doc Document
	path := "/v1/documents/" + url.PathEscape(documentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &doc); err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", documentID, err)
	}
	return &doc, nil
}

// BatchUpdate applies the ordered request batch to the document as one
// atomic operation. Transient failures (429 and 5xx) retry the entire
// batch.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, reqs []Request) error {
	if len(reqs) == 0 {
		return nil
	}
	path := "/v1/documents/" + url.PathEscape(documentID) + ":batchUpdate"

	var lastErr error
	for attempt := 1; attempt <= maxBatchAttempts; attempt++ {
		err := c.do(ctx, http.MethodPost, path, batchUpdateBody{Requests: reqs}, nil)
		if err == nil {
			c.logger.Debug("Batch applied", "documentId", documentID, "requests", len(reqs), "attempt", attempt)
			return nil
		}
		lastErr = err

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.Transient() {
			break
		}
		c.logger.Warn("Transient batch failure, retrying",
			"documentId", documentID,
			"attempt", attempt,
			"status", statusErr.StatusCode,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBaseDelay * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("failed to apply batch to document %s: %w", documentID, lastErr)
}

// StatusError reports a non-2xx response from the service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether retrying the same request may succeed.
func (e *StatusError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
