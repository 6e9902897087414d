package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	maxPayloadBytes = 32 << 20
	errorExcerpt    = 512
)

// HTTP fetches the payload with a GET request.
type HTTP struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	maxBytes   int64
}

// NewHTTP creates an HTTP source. The timeout covers the whole request
// including reading the body.
func NewHTTP(url string, timeout time.Duration, logger *slog.Logger) *HTTP {
	return &HTTP{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:   logger,
		maxBytes: maxPayloadBytes,
	}
}

func (h *HTTP) String() string { return h.url }

func (h *HTTP) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorExcerpt))
		return nil, fmt.Errorf("payload source error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, h.maxBytes)
	}
	if isBlank(data) {
		return nil, ErrEmptyPayload
	}

	h.logger.Debug("payload fetched", "url", h.url, "bytes", len(data), "duration", time.Since(start))
	return data, nil
}
