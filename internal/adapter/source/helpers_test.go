package source

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/parks-data-service/internal/observability"
)

const testPayload = "SITE_NAME,LOCATION\nQueen Square,City Centre\n"

var errUnavailable = errors.New("source unavailable")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

type stubSource struct {
	data  []byte
	err   error
	calls int
}

func (s *stubSource) Fetch(_ context.Context) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

type memStore struct {
	mu     sync.Mutex
	data   []byte
	getErr error
	putErr error
	puts   int
}

func (m *memStore) Get(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.data == nil {
		return nil, ErrCacheMiss
	}
	return m.data, nil
}

func (m *memStore) Put(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data = append([]byte(nil), data...)
	return nil
}
