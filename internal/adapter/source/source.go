// Package source retrieves raw park payloads over HTTP or from disk, with an
// optional shared cache that keeps the last good payload across restarts.
package source

import (
	"bytes"
	"errors"
)

var (
	// ErrEmptyPayload is returned when a source answers with nothing but whitespace.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrCacheMiss is returned by a PayloadStore holding no payload.
	ErrCacheMiss = errors.New("payload cache miss")
	// ErrPayloadTooLarge is returned when a payload exceeds the read limit.
	ErrPayloadTooLarge = errors.New("payload too large")
)

func isBlank(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}
