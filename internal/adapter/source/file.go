package source

import (
	"context"
	"fmt"
	"os"
)

// File reads the payload from a local file.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) String() string { return "file://" + f.path }

func (f *File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read payload file: %w", err)
	}
	if isBlank(data) {
		return nil, ErrEmptyPayload
	}
	return data, nil
}
