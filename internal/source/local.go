package source

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the customer sheet from a local CSV file. The file is
// re-read on every Fetch so edits show up on the next lookup.
type FileSource struct {
	path     string
	maxBytes int64
}

// NewFileSource creates a file source. maxBytes of 0 disables the cap.
func NewFileSource(path string, maxBytes int64) *FileSource {
	return &FileSource{path: path, maxBytes: maxBytes}
}

// Fetch reads the file.
func (f *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return readSheet(file, f.maxBytes)
}

// Describe implements core.Source.
func (f *FileSource) Describe() string {
	return fmt.Sprintf("file %s", f.path)
}

// StaticSource serves fixed CSV text.
type StaticSource struct {
	Text string
}

// Fetch returns the fixed text.
func (s StaticSource) Fetch(ctx context.Context) (string, error) {
	return s.Text, ctx.Err()
}

// Describe implements core.Source.
func (s StaticSource) Describe() string { return "static" }
