// Package filex reads local files the CLI uploads.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ErrTooLarge is returned by ReadImage for files over the size limit.
var ErrTooLarge = errors.New("file too large")

// ReadImage reads the file at path and sniffs its content type. Files larger
// than maxSize bytes are rejected without being read in full.
func ReadImage(path string, maxSize int64) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", fmt.Errorf("%s: %w (limit %d bytes)", path, ErrTooLarge, maxSize)
	}

	return data, http.DetectContentType(data), nil
}
