// Package filex provides small file helpers for the CLI client.
package filex

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// ImageFile is an image read from disk, ready for upload: raw bytes, a
// sniffed content type, and the original base name (which the backend
// weaves into the storage key).
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadImage loads path and sniffs its content type from the leading bytes.
func ReadImage(path string) (*ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read image: %s is empty", path)
	}
	return &ImageFile{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
