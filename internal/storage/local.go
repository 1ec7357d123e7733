package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type LocalProvider struct {
	// RootPath is the directory where uploaded images live (e.g. "uploads")
	RootPath string
}

func NewLocalProvider(root string) *LocalProvider {
	// Ensure the root directory exists
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{RootPath: root}
}

// Save writes the image under a random filename to avoid collisions and
// returns the filename for the caller to record.
func (l *LocalProvider) Save(body io.Reader, ext string) (string, error) {
	filename := uuid.NewString() + ext
	path := filepath.Join(l.RootPath, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return filename, nil
}
