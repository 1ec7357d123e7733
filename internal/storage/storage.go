package storage

import "io"

// Provider defines the behavior for any profile image storage backend. The
// rest of the application only keeps the returned filename string.
type Provider interface {
	Save(body io.Reader, ext string) (string, error)
}
