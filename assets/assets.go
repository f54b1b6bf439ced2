package assets

import (
	"context"
	"io"
)

// Store persists user-uploaded binary assets (avatars) and hands back a
// stable public URL to persist on the user record.
type Store interface {
	// Save stores the content under path and returns its public URL.
	Save(ctx context.Context, path string, content io.Reader, contentType string) (string, error)

	// Delete removes the asset at path.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for an already stored asset.
	URL(path string) string
}
