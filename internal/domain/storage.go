package domain

import (
	"context"
	"io"
)

// UploadKind names the slot a profile image is stored under.
type UploadKind string

// Profile image slots.
const (
	UploadProfile   UploadKind = "profile"
	UploadLogo      UploadKind = "logo"
	UploadPortfolio UploadKind = "portfolio"
)

// ParseUploadKind reports whether s names a profile image slot.
func ParseUploadKind(s string) (UploadKind, bool) {
	switch UploadKind(s) {
	case UploadProfile, UploadLogo, UploadPortfolio:
		return UploadKind(s), true
	}
	return "", false
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// StoredObject is an uploaded file and its public URL.
// swagger:model StoredObject
type StoredObject struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
	URL    string `json:"url"`
}

// ObjectStore is blob storage addressed by bucket and path.
type ObjectStore interface {
	// Put stores upload at bucket/path. When overwrite is false an existing
	// object makes Put fail.
	Put(ctx context.Context, bucket, path string, upload *Upload, overwrite bool) (*StoredObject, error)
	PublicURL(bucket, path string) string
}
