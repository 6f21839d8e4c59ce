package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// allowedAttachmentTypes maps accepted MIME types to the stored file extension.
var allowedAttachmentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// MaxAttachmentSize is the upper bound for an application attachment.
const MaxAttachmentSize = 5 << 20

// AttachmentExtension returns the extension for an accepted content type.
func AttachmentExtension(contentType string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := allowedAttachmentTypes[ct]
	return ext, ok
}

// AttachmentKey builds the object key for an organizer application document.
func AttachmentKey(applicationID int, ext string, now time.Time) string {
	return path.Join("organizer-applications", fmt.Sprintf("%d", applicationID), fmt.Sprintf("%d%s", now.UnixNano(), ext))
}
