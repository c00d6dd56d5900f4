// Package blob stores item images in S3-compatible object storage and hands
// out the public URLs recorded in Item.ImageURL.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/google/uuid"
)

// PresignExpiry is how long a presigned upload URL stays valid.
const PresignExpiry = 15 * time.Minute

// ImageStore uploads images on behalf of an owner.
type ImageStore interface {
	// Upload stores data and returns its public URL.
	Upload(ctx context.Context, ownerID, contentType string, data []byte) (string, error)
	// PresignUpload prepares a direct client upload.
	PresignUpload(ctx context.Context, ownerID, contentType string) (*PresignedUpload, error)
}

// PresignedUpload is a PUT URL the client sends the image bytes to and the
// URL the image will be reachable at afterwards.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	URL       string `json:"url"`
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Extension returns the file extension of an allowed image content type.
// Other types yield a *common.ValidationError on field "contentType".
func Extension(contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", &common.ValidationError{Fields: []string{"contentType"}}
	}
	return ext, nil
}

var timeNow = time.Now

// NewKey builds items/<owner>/<yyyy>/<mm>/<dd>/<uuid><ext>.
func NewKey(ownerID, ext string) string {
	d := timeNow().UTC()
	return fmt.Sprintf("items/%s/%04d/%02d/%02d/%s%s", ownerID, d.Year(), int(d.Month()), d.Day(), uuid.NewString(), ext)
}
