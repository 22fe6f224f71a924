package filestorage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// DefaultMaxPhotoSize is the largest accepted photo in bytes
const DefaultMaxPhotoSize int64 = 1 << 20

// AllowedPhotoExtensions lists the accepted photo extensions, without the dot
var AllowedPhotoExtensions = []string{"jpg", "jpeg", "png"}

// ImageHost defines the interface for storing student photos
type ImageHost interface {
	// Upload stores the content under folder and returns its public URL
	Upload(ctx context.Context, r io.Reader, filename, folder string) (string, error)
}

// Photo is an uploaded image as received from the client
type Photo struct {
	Filename string    // Client-side filename
	Size     int64     // Size in bytes
	Content  io.Reader // File content
}

// ValidatePhoto checks the extension and size of an uploaded photo.
// The extension is checked first, case-insensitively.
func ValidatePhoto(p *Photo, maxSize int64) error {
	if !HasAllowedExtension(p.Filename) {
		return apperrors.NewValidationError("Invalid file type. Allowed: " + strings.Join(AllowedPhotoExtensions, ", ") + ".")
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxPhotoSize
	}
	if p.Size > maxSize {
		return apperrors.NewValidationError(fmt.Sprintf("File exceeds %s limit.", sizeLabel(maxSize)))
	}
	return nil
}

// HasAllowedExtension reports whether filename ends in one of AllowedPhotoExtensions
func HasAllowedExtension(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range AllowedPhotoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func sizeLabel(n int64) string {
	switch {
	case n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
