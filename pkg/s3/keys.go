package s3

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CategoryUpdates = "updates"
	CategoryGallery = "gallery"
)

// NewObjectKey names an upload as {category}/{unixMillis}-{token}.{ext}. The
// token is random so two uploads in the same millisecond still differ.
func NewObjectKey(category, filename, contentType string, now time.Time) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%s/%d-%s.%s", category, now.UnixMilli(), token, extension(filename, contentType))
}

func extension(filename, contentType string) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."); ext != "" && isSafeExt(ext) {
		return ext
	}
	if contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			return strings.TrimPrefix(exts[0], ".")
		}
	}
	return "bin"
}

func isSafeExt(ext string) bool {
	if len(ext) > 10 {
		return false
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
