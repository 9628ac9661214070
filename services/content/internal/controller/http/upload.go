package http

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

// formUpload opens the multipart file under field. It returns a nil upload
// when the request carries no such file, including plain JSON requests. The
// caller must call the returned close func.
func formUpload(c *gin.Context, field string) (*usecase.MediaUpload, func(), error) {
	noop := func() {}

	fileHeader, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if tooLarge := asTooLarge(err); tooLarge != nil {
		return nil, noop, tooLarge
	}
	if err != nil {
		return nil, noop, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open upload: %w", err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(fileHeader.Filename)); byExt != "" {
			contentType = byExt
		}
	}

	return &usecase.MediaUpload{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Body:        file,
	}, func() { file.Close() }, nil
}
