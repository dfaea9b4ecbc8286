package helpers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"boothly/internal/domain"
)

// IsMultipart reports whether the request carries a multipart/form-data body.
func IsMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// ParseMultipart limits the body to maxBytes and parses it as a multipart form.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewValidationError(fmt.Sprintf("upload exceeds %d bytes", maxBytes))
		}
		return domain.NewValidationError("invalid multipart form: " + err.Error())
	}
	return nil
}

// FormUpload returns the named file part of a parsed multipart form. A missing
// part yields a nil Upload and a no-op close func.
func FormUpload(r *http.Request, field string) (*domain.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, domain.NewValidationError(fmt.Sprintf("invalid %s file: %v", field, err))
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upload := &domain.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}
	return upload, func() { _ = file.Close() }, nil
}

// FormValue returns the trimmed value of a multipart or urlencoded field.
func FormValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.FormValue(field))
}
