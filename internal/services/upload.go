package services

import (
	"path"
	"strings"

	"boothly/internal/domain"
)

// uploadName returns the base name of the client's filename, or a
// validation error when there is no usable file.
func uploadName(u *domain.Upload) (string, error) {
	if u == nil || u.Body == nil {
		return "", domain.NewValidationError("file is required")
	}
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(u.Filename), `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "", domain.NewValidationError("file name is required")
	}
	return name, nil
}
