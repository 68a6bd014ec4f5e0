package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput indicates a malformed request rejected before any
// storage or network call.
var ErrInvalidInput = errors.New("invalid input")

// Upload describes a user-selected file about to be submitted.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
}

// Validate enforces the PDF-only constraint. The declared MIME type must
// mention pdf, matching the check the upload endpoint applies.
func (u Upload) Validate() error {
	if strings.TrimSpace(u.FileName) == "" {
		return fmt.Errorf("%w: no file provided", ErrInvalidInput)
	}
	if !strings.Contains(strings.ToLower(u.ContentType), "pdf") {
		return fmt.Errorf("%w: only PDF files are allowed", ErrInvalidInput)
	}
	return nil
}
