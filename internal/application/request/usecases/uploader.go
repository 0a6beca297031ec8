package usecases

import (
	"context"
	"fmt"
	"io"
)

// Rejection reasons reported per file by the attachment uploader.
const (
	UploadReasonFileTooLarge    = "file_too_large"
	UploadReasonUnsupportedType = "unsupported_file_type"
	UploadReasonBackendError    = "backend_error"
)

// UploadFile is a single file submitted alongside a request. Size is the
// declared size in bytes; the uploader rejects oversized files before
// contacting the content store.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadError classifies why a single file upload was rejected or failed.
// Reason is one of the UploadReason constants; Status carries the content
// store's HTTP status when the backend itself failed.
type UploadError struct {
	Reason  string
	Status  int
	Message string
}

func (e *UploadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upload failed (%s, status %d): %s", e.Reason, e.Status, e.Message)
	}
	return fmt.Sprintf("upload failed (%s): %s", e.Reason, e.Message)
}

// NewUploadError builds a classified upload failure.
func NewUploadError(reason string, status int, message string) *UploadError {
	return &UploadError{Reason: reason, Status: status, Message: message}
}

// AttachmentUploader stores a submitted file under the given ticket and
// returns the opaque storage key to persist. Failures are *UploadError so
// callers can report the classified reason per file.
type AttachmentUploader interface {
	Upload(ctx context.Context, ticket string, file UploadFile) (string, error)
}
