package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"skynet/internal/application/request/usecases"
	"skynet/internal/shared/config"
	"skynet/internal/shared/logger"
)

const (
	// HTTP request timeout for uploads
	defaultRequestTimeout = 30 * time.Second
	// Maximum response body size read from the content store (64KB)
	maxResponseSize = 64 << 10
	// Fallback size limits when configuration leaves them unset
	defaultMaxFileSize  = 10 << 20
	defaultImageMaxSize = 5 << 20
)

// File categories determine which store endpoint receives the upload.
const (
	categoryImage       = "image"
	categoryPDF         = "pdf"
	categoryWord        = "word"
	categorySpreadsheet = "spreadsheet"
)

// extensionCategories maps accepted file extensions to their category.
// Anything outside this map is rejected before upload.
var extensionCategories = map[string]string{
	".jpg":  categoryImage,
	".jpeg": categoryImage,
	".png":  categoryImage,
	".gif":  categoryImage,
	".webp": categoryImage,
	".pdf":  categoryPDF,
	".doc":  categoryWord,
	".docx": categoryWord,
	".xls":  categorySpreadsheet,
	".xlsx": categorySpreadsheet,
	".csv":  categorySpreadsheet,
}

// uploadResponse is the content store's reply for a stored file.
type uploadResponse struct {
	PublicID string `json:"public_id"`
}

// ContentStore uploads request attachments to the external blob store and
// returns the opaque storage key. Size and type limits are enforced locally
// before any bytes leave the process.
type ContentStore struct {
	baseURL      string
	apiKey       string
	folder       string
	maxFileSize  int64
	imageOnly    bool
	imageMaxSize int64
	httpClient   *http.Client
	logger       logger.Interface
}

func NewContentStore(cfg *config.StorageConfig, log logger.Interface) *ContentStore {
	timeout := defaultRequestTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	maxFileSize := cfg.MaxFileSizeBytes
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxFileSize
	}
	imageMaxSize := cfg.ImageMaxSizeBytes
	if imageMaxSize <= 0 {
		imageMaxSize = defaultImageMaxSize
	}

	return &ContentStore{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		folder:       cfg.UploadFolder,
		maxFileSize:  maxFileSize,
		imageOnly:    cfg.ImageOnly,
		imageMaxSize: imageMaxSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

var _ usecases.AttachmentUploader = (*ContentStore)(nil)

// Upload classifies the file, then pushes it to the store under
// folder/ticket. Images go to the image endpoint so the store can transform
// them; everything else is stored raw. The returned key is whatever the
// store names the blob.
func (s *ContentStore) Upload(ctx context.Context, ticket string, file usecases.UploadFile) (string, error) {
	category, err := s.classify(file)
	if err != nil {
		return "", err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("folder", path.Join(s.folder, ticket)); err != nil {
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, 0, fmt.Sprintf("failed to build upload request: %v", err))
	}

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, 0, fmt.Sprintf("failed to build upload request: %v", err))
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, 0, fmt.Sprintf("failed to read file: %v", err))
	}
	if err := writer.Close(); err != nil {
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, 0, fmt.Sprintf("failed to build upload request: %v", err))
	}

	endpoint := s.baseURL + "/raw/upload"
	if category == categoryImage {
		endpoint = s.baseURL + "/image/upload"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, 0, fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warnw("content store unreachable", "ticket", ticket, "file", file.Name, "error", err)
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, 0, "content store unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		s.logger.Warnw("content store rejected upload",
			"ticket", ticket, "file", file.Name, "status", resp.StatusCode, "body", string(detail))
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, resp.StatusCode,
			fmt.Sprintf("content store returned status %d", resp.StatusCode))
	}

	var data uploadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&data); err != nil {
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, resp.StatusCode, "failed to decode content store response")
	}
	if data.PublicID == "" {
		return "", usecases.NewUploadError(usecases.UploadReasonBackendError, resp.StatusCode, "content store returned an empty key")
	}

	s.logger.Debugw("file stored", "ticket", ticket, "file", file.Name, "key", data.PublicID)
	return data.PublicID, nil
}

// classify applies the local size and type limits before any upload and
// returns the file's category.
func (s *ContentStore) classify(file usecases.UploadFile) (string, error) {
	ext := strings.ToLower(path.Ext(file.Name))
	category, ok := extensionCategories[ext]
	if !ok {
		return "", usecases.NewUploadError(usecases.UploadReasonUnsupportedType, 0,
			fmt.Sprintf("file type %q is not allowed", ext))
	}

	limit := s.maxFileSize
	if s.imageOnly {
		limit = s.imageMaxSize
		if category != categoryImage {
			return "", usecases.NewUploadError(usecases.UploadReasonUnsupportedType, 0,
				fmt.Sprintf("only images are accepted, got %q", ext))
		}
	}

	if file.Size > limit {
		return "", usecases.NewUploadError(usecases.UploadReasonFileTooLarge, 0,
			fmt.Sprintf("file exceeds the maximum allowed size of %d bytes", limit))
	}

	return category, nil
}
