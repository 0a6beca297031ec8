package request

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"skynet/internal/application/request/usecases"
	domain "skynet/internal/domain/request"
)

// CreateRequestForm carries the multipart fields of a submission. Coordinates
// arrive as strings and are parsed explicitly so a malformed number is
// reported as a field error instead of a bind failure.
type CreateRequestForm struct {
	Name        string `form:"name"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Type        string `form:"type"`
	Priority    string `form:"priority"`
	Description string `form:"description"`
	Address     string `form:"address"`
	Latitude    string `form:"latitude"`
	Longitude   string `form:"longitude"`
}

func parseCreateRequestForm(c *gin.Context) (domain.CreateRequestInput, []*multipart.FileHeader, []domain.FieldError, error) {
	var form CreateRequestForm
	if err := c.ShouldBind(&form); err != nil {
		return domain.CreateRequestInput{}, nil, nil, err
	}

	input := domain.CreateRequestInput{
		Name:        form.Name,
		Email:       form.Email,
		Type:        form.Type,
		Priority:    form.Priority,
		Description: form.Description,
	}
	if form.Phone != "" {
		input.Phone = &form.Phone
	}
	if form.Address != "" {
		input.Address = &form.Address
	}

	var fieldErrs []domain.FieldError
	input.Latitude, fieldErrs = parseCoordinate(form.Latitude, "latitude", fieldErrs)
	input.Longitude, fieldErrs = parseCoordinate(form.Longitude, "longitude", fieldErrs)

	var files []*multipart.FileHeader
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		files = mf.File["files"]
	}

	return input, files, fieldErrs, nil
}

func parseCoordinate(raw, field string, fieldErrs []domain.FieldError) (*float64, []domain.FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fieldErrs
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, append(fieldErrs, domain.FieldError{
			Field:   field,
			Message: "must be a decimal number",
		})
	}
	return &value, fieldErrs
}

// openUploadFiles converts multipart headers into upload descriptors. The
// returned closer must run after the use case finishes with the readers.
func openUploadFiles(headers []*multipart.FileHeader) ([]usecases.UploadFile, func(), error) {
	files := make([]usecases.UploadFile, 0, len(headers))
	closers := make([]multipart.File, 0, len(headers))

	closeAll := func() {
		for _, f := range closers {
			f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, f)
		files = append(files, usecases.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}

	return files, closeAll, nil
}
