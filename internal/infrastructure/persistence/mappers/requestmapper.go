package mappers

import (
	"time"

	"skynet/internal/domain/request"
	vo "skynet/internal/domain/request/valueobjects"
	"skynet/internal/infrastructure/persistence/models"
)

// RequestMapper handles the conversion between Request domain entities and persistence models.
type RequestMapper interface {
	ToModel(r *request.Request) *models.RequestModel
	ToDomain(model *models.RequestModel, attachments []*models.AttachmentModel) (*request.Request, error)
	AttachmentToModel(a *request.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*request.Attachment, error)
}

type RequestMapperImpl struct{}

func NewRequestMapper() RequestMapper {
	return &RequestMapperImpl{}
}

func (m *RequestMapperImpl) ToModel(r *request.Request) *models.RequestModel {
	model := &models.RequestModel{
		ID:          r.ID(),
		Ticket:      r.Ticket(),
		Name:        r.Name(),
		Email:       r.Email(),
		Phone:       r.Phone(),
		Type:        r.Type(),
		Priority:    r.Priority(),
		Description: r.Description(),
		Status:      r.Status().String(),
		Address:     r.Address(),
		CreatedAt:   r.CreatedAt().UnixMilli(),
	}

	if coords := r.Coordinates(); coords != nil {
		lat := coords.Latitude()
		lng := coords.Longitude()
		model.Latitude = &lat
		model.Longitude = &lng
	}

	return model
}

// ToDomain converts a request persistence model to a domain entity. Attachment
// models must be loaded separately by the repository.
func (m *RequestMapperImpl) ToDomain(model *models.RequestModel, attachmentModels []*models.AttachmentModel) (*request.Request, error) {
	status, err := vo.NewRequestStatus(model.Status)
	if err != nil {
		return nil, err
	}

	coords, err := vo.NewCoordinates(model.Latitude, model.Longitude)
	if err != nil {
		return nil, err
	}

	attachments := make([]*request.Attachment, 0, len(attachmentModels))
	for _, am := range attachmentModels {
		a, err := m.AttachmentToDomain(am)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}

	return request.ReconstructRequest(
		model.ID,
		model.Ticket,
		model.Name,
		model.Email,
		model.Phone,
		model.Type,
		model.Priority,
		model.Description,
		status,
		model.Address,
		coords,
		convertMillisToTime(model.CreatedAt),
		attachments,
	)
}

func (m *RequestMapperImpl) AttachmentToModel(a *request.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:         a.ID(),
		RequestID:  a.RequestID(),
		StorageKey: a.StorageKey(),
		Active:     a.IsActive(),
		CreatedAt:  a.CreatedAt().UnixMilli(),
	}
}

func (m *RequestMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*request.Attachment, error) {
	return request.ReconstructAttachment(
		model.ID,
		model.RequestID,
		model.StorageKey,
		model.Active,
		convertMillisToTime(model.CreatedAt),
	)
}

func convertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond)).UTC()
}
