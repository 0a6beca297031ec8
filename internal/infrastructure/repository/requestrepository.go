package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skynet/internal/domain/request"
	"skynet/internal/infrastructure/persistence/mappers"
	"skynet/internal/infrastructure/persistence/models"
	db "skynet/internal/shared/db"
	apperrors "skynet/internal/shared/errors"
)

type RequestRepository struct {
	db     *gorm.DB
	mapper mappers.RequestMapper
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{
		db:     db,
		mapper: mappers.NewRequestMapper(),
	}
}

func (r *RequestRepository) Save(ctx context.Context, req *request.Request) error {
	model := r.mapper.ToModel(req)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}

	return req.SetID(model.ID)
}

func (r *RequestRepository) SaveAttachment(ctx context.Context, a *request.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *RequestRepository) GetByID(ctx context.Context, id uint) (*request.Request, error) {
	var model models.RequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("request not found")
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}

	attachments, err := r.loadAttachments(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return r.mapper.ToDomain(&model, attachments)
}

func (r *RequestRepository) GetByTicket(ctx context.Context, ticket string) (*request.Request, error) {
	var model models.RequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket = ?", ticket).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("request not found")
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}

	attachments, err := r.loadAttachments(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return r.mapper.ToDomain(&model, attachments)
}

// List returns every request ordered newest first, with attachments loaded
// in a single additional query.
func (r *RequestRepository) List(ctx context.Context) ([]*request.Request, error) {
	var requestModels []*models.RequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("created_at DESC").Find(&requestModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	if len(requestModels) == 0 {
		return []*request.Request{}, nil
	}

	ids := make([]uint, 0, len(requestModels))
	for _, m := range requestModels {
		ids = append(ids, m.ID)
	}

	var attachmentModels []*models.AttachmentModel
	if err := tx.Where("request_id IN ?", ids).Order("id ASC").Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}

	byRequest := make(map[uint][]*models.AttachmentModel)
	for _, am := range attachmentModels {
		byRequest[am.RequestID] = append(byRequest[am.RequestID], am)
	}

	requests := make([]*request.Request, 0, len(requestModels))
	for _, m := range requestModels {
		req, err := r.mapper.ToDomain(m, byRequest[m.ID])
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func (r *RequestRepository) ExistsByTicket(ctx context.Context, ticket string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.RequestModel{}).Where("ticket = ?", ticket).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ticket existence: %w", err)
	}

	return count > 0, nil
}

func (r *RequestRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.RequestModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("request not found")
	}
	return nil
}

func (r *RequestRepository) DeleteAttachmentsByRequestID(ctx context.Context, requestID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("request_id = ?", requestID).Delete(&models.AttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return nil
}

func (r *RequestRepository) loadAttachments(ctx context.Context, requestID uint) ([]*models.AttachmentModel, error) {
	var attachmentModels []*models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("request_id = ?", requestID).Order("id ASC").Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}
	return attachmentModels, nil
}
